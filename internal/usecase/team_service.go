package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/event-scoring/internal/domain/team"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
)

type CreateTeamInput struct {
	EventID int64  `json:"event_id"`
	Name    string `json:"name" validate:"required,max=100"`
}

type RenameTeamInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

type TeamService struct {
	teams  team.Repository
	policy *AccessPolicy
}

func NewTeamService(teams team.Repository, policy *AccessPolicy) *TeamService {
	return &TeamService{teams: teams, policy: policy}
}

// List is open to the event creator and to leaders of any activity in the event.
func (s *TeamService) List(ctx context.Context, principal user.Principal, eventID int64) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	if err := requireIDs(idParam("event_id", eventID)); err != nil {
		return nil, err
	}
	if _, err := s.policy.RequireEventAccess(ctx, eventID, principal, "Not authorized to view teams for this event"); err != nil {
		return nil, err
	}

	teams, err := s.teams.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list teams by event: %w", err)
	}
	return teams, nil
}

func (s *TeamService) Create(ctx context.Context, principal user.Principal, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	if err := requireIDs(idParam("event_id", input.EventID)); err != nil {
		return team.Team{}, err
	}
	if _, err := s.policy.RequireEventAccess(ctx, input.EventID, principal, "Not authorized to add teams to this event"); err != nil {
		return team.Team{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(ctx, input); err != nil {
		return team.Team{}, err
	}

	created, err := s.teams.Create(ctx, team.Team{
		EventID:   input.EventID,
		Name:      input.Name,
		CreatedBy: principal.UserID,
	})
	if errors.Is(err, team.ErrDuplicateName) {
		return team.Team{}, conflict("Team name already exists for this event")
	}
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return created, nil
}

func (s *TeamService) Rename(ctx context.Context, principal user.Principal, id int64, input RenameTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Rename")
	defer span.End()

	t, err := s.requireTeamOwner(ctx, principal, id, "Not authorized to update this team")
	if err != nil {
		return team.Team{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(ctx, input); err != nil {
		return team.Team{}, err
	}

	err = s.teams.Rename(ctx, id, input.Name)
	if errors.Is(err, team.ErrDuplicateName) {
		return team.Team{}, conflict("Team name already exists for this event")
	}
	if err != nil {
		return team.Team{}, fmt.Errorf("rename team: %w", err)
	}

	t.Name = input.Name
	return t, nil
}

// Delete removes the team together with all of its scores.
func (s *TeamService) Delete(ctx context.Context, principal user.Principal, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	if _, err := s.requireTeamOwner(ctx, principal, id, "Not authorized to delete this team"); err != nil {
		return err
	}
	if err := s.teams.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

func (s *TeamService) requireTeamOwner(ctx context.Context, principal user.Principal, id int64, denied string) (team.Team, error) {
	if id <= 0 {
		return team.Team{}, invalidInput("Team ID is required")
	}

	t, exists, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, notFound("Team not found")
	}
	if _, err := s.policy.RequireEventOwner(ctx, t.EventID, principal, denied); err != nil {
		return team.Team{}, err
	}
	return t, nil
}
