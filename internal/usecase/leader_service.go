package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
)

type AssignLeaderInput struct {
	ActivityID int64 `json:"activity_id"`
	UserID     int64 `json:"user_id"`
}

// LeaderService manages activity leader assignments. Every operation is restricted to the event creator.
type LeaderService struct {
	leaders leader.Repository
	users   user.Repository
	policy  *AccessPolicy
}

func NewLeaderService(leaders leader.Repository, users user.Repository, policy *AccessPolicy) *LeaderService {
	return &LeaderService{
		leaders: leaders,
		users:   users,
		policy:  policy,
	}
}

func (s *LeaderService) List(ctx context.Context, principal user.Principal, activityID int64) ([]leader.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderService.List")
	defer span.End()

	if activityID <= 0 {
		return nil, invalidInput("Activity ID is required")
	}
	if _, _, err := s.policy.RequireActivityOwner(ctx, activityID, principal, "Not authorized to view activity leaders"); err != nil {
		return nil, err
	}

	assignments, err := s.leaders.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("list activity leaders: %w", err)
	}
	return assignments, nil
}

func (s *LeaderService) Assign(ctx context.Context, principal user.Principal, input AssignLeaderInput) (leader.Assignment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderService.Assign")
	defer span.End()

	if err := requireIDs(idParam("activity_id", input.ActivityID), idParam("user_id", input.UserID)); err != nil {
		return leader.Assignment{}, err
	}
	if _, _, err := s.policy.RequireActivityOwner(ctx, input.ActivityID, principal, "Not authorized to assign activity leaders"); err != nil {
		return leader.Assignment{}, err
	}

	exists, err := s.users.Exists(ctx, input.UserID)
	if err != nil {
		return leader.Assignment{}, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return leader.Assignment{}, notFound("User not found")
	}

	created, err := s.leaders.Create(ctx, leader.Assignment{
		ActivityID: input.ActivityID,
		UserID:     input.UserID,
		AssignedBy: principal.UserID,
	})
	if errors.Is(err, leader.ErrAlreadyAssigned) {
		return leader.Assignment{}, conflict("User is already assigned as a leader for this activity")
	}
	if err != nil {
		return leader.Assignment{}, fmt.Errorf("create activity leader: %w", err)
	}
	return created, nil
}

func (s *LeaderService) Remove(ctx context.Context, principal user.Principal, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderService.Remove")
	defer span.End()

	if id <= 0 {
		return invalidInput("Leader assignment ID is required")
	}

	assignment, exists, err := s.leaders.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get activity leader: %w", err)
	}
	if !exists {
		return notFound("Activity leader assignment not found")
	}
	if _, _, err := s.policy.RequireActivityOwner(ctx, assignment.ActivityID, principal, "Not authorized to remove activity leaders"); err != nil {
		return err
	}

	if err := s.leaders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete activity leader: %w", err)
	}
	return nil
}
