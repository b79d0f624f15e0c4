package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/score"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
)

const denyScoring = "Not authorized to score this activity"

type SubmitScoreInput struct {
	ActivityID int64    `json:"activity_id"`
	TeamID     int64    `json:"team_id"`
	CategoryID int64    `json:"category_id"`
	ScoreValue *float64 `json:"score_value" validate:"required"`
	Notes      string   `json:"notes" validate:"max=2000"`
}

// ScoringSheet is everything a leader needs to score one activity.
type ScoringSheet struct {
	Activity   activity.Activity
	Event      event.Event
	Categories []activity.ScoreCategory
	Teams      []team.Team
	Scores     []score.Score
}

type ScoreService struct {
	activities activity.Repository
	teams      team.Repository
	scores     score.Repository
	policy     *AccessPolicy
	now        func() time.Time
}

func NewScoreService(
	activities activity.Repository,
	teams team.Repository,
	scores score.Repository,
	policy *AccessPolicy,
) *ScoreService {
	return &ScoreService{
		activities: activities,
		teams:      teams,
		scores:     scores,
		policy:     policy,
		now:        time.Now,
	}
}

func (s *ScoreService) ActivityForScoring(ctx context.Context, principal user.Principal, activityID int64) (ScoringSheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.ActivityForScoring")
	defer span.End()

	if err := requireIDs(idParam("activity_id", activityID)); err != nil {
		return ScoringSheet{}, err
	}
	act, ev, err := s.policy.RequireActivityLeaderOrOwner(ctx, activityID, principal, denyScoring)
	if err != nil {
		return ScoringSheet{}, err
	}

	categories, err := s.activities.ListCategories(ctx, activityID)
	if err != nil {
		return ScoringSheet{}, fmt.Errorf("list score categories: %w", err)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	teams, err := s.teams.ListByEvent(ctx, ev.ID)
	if err != nil {
		return ScoringSheet{}, fmt.Errorf("list teams by event: %w", err)
	}

	scores, err := s.scores.ListByActivity(ctx, activityID)
	if err != nil {
		return ScoringSheet{}, fmt.Errorf("list scores by activity: %w", err)
	}

	return ScoringSheet{
		Activity:   act,
		Event:      ev,
		Categories: categories,
		Teams:      teams,
		Scores:     scores,
	}, nil
}

// Submit upserts the score for (activity, team, category). The last write wins and
// records the caller and time of the write.
func (s *ScoreService) Submit(ctx context.Context, principal user.Principal, input SubmitScoreInput) (score.Score, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreService.Submit")
	defer span.End()

	if err := requireIDs(
		idParam("activity_id", input.ActivityID),
		idParam("team_id", input.TeamID),
		idParam("category_id", input.CategoryID),
	); err != nil {
		return score.Score{}, err
	}
	act, ev, err := s.policy.RequireActivityLeaderOrOwner(ctx, input.ActivityID, principal, denyScoring)
	if err != nil {
		return score.Score{}, err
	}
	if err := validateInput(ctx, input); err != nil {
		return score.Score{}, err
	}

	category, exists, err := s.activities.GetCategory(ctx, input.CategoryID)
	if err != nil {
		return score.Score{}, fmt.Errorf("get score category: %w", err)
	}
	if !exists || category.ActivityID != act.ID {
		return score.Score{}, invalidInput("Invalid score category for this activity")
	}

	t, exists, err := s.teams.GetByID(ctx, input.TeamID)
	if err != nil {
		return score.Score{}, fmt.Errorf("get team: %w", err)
	}
	if !exists || t.EventID != ev.ID {
		return score.Score{}, invalidInput("Team does not belong to this event")
	}

	value := *input.ScoreValue
	if !category.Accepts(value) {
		return score.Score{}, invalidInput("Score value must be between 0 and %s", formatScore(category.MaxScore))
	}

	saved, err := s.scores.Upsert(ctx, score.Score{
		ActivityID: act.ID,
		TeamID:     t.ID,
		CategoryID: category.ID,
		Value:      value,
		ScoredBy:   principal.UserID,
		Notes:      strings.TrimSpace(input.Notes),
		ScoredAt:   s.now().UTC(),
	})
	if err != nil {
		return score.Score{}, fmt.Errorf("upsert score: %w", err)
	}
	return saved, nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
