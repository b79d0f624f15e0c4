package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/score"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
	activitymock "github.com/riskibarqy/event-scoring/internal/mocks/domain/activity"
	eventmock "github.com/riskibarqy/event-scoring/internal/mocks/domain/event"
	leadermock "github.com/riskibarqy/event-scoring/internal/mocks/domain/leader"
	scoremock "github.com/riskibarqy/event-scoring/internal/mocks/domain/score"
	teammock "github.com/riskibarqy/event-scoring/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

type scoreFixture struct {
	service    *ScoreService
	events     *eventmock.Repository
	activities *activitymock.Repository
	leaders    *leadermock.Repository
	teams      *teammock.Repository
	scores     *scoremock.Repository
}

func newScoreFixture(t *testing.T) scoreFixture {
	t.Helper()

	f := scoreFixture{
		events:     eventmock.NewRepository(t),
		activities: activitymock.NewRepository(t),
		leaders:    leadermock.NewRepository(t),
		teams:      teammock.NewRepository(t),
		scores:     scoremock.NewRepository(t),
	}
	policy := NewAccessPolicy(f.events, f.activities, f.leaders)
	f.service = NewScoreService(f.activities, f.teams, f.scores, policy)
	f.service.now = func() time.Time { return time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC) }

	f.activities.On("GetByID", mock.Anything, int64(5)).Return(activity.Activity{ID: 5, EventID: 1}, true, nil).Maybe()
	f.events.On("GetByID", mock.Anything, int64(1)).Return(testEvent(1, 10), true, nil).Maybe()
	return f
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestScoreService_SubmitUpsertsWithInjectedClock(t *testing.T) {
	t.Parallel()

	f := newScoreFixture(t)
	f.activities.On("GetCategory", mock.Anything, int64(100)).
		Return(activity.ScoreCategory{ID: 100, ActivityID: 5, Name: "Speed", MaxScore: 10, Weight: 1}, true, nil).Once()
	f.teams.On("GetByID", mock.Anything, int64(7)).Return(team.Team{ID: 7, EventID: 1, Name: "T1"}, true, nil).Once()
	f.scores.On("Upsert", mock.Anything, mock.MatchedBy(func(s score.Score) bool {
		return s.Key() == score.Key{ActivityID: 5, TeamID: 7, CategoryID: 100} &&
			s.Value == 8 && s.ScoredBy == 10 && s.Notes == "fast" &&
			s.ScoredAt.Equal(time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC))
	})).Return(func(_ context.Context, s score.Score) (score.Score, error) {
		s.ID = 1
		return s, nil
	}).Once()

	got, err := f.service.Submit(context.Background(), user.Principal{UserID: 10}, SubmitScoreInput{
		ActivityID: 5, TeamID: 7, CategoryID: 100, ScoreValue: floatPtr(8), Notes: "  fast ",
	})
	if err != nil {
		t.Fatalf("submit score: %v", err)
	}
	if got.ID != 1 || got.Value != 8 {
		t.Fatalf("unexpected score: %+v", got)
	}
}

func TestScoreService_SubmitRejectsOutOfRangeWithoutWriting(t *testing.T) {
	t.Parallel()

	for _, value := range []float64{-0.5, 10.01} {
		f := newScoreFixture(t)
		f.activities.On("GetCategory", mock.Anything, int64(100)).
			Return(activity.ScoreCategory{ID: 100, ActivityID: 5, MaxScore: 10, Weight: 1}, true, nil).Once()
		f.teams.On("GetByID", mock.Anything, int64(7)).Return(team.Team{ID: 7, EventID: 1}, true, nil).Once()

		_, err := f.service.Submit(context.Background(), user.Principal{UserID: 10}, SubmitScoreInput{
			ActivityID: 5, TeamID: 7, CategoryID: 100, ScoreValue: floatPtr(value),
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("value %v: expected ErrInvalidInput, got %v", value, err)
		}
		if msg, _ := ClientMessage(err); msg != "Score value must be between 0 and 10" {
			t.Fatalf("unexpected message: %q", msg)
		}
		f.scores.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	}
}

func TestScoreService_SubmitRejectsForeignCategoryAndTeam(t *testing.T) {
	t.Parallel()

	t.Run("category of another activity", func(t *testing.T) {
		f := newScoreFixture(t)
		f.activities.On("GetCategory", mock.Anything, int64(100)).
			Return(activity.ScoreCategory{ID: 100, ActivityID: 99, MaxScore: 10}, true, nil).Once()

		_, err := f.service.Submit(context.Background(), user.Principal{UserID: 10}, SubmitScoreInput{
			ActivityID: 5, TeamID: 7, CategoryID: 100, ScoreValue: floatPtr(1),
		})
		if msg, _ := ClientMessage(err); msg != "Invalid score category for this activity" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("team of another event", func(t *testing.T) {
		f := newScoreFixture(t)
		f.activities.On("GetCategory", mock.Anything, int64(100)).
			Return(activity.ScoreCategory{ID: 100, ActivityID: 5, MaxScore: 10}, true, nil).Once()
		f.teams.On("GetByID", mock.Anything, int64(7)).Return(team.Team{ID: 7, EventID: 2}, true, nil).Once()

		_, err := f.service.Submit(context.Background(), user.Principal{UserID: 10}, SubmitScoreInput{
			ActivityID: 5, TeamID: 7, CategoryID: 100, ScoreValue: floatPtr(1),
		})
		if msg, _ := ClientMessage(err); msg != "Team does not belong to this event" {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestScoreService_SubmitCheckOrder(t *testing.T) {
	t.Parallel()

	t.Run("missing ids are reported together", func(t *testing.T) {
		f := newScoreFixture(t)
		_, err := f.service.Submit(context.Background(), user.Principal{UserID: 10}, SubmitScoreInput{ActivityID: 5})
		if msg, _ := ClientMessage(err); msg != "Missing required parameters: team_id, category_id" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("forbidden before field validation", func(t *testing.T) {
		f := newScoreFixture(t)
		f.leaders.On("IsLeader", mock.Anything, int64(5), int64(30)).Return(false, nil).Once()

		_, err := f.service.Submit(context.Background(), user.Principal{UserID: 30}, SubmitScoreInput{
			ActivityID: 5, TeamID: 7, CategoryID: 100,
		})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("missing score value after access check", func(t *testing.T) {
		f := newScoreFixture(t)
		_, err := f.service.Submit(context.Background(), user.Principal{UserID: 10}, SubmitScoreInput{
			ActivityID: 5, TeamID: 7, CategoryID: 100,
		})
		if msg, _ := ClientMessage(err); msg != "Missing required parameters: score_value" {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestScoreService_ActivityForScoringSortsCategories(t *testing.T) {
	t.Parallel()

	f := newScoreFixture(t)
	f.leaders.On("IsLeader", mock.Anything, int64(5), int64(20)).Return(true, nil).Once()
	f.activities.On("ListCategories", mock.Anything, int64(5)).Return([]activity.ScoreCategory{
		{ID: 2, ActivityID: 5, Name: "Style"},
		{ID: 1, ActivityID: 5, Name: "Speed"},
	}, nil).Once()
	f.teams.On("ListByEvent", mock.Anything, int64(1)).Return([]team.Team{{ID: 7, EventID: 1, Name: "T1"}}, nil).Once()
	f.scores.On("ListByActivity", mock.Anything, int64(5)).Return(nil, nil).Once()

	sheet, err := f.service.ActivityForScoring(context.Background(), user.Principal{UserID: 20}, 5)
	if err != nil {
		t.Fatalf("activity for scoring: %v", err)
	}
	if sheet.Categories[0].Name != "Speed" || sheet.Categories[1].Name != "Style" {
		t.Fatalf("categories not sorted by name: %+v", sheet.Categories)
	}
	if sheet.Event.ID != 1 || len(sheet.Teams) != 1 {
		t.Fatalf("unexpected sheet: %+v", sheet)
	}
}
