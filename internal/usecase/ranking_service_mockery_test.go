package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/score"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
	activitymock "github.com/riskibarqy/event-scoring/internal/mocks/domain/activity"
	eventmock "github.com/riskibarqy/event-scoring/internal/mocks/domain/event"
	leadermock "github.com/riskibarqy/event-scoring/internal/mocks/domain/leader"
	scoremock "github.com/riskibarqy/event-scoring/internal/mocks/domain/score"
	teammock "github.com/riskibarqy/event-scoring/internal/mocks/domain/team"
	"github.com/stretchr/testify/mock"
)

func TestRankingService_RankingsThroughWorkerPool(t *testing.T) {
	t.Parallel()

	pool, err := ants.NewPool(2)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	defer pool.Release()

	events := eventmock.NewRepository(t)
	activities := activitymock.NewRepository(t)
	teams := teammock.NewRepository(t)
	scores := scoremock.NewRepository(t)
	leaders := leadermock.NewRepository(t)
	service := NewRankingService(events, activities, teams, scores, leaders, pool)

	ev := testEvent(1, 10)
	ev.CreatorName = "Alice"
	events.On("GetByID", mock.Anything, int64(1)).Return(ev, true, nil).Once()
	activities.On("ListByEvent", mock.Anything, int64(1)).
		Return([]activity.Activity{{ID: 5, EventID: 1, Name: "Relay"}}, nil).Once()
	activities.On("ListCategoriesByEvent", mock.Anything, int64(1)).Return([]activity.ScoreCategory{
		{ID: 100, ActivityID: 5, Name: "Speed", MaxScore: 10, Weight: 1},
		{ID: 101, ActivityID: 5, Name: "Style", MaxScore: 5, Weight: 2},
	}, nil).Once()
	teams.On("ListByEvent", mock.Anything, int64(1)).Return([]team.Team{
		{ID: 7, EventID: 1, Name: "T1"},
		{ID: 8, EventID: 1, Name: "T2"},
	}, nil).Once()
	scores.On("ListByEvent", mock.Anything, int64(1)).Return([]score.Score{
		{ActivityID: 5, TeamID: 7, CategoryID: 100, Value: 8},
		{ActivityID: 5, TeamID: 7, CategoryID: 101, Value: 4},
		{ActivityID: 5, TeamID: 8, CategoryID: 100, Value: 5},
		{ActivityID: 5, TeamID: 8, CategoryID: 101, Value: 5},
	}, nil).Once()
	leaders.On("ListByEvent", mock.Anything, int64(1)).
		Return([]leader.Assignment{{ID: 1, ActivityID: 5, UserID: 20, UserName: "Bob"}}, nil).Once()

	got, err := service.Rankings(context.Background(), 1)
	if err != nil {
		t.Fatalf("rankings: %v", err)
	}
	if got.TotalActivities != 1 || got.TotalTeams != 2 {
		t.Fatalf("unexpected totals: activities=%d teams=%d", got.TotalActivities, got.TotalTeams)
	}
	if got.Board.MaxPossibleScore != 20 {
		t.Fatalf("unexpected max possible score: %v", got.Board.MaxPossibleScore)
	}
	if got.Board.Teams[0].TeamID != 7 || got.Board.Teams[0].TotalScore != 16 || got.Board.Teams[0].ScorePercentage != 80 {
		t.Fatalf("unexpected leader: %+v", got.Board.Teams[0])
	}
	if got.Board.Teams[1].TeamID != 8 || got.Board.Teams[1].TotalScore != 15 || got.Board.Teams[1].ScorePercentage != 75 {
		t.Fatalf("unexpected runner-up: %+v", got.Board.Teams[1])
	}
	if len(got.Board.Activities) != 1 || got.Board.Activities[0].TeamsParticipated != 2 {
		t.Fatalf("unexpected activity info: %+v", got.Board.Activities)
	}
	if got.Event.CreatorName != "Alice" {
		t.Fatalf("unexpected creator name: %q", got.Event.CreatorName)
	}
}

func TestRankingService_Errors(t *testing.T) {
	t.Parallel()

	events := eventmock.NewRepository(t)
	activities := activitymock.NewRepository(t)
	teams := teammock.NewRepository(t)
	scores := scoremock.NewRepository(t)
	leaders := leadermock.NewRepository(t)
	service := NewRankingService(events, activities, teams, scores, leaders, nil)

	if _, err := service.Rankings(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	events.On("GetByID", mock.Anything, int64(9)).Return(event.Event{}, false, nil).Once()
	if _, err := service.Rankings(context.Background(), 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	boom := errors.New("connection reset")
	events.On("GetByID", mock.Anything, int64(1)).Return(testEvent(1, 10), true, nil).Once()
	activities.On("ListByEvent", mock.Anything, int64(1)).Return(nil, boom).Once()
	if _, err := service.Rankings(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
}
