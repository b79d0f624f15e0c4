package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
	activitymock "github.com/riskibarqy/event-scoring/internal/mocks/domain/activity"
	eventmock "github.com/riskibarqy/event-scoring/internal/mocks/domain/event"
	leadermock "github.com/riskibarqy/event-scoring/internal/mocks/domain/leader"
	"github.com/stretchr/testify/mock"
)

func newTestActivityService(t *testing.T) (*ActivityService, *eventmock.Repository, *activitymock.Repository, *leadermock.Repository) {
	t.Helper()
	events := eventmock.NewRepository(t)
	activities := activitymock.NewRepository(t)
	leaders := leadermock.NewRepository(t)
	policy := NewAccessPolicy(events, activities, leaders)
	return NewActivityService(activities, leaders, policy), events, activities, leaders
}

func TestActivityService_CreateWithDefaultWeight(t *testing.T) {
	t.Parallel()

	service, events, activities, _ := newTestActivityService(t)
	events.On("GetByID", mock.Anything, int64(1)).Return(testEvent(1, 10), true, nil)

	activities.On("Create", mock.Anything,
		mock.MatchedBy(func(a activity.Activity) bool {
			return a.EventID == 1 && a.Name == "Relay" && a.ActivityDate.Equal(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
		}),
		mock.MatchedBy(func(cats []activity.ScoreCategory) bool {
			return len(cats) == 2 && cats[0].Weight == activity.DefaultWeight && cats[1].Weight == 2
		}),
	).Return(func(_ context.Context, a activity.Activity, cats []activity.ScoreCategory) (activity.Activity, []activity.ScoreCategory, error) {
		a.ID = 5
		for i := range cats {
			cats[i].ID = int64(100 + i)
			cats[i].ActivityID = 5
		}
		return a, cats, nil
	}).Once()

	detail, err := service.Create(context.Background(), user.Principal{UserID: 10}, CreateActivityInput{
		EventID:      1,
		Name:         "Relay",
		ActivityDate: "2024-06-02",
		ScoreCategories: []CategoryInput{
			{Name: "Speed", MaxScore: floatPtr(10)},
			{Name: "Style", MaxScore: floatPtr(5), Weight: floatPtr(2)},
		},
	})
	if err != nil {
		t.Fatalf("create activity: %v", err)
	}
	if detail.Activity.ID != 5 || len(detail.Categories) != 2 || detail.Event.ID != 1 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}

func TestActivityService_CreateRejections(t *testing.T) {
	t.Parallel()

	service, events, _, _ := newTestActivityService(t)
	events.On("GetByID", mock.Anything, int64(1)).Return(testEvent(1, 10), true, nil)

	_, err := service.Create(context.Background(), user.Principal{UserID: 11}, CreateActivityInput{EventID: 1})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden before field validation, got %v", err)
	}

	_, err = service.Create(context.Background(), user.Principal{UserID: 10}, CreateActivityInput{
		EventID: 1, Name: "Relay", ActivityDate: "2024-07-01",
	})
	if msg, _ := ClientMessage(err); msg != "Activity date must be between 2024-06-01 and 2024-06-03" {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = service.Create(context.Background(), user.Principal{UserID: 10}, CreateActivityInput{
		EventID: 1, Name: "Relay", ActivityDate: "2024-06-02",
		ScoreCategories: []CategoryInput{{Name: "Speed", MaxScore: floatPtr(0)}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero max_score, got %v", err)
	}

	_, err = service.Create(context.Background(), user.Principal{UserID: 10}, CreateActivityInput{})
	if msg, _ := ClientMessage(err); msg != "Missing required parameters: event_id" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestActivityService_UpdateForbiddenForStranger(t *testing.T) {
	t.Parallel()

	service, events, activities, _ := newTestActivityService(t)
	activities.On("GetByID", mock.Anything, int64(5)).Return(activity.Activity{ID: 5, EventID: 1}, true, nil).Once()
	events.On("GetByID", mock.Anything, int64(1)).Return(testEvent(1, 10), true, nil).Once()

	_, err := service.Update(context.Background(), user.Principal{UserID: 99}, 5, UpdateActivityInput{Name: strPtr("New")})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestActivityService_UpdateCategoryMismatch(t *testing.T) {
	t.Parallel()

	service, events, activities, _ := newTestActivityService(t)
	activities.On("GetByID", mock.Anything, int64(5)).
		Return(activity.Activity{ID: 5, EventID: 1, ActivityDate: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)}, true, nil).Once()
	events.On("GetByID", mock.Anything, int64(1)).Return(testEvent(1, 10), true, nil).Once()
	activities.On("SaveCategories", mock.Anything, int64(5), mock.Anything).Return(nil, activity.ErrCategoryMismatch).Once()

	_, err := service.Update(context.Background(), user.Principal{UserID: 10}, 5, UpdateActivityInput{
		ScoreCategories: []CategoryInput{{ID: 300, Name: "Speed", MaxScore: floatPtr(10)}},
	})
	if msg, _ := ClientMessage(err); msg != "Invalid score category for this activity" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestActivityService_GetFansOut(t *testing.T) {
	t.Parallel()

	service, events, activities, leaders := newTestActivityService(t)
	activities.On("GetByID", mock.Anything, int64(5)).Return(activity.Activity{ID: 5, EventID: 1, Name: "Relay"}, true, nil).Once()
	activities.On("ListCategories", mock.Anything, int64(5)).Return([]activity.ScoreCategory{{ID: 100, ActivityID: 5}}, nil).Once()
	leaders.On("ListByActivity", mock.Anything, int64(5)).Return([]leader.Assignment{{ID: 1, ActivityID: 5, UserID: 20}}, nil).Once()
	events.On("GetByID", mock.Anything, int64(1)).Return(testEvent(1, 10), true, nil).Once()

	detail, err := service.Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("get activity: %v", err)
	}
	if len(detail.Categories) != 1 || len(detail.Leaders) != 1 || detail.Event.Name != "Summer Camp" {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	activities.On("GetByID", mock.Anything, int64(6)).Return(activity.Activity{}, false, nil).Once()
	if _, err := service.Get(context.Background(), 6); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
