package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
	activitymock "github.com/riskibarqy/event-scoring/internal/mocks/domain/activity"
	eventmock "github.com/riskibarqy/event-scoring/internal/mocks/domain/event"
	leadermock "github.com/riskibarqy/event-scoring/internal/mocks/domain/leader"
	"github.com/stretchr/testify/mock"
)

func testEvent(id, creatorID int64) event.Event {
	return event.Event{
		ID:        id,
		CreatorID: creatorID,
		Name:      "Summer Camp",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestAccessPolicy_RequireEventOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	events := eventmock.NewRepository(t)
	policy := NewAccessPolicy(events, activitymock.NewRepository(t), leadermock.NewRepository(t))

	events.On("GetByID", mock.Anything, int64(1)).Return(testEvent(1, 10), true, nil).Twice()
	events.On("GetByID", mock.Anything, int64(2)).Return(event.Event{}, false, nil).Once()

	if _, err := policy.RequireEventOwner(ctx, 1, user.Principal{UserID: 10}, "denied"); err != nil {
		t.Fatalf("owner should pass: %v", err)
	}

	_, err := policy.RequireEventOwner(ctx, 1, user.Principal{UserID: 11}, "Not authorized to update this event")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if msg, _ := ClientMessage(err); msg != "Not authorized to update this event" {
		t.Fatalf("unexpected client message: %q", msg)
	}

	_, err = policy.RequireEventOwner(ctx, 2, user.Principal{UserID: 10}, "denied")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccessPolicy_RequireActivityLeaderOrOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	events := eventmock.NewRepository(t)
	activities := activitymock.NewRepository(t)
	leaders := leadermock.NewRepository(t)
	policy := NewAccessPolicy(events, activities, leaders)

	act := activity.Activity{ID: 5, EventID: 1, Name: "Relay"}
	activities.On("GetByID", mock.Anything, int64(5)).Return(act, true, nil)
	activities.On("GetByID", mock.Anything, int64(6)).Return(activity.Activity{}, false, nil).Once()
	events.On("GetByID", mock.Anything, int64(1)).Return(testEvent(1, 10), true, nil)

	leaders.On("IsLeader", mock.Anything, int64(5), int64(20)).Return(true, nil).Once()
	leaders.On("IsLeader", mock.Anything, int64(5), int64(30)).Return(false, nil).Once()

	t.Run("owner skips leader lookup", func(t *testing.T) {
		if _, _, err := policy.RequireActivityLeaderOrOwner(ctx, 5, user.Principal{UserID: 10}, "denied"); err != nil {
			t.Fatalf("owner should pass: %v", err)
		}
	})
	t.Run("leader", func(t *testing.T) {
		got, ev, err := policy.RequireActivityLeaderOrOwner(ctx, 5, user.Principal{UserID: 20}, "denied")
		if err != nil {
			t.Fatalf("leader should pass: %v", err)
		}
		if got.ID != 5 || ev.ID != 1 {
			t.Fatalf("unexpected activity/event: %d/%d", got.ID, ev.ID)
		}
	})
	t.Run("stranger", func(t *testing.T) {
		_, _, err := policy.RequireActivityLeaderOrOwner(ctx, 5, user.Principal{UserID: 30}, "denied")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
	t.Run("missing activity is 404 before any role check", func(t *testing.T) {
		_, _, err := policy.RequireActivityLeaderOrOwner(ctx, 6, user.Principal{UserID: 30}, "denied")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAccessPolicy_RequireEventAccessUsesEventLeadership(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	events := eventmock.NewRepository(t)
	leaders := leadermock.NewRepository(t)
	policy := NewAccessPolicy(events, activitymock.NewRepository(t), leaders)

	events.On("GetByID", mock.Anything, int64(1)).Return(testEvent(1, 10), true, nil)
	leaders.On("IsLeaderInEvent", mock.Anything, int64(1), int64(20)).Return(true, nil).Once()
	leaders.On("IsLeaderInEvent", mock.Anything, int64(1), int64(30)).Return(false, nil).Once()

	if _, err := policy.RequireEventAccess(ctx, 1, user.Principal{UserID: 20}, "denied"); err != nil {
		t.Fatalf("leader should have event access: %v", err)
	}
	if _, err := policy.RequireEventAccess(ctx, 1, user.Principal{UserID: 30}, "denied"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
