package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
	activitymock "github.com/riskibarqy/event-scoring/internal/mocks/domain/activity"
	eventmock "github.com/riskibarqy/event-scoring/internal/mocks/domain/event"
	leadermock "github.com/riskibarqy/event-scoring/internal/mocks/domain/leader"
	teammock "github.com/riskibarqy/event-scoring/internal/mocks/domain/team"
	usermock "github.com/riskibarqy/event-scoring/internal/mocks/domain/user"
	"github.com/stretchr/testify/mock"
)

func TestLeaderService_Assign(t *testing.T) {
	t.Parallel()

	events := eventmock.NewRepository(t)
	activities := activitymock.NewRepository(t)
	leaders := leadermock.NewRepository(t)
	users := usermock.NewRepository(t)
	service := NewLeaderService(leaders, users, NewAccessPolicy(events, activities, leaders))

	activities.On("GetByID", mock.Anything, int64(5)).Return(activity.Activity{ID: 5, EventID: 1}, true, nil)
	events.On("GetByID", mock.Anything, int64(1)).Return(testEvent(1, 10), true, nil)
	owner := user.Principal{UserID: 10}

	t.Run("unknown user", func(t *testing.T) {
		users.On("Exists", mock.Anything, int64(404)).Return(false, nil).Once()
		_, err := service.Assign(context.Background(), owner, AssignLeaderInput{ActivityID: 5, UserID: 404})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate is conflict", func(t *testing.T) {
		users.On("Exists", mock.Anything, int64(20)).Return(true, nil).Once()
		leaders.On("Create", mock.Anything, mock.Anything).Return(leader.Assignment{}, leader.ErrAlreadyAssigned).Once()
		_, err := service.Assign(context.Background(), owner, AssignLeaderInput{ActivityID: 5, UserID: 20})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("non owner", func(t *testing.T) {
		_, err := service.Assign(context.Background(), user.Principal{UserID: 20}, AssignLeaderInput{ActivityID: 5, UserID: 21})
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("assigned by caller", func(t *testing.T) {
		users.On("Exists", mock.Anything, int64(21)).Return(true, nil).Once()
		leaders.On("Create", mock.Anything, mock.MatchedBy(func(a leader.Assignment) bool {
			return a.ActivityID == 5 && a.UserID == 21 && a.AssignedBy == 10
		})).Return(leader.Assignment{ID: 3, ActivityID: 5, UserID: 21, AssignedBy: 10}, nil).Once()

		got, err := service.Assign(context.Background(), owner, AssignLeaderInput{ActivityID: 5, UserID: 21})
		if err != nil {
			t.Fatalf("assign leader: %v", err)
		}
		if got.ID != 3 {
			t.Fatalf("unexpected assignment: %+v", got)
		}
	})
}

func TestLeaderService_RemoveMissingAssignment(t *testing.T) {
	t.Parallel()

	events := eventmock.NewRepository(t)
	activities := activitymock.NewRepository(t)
	leaders := leadermock.NewRepository(t)
	service := NewLeaderService(leaders, usermock.NewRepository(t), NewAccessPolicy(events, activities, leaders))

	leaders.On("GetByID", mock.Anything, int64(9)).Return(leader.Assignment{}, false, nil).Once()
	err := service.Remove(context.Background(), user.Principal{UserID: 10}, 9)
	if msg, _ := ClientMessage(err); msg != "Activity leader assignment not found" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTeamService_CreateTrimsAndMapsDuplicate(t *testing.T) {
	t.Parallel()

	events := eventmock.NewRepository(t)
	leaders := leadermock.NewRepository(t)
	teams := teammock.NewRepository(t)
	service := NewTeamService(teams, NewAccessPolicy(events, activitymock.NewRepository(t), leaders))

	events.On("GetByID", mock.Anything, int64(1)).Return(testEvent(1, 10), true, nil)
	teams.On("Create", mock.Anything, mock.MatchedBy(func(tm team.Team) bool {
		return tm.Name == "Red" && tm.EventID == 1 && tm.CreatedBy == 10
	})).Return(team.Team{ID: 7, EventID: 1, Name: "Red", CreatedBy: 10}, nil).Once()
	teams.On("Create", mock.Anything, mock.MatchedBy(func(tm team.Team) bool {
		return tm.Name == "Blue"
	})).Return(team.Team{}, team.ErrDuplicateName).Once()

	got, err := service.Create(context.Background(), user.Principal{UserID: 10}, CreateTeamInput{EventID: 1, Name: "  Red "})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if got.ID != 7 {
		t.Fatalf("unexpected team: %+v", got)
	}

	_, err = service.Create(context.Background(), user.Principal{UserID: 10}, CreateTeamInput{EventID: 1, Name: "Blue"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	_, err = service.Create(context.Background(), user.Principal{UserID: 10}, CreateTeamInput{EventID: 1, Name: "   "})
	if msg, _ := ClientMessage(err); msg != "Missing required parameters: name" {
		t.Fatalf("unexpected error: %v", err)
	}

	leaders.On("IsLeaderInEvent", mock.Anything, int64(1), int64(50)).Return(false, nil).Once()
	_, err = service.Create(context.Background(), user.Principal{UserID: 50}, CreateTeamInput{EventID: 1, Name: "Green"})
	if msg, _ := ClientMessage(err); msg != "Not authorized to add teams to this event" {
		t.Fatalf("unexpected error: %v", err)
	}
}
