package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
)

// AccessPolicy holds the ownership and leader checks shared by every resource service.
// Each Require* method checks existence first (404) and the role second (403).
type AccessPolicy struct {
	events     event.Repository
	activities activity.Repository
	leaders    leader.Repository
}

func NewAccessPolicy(events event.Repository, activities activity.Repository, leaders leader.Repository) *AccessPolicy {
	return &AccessPolicy{
		events:     events,
		activities: activities,
		leaders:    leaders,
	}
}

func (p *AccessPolicy) IsEventOwner(ev event.Event, principal user.Principal) bool {
	return principal.UserID > 0 && ev.CreatorID == principal.UserID
}

// IsActivityLeaderOrOwner reports whether the caller created the activity's event or leads the activity.
func (p *AccessPolicy) IsActivityLeaderOrOwner(ctx context.Context, ev event.Event, activityID int64, principal user.Principal) (bool, error) {
	if p.IsEventOwner(ev, principal) {
		return true, nil
	}
	if principal.UserID <= 0 {
		return false, nil
	}
	ok, err := p.leaders.IsLeader(ctx, activityID, principal.UserID)
	if err != nil {
		return false, fmt.Errorf("check activity leader: %w", err)
	}
	return ok, nil
}

// HasEventAccess reports whether the caller created the event or leads any of its activities.
func (p *AccessPolicy) HasEventAccess(ctx context.Context, ev event.Event, principal user.Principal) (bool, error) {
	if p.IsEventOwner(ev, principal) {
		return true, nil
	}
	if principal.UserID <= 0 {
		return false, nil
	}
	ok, err := p.leaders.IsLeaderInEvent(ctx, ev.ID, principal.UserID)
	if err != nil {
		return false, fmt.Errorf("check event leader: %w", err)
	}
	return ok, nil
}

func (p *AccessPolicy) LoadEvent(ctx context.Context, eventID int64) (event.Event, error) {
	ev, exists, err := p.events.GetByID(ctx, eventID)
	if err != nil {
		return event.Event{}, fmt.Errorf("get event: %w", err)
	}
	if !exists {
		return event.Event{}, notFound("Event not found")
	}
	return ev, nil
}

// LoadActivity returns the activity together with its owning event.
func (p *AccessPolicy) LoadActivity(ctx context.Context, activityID int64) (activity.Activity, event.Event, error) {
	act, exists, err := p.activities.GetByID(ctx, activityID)
	if err != nil {
		return activity.Activity{}, event.Event{}, fmt.Errorf("get activity: %w", err)
	}
	if !exists {
		return activity.Activity{}, event.Event{}, notFound("Activity not found")
	}

	ev, err := p.LoadEvent(ctx, act.EventID)
	if err != nil {
		return activity.Activity{}, event.Event{}, err
	}
	return act, ev, nil
}

func (p *AccessPolicy) RequireEventOwner(ctx context.Context, eventID int64, principal user.Principal, denied string) (event.Event, error) {
	ev, err := p.LoadEvent(ctx, eventID)
	if err != nil {
		return event.Event{}, err
	}
	if !p.IsEventOwner(ev, principal) {
		return event.Event{}, forbidden("%s", denied)
	}
	return ev, nil
}

func (p *AccessPolicy) RequireEventAccess(ctx context.Context, eventID int64, principal user.Principal, denied string) (event.Event, error) {
	ev, err := p.LoadEvent(ctx, eventID)
	if err != nil {
		return event.Event{}, err
	}
	ok, err := p.HasEventAccess(ctx, ev, principal)
	if err != nil {
		return event.Event{}, err
	}
	if !ok {
		return event.Event{}, forbidden("%s", denied)
	}
	return ev, nil
}

// RequireActivityOwner allows only the creator of the activity's event.
func (p *AccessPolicy) RequireActivityOwner(ctx context.Context, activityID int64, principal user.Principal, denied string) (activity.Activity, event.Event, error) {
	act, ev, err := p.LoadActivity(ctx, activityID)
	if err != nil {
		return activity.Activity{}, event.Event{}, err
	}
	if !p.IsEventOwner(ev, principal) {
		return activity.Activity{}, event.Event{}, forbidden("%s", denied)
	}
	return act, ev, nil
}

func (p *AccessPolicy) RequireActivityLeaderOrOwner(ctx context.Context, activityID int64, principal user.Principal, denied string) (activity.Activity, event.Event, error) {
	act, ev, err := p.LoadActivity(ctx, activityID)
	if err != nil {
		return activity.Activity{}, event.Event{}, err
	}
	ok, err := p.IsActivityLeaderOrOwner(ctx, ev, act.ID, principal)
	if err != nil {
		return activity.Activity{}, event.Event{}, err
	}
	if !ok {
		return activity.Activity{}, event.Event{}, forbidden("%s", denied)
	}
	return act, ev, nil
}
