package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
)

type CreateEventInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// UpdateEventInput is a partial update; nil fields are left untouched.
type UpdateEventInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type ActivitySummary struct {
	Activity    activity.Activity
	LeaderCount int
}

type EventDetail struct {
	Event      event.Event
	Activities []ActivitySummary
}

type EventService struct {
	events     event.Repository
	activities activity.Repository
	leaders    leader.Repository
	policy     *AccessPolicy
}

func NewEventService(
	events event.Repository,
	activities activity.Repository,
	leaders leader.Repository,
	policy *AccessPolicy,
) *EventService {
	return &EventService{
		events:     events,
		activities: activities,
		leaders:    leaders,
		policy:     policy,
	}
}

func (s *EventService) List(ctx context.Context) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.List")
	defer span.End()

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Get returns the event with its activities ordered by date, each with its leader count.
func (s *EventService) Get(ctx context.Context, id int64) (EventDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.Get")
	defer span.End()

	if err := requireIDs(idParam("id", id)); err != nil {
		return EventDetail{}, err
	}
	ev, err := s.policy.LoadEvent(ctx, id)
	if err != nil {
		return EventDetail{}, err
	}

	activities, err := s.activities.ListByEvent(ctx, id)
	if err != nil {
		return EventDetail{}, fmt.Errorf("list activities by event: %w", err)
	}
	assignments, err := s.leaders.ListByEvent(ctx, id)
	if err != nil {
		return EventDetail{}, fmt.Errorf("list leaders by event: %w", err)
	}

	counts := make(map[int64]int, len(activities))
	for _, a := range assignments {
		counts[a.ActivityID]++
	}

	out := EventDetail{Event: ev, Activities: make([]ActivitySummary, 0, len(activities))}
	for _, a := range activities {
		out.Activities = append(out.Activities, ActivitySummary{Activity: a, LeaderCount: counts[a.ID]})
	}
	return out, nil
}

func (s *EventService) Create(ctx context.Context, principal user.Principal, input CreateEventInput) (event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.Create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(ctx, input); err != nil {
		return event.Event{}, err
	}

	start, err := parseDate("start_date", input.StartDate)
	if err != nil {
		return event.Event{}, err
	}
	end, err := parseDate("end_date", input.EndDate)
	if err != nil {
		return event.Event{}, err
	}
	if start.After(end) {
		return event.Event{}, invalidInput("start_date must not be after end_date")
	}

	created, err := s.events.Create(ctx, event.Event{
		CreatorID:   principal.UserID,
		Name:        input.Name,
		Description: input.Description,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		return event.Event{}, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

func (s *EventService) Update(ctx context.Context, principal user.Principal, id int64, input UpdateEventInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.Update")
	defer span.End()

	if id <= 0 {
		return invalidInput("Event ID is required")
	}
	ev, err := s.policy.RequireEventOwner(ctx, id, principal, "Not authorized to update this event")
	if err != nil {
		return err
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	if err := validateInput(ctx, input); err != nil {
		return err
	}

	patch := event.Patch{Name: input.Name, Description: input.Description}
	if input.StartDate != nil {
		start, err := parseDate("start_date", *input.StartDate)
		if err != nil {
			return err
		}
		patch.StartDate = &start
	}
	if input.EndDate != nil {
		end, err := parseDate("end_date", *input.EndDate)
		if err != nil {
			return err
		}
		patch.EndDate = &end
	}
	if patch.IsEmpty() {
		return invalidInput("No fields to update")
	}

	merged := patch.Apply(ev)
	if merged.StartDate.After(merged.EndDate) {
		return invalidInput("start_date must not be after end_date")
	}

	if err := s.events.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes the event and everything under it.
func (s *EventService) Delete(ctx context.Context, principal user.Principal, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.EventService.Delete")
	defer span.End()

	if id <= 0 {
		return invalidInput("Event ID is required")
	}
	if _, err := s.policy.RequireEventOwner(ctx, id, principal, "Not authorized to delete this event"); err != nil {
		return err
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
