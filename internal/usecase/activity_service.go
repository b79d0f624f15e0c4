package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
	"github.com/sourcegraph/conc/pool"
)

type CategoryInput struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name" validate:"required,max=100"`
	MaxScore *float64 `json:"max_score" validate:"required,gt=0"`
	Weight   *float64 `json:"weight" validate:"omitempty,gt=0"`
}

type CreateActivityInput struct {
	EventID         int64           `json:"event_id"`
	Name            string          `json:"name" validate:"required,max=255"`
	Description     string          `json:"description"`
	ActivityDate    string          `json:"activity_date" validate:"required,datetime=2006-01-02"`
	ScoreCategories []CategoryInput `json:"score_categories" validate:"omitempty,dive"`
}

// UpdateActivityInput is a partial update. Categories with an id are updated, the rest are added.
type UpdateActivityInput struct {
	Name            *string         `json:"name" validate:"omitempty,min=1,max=255"`
	Description     *string         `json:"description"`
	ActivityDate    *string         `json:"activity_date" validate:"omitempty,datetime=2006-01-02"`
	ScoreCategories []CategoryInput `json:"score_categories" validate:"omitempty,dive"`
}

type ActivityDetail struct {
	Activity   activity.Activity
	Event      event.Event
	Categories []activity.ScoreCategory
	Leaders    []leader.Assignment
}

type ActivityService struct {
	activities activity.Repository
	leaders    leader.Repository
	policy     *AccessPolicy
}

func NewActivityService(activities activity.Repository, leaders leader.Repository, policy *AccessPolicy) *ActivityService {
	return &ActivityService{
		activities: activities,
		leaders:    leaders,
		policy:     policy,
	}
}

// Get loads the activity and then its categories, leaders and parent event in parallel.
func (s *ActivityService) Get(ctx context.Context, id int64) (ActivityDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ActivityService.Get")
	defer span.End()

	if id <= 0 {
		return ActivityDetail{}, invalidInput("Activity ID is required")
	}

	act, exists, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return ActivityDetail{}, fmt.Errorf("get activity: %w", err)
	}
	if !exists {
		return ActivityDetail{}, notFound("Activity not found")
	}

	out := ActivityDetail{Activity: act}
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		categories, err := s.activities.ListCategories(ctx, id)
		if err != nil {
			return fmt.Errorf("list score categories: %w", err)
		}
		out.Categories = categories
		return nil
	})
	p.Go(func(ctx context.Context) error {
		leaders, err := s.leaders.ListByActivity(ctx, id)
		if err != nil {
			return fmt.Errorf("list activity leaders: %w", err)
		}
		out.Leaders = leaders
		return nil
	})
	p.Go(func(ctx context.Context) error {
		ev, err := s.policy.LoadEvent(ctx, act.EventID)
		if err != nil {
			return err
		}
		out.Event = ev
		return nil
	})
	if err := p.Wait(); err != nil {
		return ActivityDetail{}, err
	}

	return out, nil
}

// ListByEvent returns every activity of the event with categories and leaders attached.
func (s *ActivityService) ListByEvent(ctx context.Context, eventID int64) ([]ActivityDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ActivityService.ListByEvent")
	defer span.End()

	if eventID <= 0 {
		return nil, invalidInput("Event ID is required")
	}
	ev, err := s.policy.LoadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	activities, err := s.activities.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list activities by event: %w", err)
	}
	categories, err := s.activities.ListCategoriesByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list score categories by event: %w", err)
	}
	assignments, err := s.leaders.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list leaders by event: %w", err)
	}

	categoriesByActivity := make(map[int64][]activity.ScoreCategory, len(activities))
	for _, c := range categories {
		categoriesByActivity[c.ActivityID] = append(categoriesByActivity[c.ActivityID], c)
	}
	leadersByActivity := make(map[int64][]leader.Assignment, len(activities))
	for _, a := range assignments {
		leadersByActivity[a.ActivityID] = append(leadersByActivity[a.ActivityID], a)
	}

	out := make([]ActivityDetail, 0, len(activities))
	for _, a := range activities {
		out = append(out, ActivityDetail{
			Activity:   a,
			Event:      ev,
			Categories: categoriesByActivity[a.ID],
			Leaders:    leadersByActivity[a.ID],
		})
	}
	return out, nil
}

func (s *ActivityService) Create(ctx context.Context, principal user.Principal, input CreateActivityInput) (ActivityDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ActivityService.Create")
	defer span.End()

	if err := requireIDs(idParam("event_id", input.EventID)); err != nil {
		return ActivityDetail{}, err
	}
	ev, err := s.policy.RequireEventOwner(ctx, input.EventID, principal, "Not authorized to add activities to this event")
	if err != nil {
		return ActivityDetail{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(ctx, input); err != nil {
		return ActivityDetail{}, err
	}
	date, err := parseDate("activity_date", input.ActivityDate)
	if err != nil {
		return ActivityDetail{}, err
	}
	if err := requireWithinEvent(ev, date); err != nil {
		return ActivityDetail{}, err
	}

	act, categories, err := s.activities.Create(ctx, activity.Activity{
		EventID:      ev.ID,
		Name:         input.Name,
		Description:  input.Description,
		ActivityDate: date,
	}, toCategories(0, input.ScoreCategories))
	if err != nil {
		return ActivityDetail{}, fmt.Errorf("create activity: %w", err)
	}

	return ActivityDetail{
		Activity:   act,
		Event:      ev,
		Categories: categories,
		Leaders:    []leader.Assignment{},
	}, nil
}

func (s *ActivityService) Update(ctx context.Context, principal user.Principal, id int64, input UpdateActivityInput) (ActivityDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ActivityService.Update")
	defer span.End()

	if id <= 0 {
		return ActivityDetail{}, invalidInput("Activity ID is required")
	}
	act, ev, err := s.policy.RequireActivityOwner(ctx, id, principal, "Not authorized to update this activity")
	if err != nil {
		return ActivityDetail{}, err
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	if err := validateInput(ctx, input); err != nil {
		return ActivityDetail{}, err
	}

	patch := activity.Patch{Name: input.Name, Description: input.Description}
	if input.ActivityDate != nil {
		date, err := parseDate("activity_date", *input.ActivityDate)
		if err != nil {
			return ActivityDetail{}, err
		}
		patch.ActivityDate = &date
	}
	if patch.IsEmpty() && len(input.ScoreCategories) == 0 {
		return ActivityDetail{}, invalidInput("No fields to update")
	}
	if err := requireWithinEvent(ev, patch.Apply(act).ActivityDate); err != nil {
		return ActivityDetail{}, err
	}

	if !patch.IsEmpty() {
		if err := s.activities.Update(ctx, id, patch); err != nil {
			return ActivityDetail{}, fmt.Errorf("update activity: %w", err)
		}
	}
	if len(input.ScoreCategories) > 0 {
		_, err := s.activities.SaveCategories(ctx, id, toCategories(id, input.ScoreCategories))
		if errors.Is(err, activity.ErrCategoryMismatch) {
			return ActivityDetail{}, invalidInput("Invalid score category for this activity")
		}
		if err != nil {
			return ActivityDetail{}, fmt.Errorf("save score categories: %w", err)
		}
	}

	return s.Get(ctx, id)
}

// Delete removes the activity with its categories, leader assignments and scores.
func (s *ActivityService) Delete(ctx context.Context, principal user.Principal, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ActivityService.Delete")
	defer span.End()

	if id <= 0 {
		return invalidInput("Activity ID is required")
	}
	if _, _, err := s.policy.RequireActivityOwner(ctx, id, principal, "Not authorized to delete this activity"); err != nil {
		return err
	}

	if err := s.activities.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}

func requireWithinEvent(ev event.Event, date time.Time) error {
	if date.Before(ev.StartDate) || date.After(ev.EndDate) {
		return invalidInput("Activity date must be between %s and %s",
			ev.StartDate.Format(dateLayout), ev.EndDate.Format(dateLayout))
	}
	return nil
}

func toCategories(activityID int64, inputs []CategoryInput) []activity.ScoreCategory {
	out := make([]activity.ScoreCategory, 0, len(inputs))
	for _, in := range inputs {
		weight := activity.DefaultWeight
		if in.Weight != nil {
			weight = *in.Weight
		}
		out = append(out, activity.ScoreCategory{
			ID:         in.ID,
			ActivityID: activityID,
			Name:       strings.TrimSpace(in.Name),
			MaxScore:   *in.MaxScore,
			Weight:     weight,
		})
	}
	return out
}
