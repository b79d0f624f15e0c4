package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
)

type ActivityRepository struct {
	store *Store
}

func NewActivityRepository(store *Store) *ActivityRepository {
	return &ActivityRepository{store: store}
}

func (r *ActivityRepository) ListByEvent(_ context.Context, eventID int64) ([]activity.Activity, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]activity.Activity, 0)
	for _, a := range s.activities {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ActivityDate.Equal(out[j].ActivityDate) {
			return out[i].ActivityDate.Before(out[j].ActivityDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ActivityRepository) GetByID(_ context.Context, id int64) (activity.Activity, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.activities[id]
	return a, ok, nil
}

func (r *ActivityRepository) Create(_ context.Context, a activity.Activity, categories []activity.ScoreCategory) (activity.Activity, []activity.ScoreCategory, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextID("activities")
	a.CreatedAt = s.timestamp()
	s.activities[a.ID] = a

	saved := make([]activity.ScoreCategory, 0, len(categories))
	for _, c := range categories {
		c.ID = s.nextID("score_categories")
		c.ActivityID = a.ID
		s.categories[c.ID] = c
		saved = append(saved, c)
	}
	return a, saved, nil
}

func (r *ActivityRepository) Update(_ context.Context, id int64, patch activity.Patch) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[id]
	if !ok {
		return nil
	}
	s.activities[id] = patch.Apply(a)
	return nil
}

func (r *ActivityRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteActivity(id)
	return nil
}

func (r *ActivityRepository) ListCategories(_ context.Context, activityID int64) ([]activity.ScoreCategory, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.categoriesWhere(func(c activity.ScoreCategory) bool { return c.ActivityID == activityID }), nil
}

func (r *ActivityRepository) ListCategoriesByEvent(_ context.Context, eventID int64) ([]activity.ScoreCategory, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.categoriesWhere(func(c activity.ScoreCategory) bool {
		return s.activities[c.ActivityID].EventID == eventID
	}), nil
}

func (r *ActivityRepository) GetCategory(_ context.Context, id int64) (activity.ScoreCategory, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.categories[id]
	return c, ok, nil
}

// SaveCategories applies all changes or none: a category id that belongs to another
// activity aborts the whole batch with activity.ErrCategoryMismatch.
func (r *ActivityRepository) SaveCategories(_ context.Context, activityID int64, categories []activity.ScoreCategory) ([]activity.ScoreCategory, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range categories {
		if c.ID == 0 {
			continue
		}
		existing, ok := s.categories[c.ID]
		if !ok || existing.ActivityID != activityID {
			return nil, activity.ErrCategoryMismatch
		}
	}

	saved := make([]activity.ScoreCategory, 0, len(categories))
	for _, c := range categories {
		if c.ID == 0 {
			c.ID = s.nextID("score_categories")
		}
		c.ActivityID = activityID
		s.categories[c.ID] = c
		saved = append(saved, c)
	}
	return saved, nil
}

// categoriesWhere must be called with mu held.
func (s *Store) categoriesWhere(match func(activity.ScoreCategory) bool) []activity.ScoreCategory {
	out := make([]activity.ScoreCategory, 0)
	for _, c := range s.categories {
		if match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
