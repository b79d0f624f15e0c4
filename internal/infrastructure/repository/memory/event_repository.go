package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/event-scoring/internal/domain/event"
)

type EventRepository struct {
	store *Store
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store}
}

func (r *EventRepository) List(_ context.Context) ([]event.Event, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]event.Event, 0, len(s.events))
	for _, e := range s.events {
		e.CreatorName = s.userName(e.CreatorID)
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *EventRepository) GetByID(_ context.Context, id int64) (event.Event, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return event.Event{}, false, nil
	}
	e.CreatorName = s.userName(e.CreatorID)
	return e, true, nil
}

func (r *EventRepository) Create(_ context.Context, e event.Event) (event.Event, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextID("events")
	e.CreatedAt = s.timestamp()
	e.CreatorName = ""
	s.events[e.ID] = e
	e.CreatorName = s.userName(e.CreatorID)
	return e, nil
}

func (r *EventRepository) Update(_ context.Context, id int64, patch event.Patch) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil
	}
	s.events[id] = patch.Apply(e)
	return nil
}

func (r *EventRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for aid, a := range s.activities {
		if a.EventID == id {
			s.deleteActivity(aid)
		}
	}
	for tid, t := range s.teams {
		if t.EventID == id {
			s.deleteTeam(tid)
		}
	}
	delete(s.events, id)
	return nil
}
