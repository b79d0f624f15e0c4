package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/event-scoring/internal/domain/leader"
)

type LeaderRepository struct {
	store *Store
}

func NewLeaderRepository(store *Store) *LeaderRepository {
	return &LeaderRepository{store: store}
}

func (r *LeaderRepository) ListByActivity(_ context.Context, activityID int64) ([]leader.Assignment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.leadersWhere(func(l leader.Assignment) bool { return l.ActivityID == activityID }), nil
}

func (r *LeaderRepository) ListByEvent(_ context.Context, eventID int64) ([]leader.Assignment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.leadersWhere(func(l leader.Assignment) bool {
		return s.activities[l.ActivityID].EventID == eventID
	}), nil
}

func (r *LeaderRepository) GetByID(_ context.Context, id int64) (leader.Assignment, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.leaders[id]
	if !ok {
		return leader.Assignment{}, false, nil
	}
	return s.withUser(l), true, nil
}

func (r *LeaderRepository) IsLeader(_ context.Context, activityID, userID int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.leaderPairs[leaderKey{activityID: activityID, userID: userID}]
	return ok, nil
}

func (r *LeaderRepository) IsLeaderInEvent(_ context.Context, eventID, userID int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.leaders {
		if l.UserID == userID && s.activities[l.ActivityID].EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *LeaderRepository) Create(_ context.Context, a leader.Assignment) (leader.Assignment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := leaderKey{activityID: a.ActivityID, userID: a.UserID}
	if _, taken := s.leaderPairs[key]; taken {
		return leader.Assignment{}, leader.ErrAlreadyAssigned
	}

	a.ID = s.nextID("activity_leaders")
	a.AssignedAt = s.timestamp()
	a.UserName, a.UserEmail = "", ""
	s.leaders[a.ID] = a
	s.leaderPairs[key] = a.ID
	return s.withUser(a), nil
}

func (r *LeaderRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leaders[id]
	if !ok {
		return nil
	}
	delete(s.leaderPairs, leaderKey{activityID: l.ActivityID, userID: l.UserID})
	delete(s.leaders, id)
	return nil
}

// leadersWhere must be called with mu held.
func (s *Store) leadersWhere(match func(leader.Assignment) bool) []leader.Assignment {
	out := make([]leader.Assignment, 0)
	for _, l := range s.leaders {
		if match(l) {
			out = append(out, s.withUser(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) withUser(l leader.Assignment) leader.Assignment {
	u := s.users[l.UserID]
	l.UserName = u.Name
	l.UserEmail = u.Email
	return l
}
