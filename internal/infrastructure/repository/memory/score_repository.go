package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/event-scoring/internal/domain/score"
)

type ScoreRepository struct {
	store *Store
}

func NewScoreRepository(store *Store) *ScoreRepository {
	return &ScoreRepository{store: store}
}

// Upsert keeps the original row id when the key already exists.
func (r *ScoreRepository) Upsert(_ context.Context, sc score.Score) (score.Score, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.scores[sc.Key()]; ok {
		sc.ID = existing.ID
	} else {
		sc.ID = s.nextID("scores")
	}
	if sc.ScoredAt.IsZero() {
		sc.ScoredAt = s.timestamp()
	}
	sc.TeamName, sc.CategoryName, sc.ScoredByName = "", "", ""
	s.scores[sc.Key()] = sc
	return s.withNames(sc), nil
}

func (r *ScoreRepository) ListByActivity(_ context.Context, activityID int64) ([]score.Score, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scoresWhere(func(sc score.Score) bool { return sc.ActivityID == activityID }), nil
}

func (r *ScoreRepository) ListByEvent(_ context.Context, eventID int64) ([]score.Score, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scoresWhere(func(sc score.Score) bool {
		return s.activities[sc.ActivityID].EventID == eventID
	}), nil
}

// scoresWhere must be called with mu held.
func (s *Store) scoresWhere(match func(score.Score) bool) []score.Score {
	out := make([]score.Score, 0)
	for _, sc := range s.scores {
		if match(sc) {
			out = append(out, s.withNames(sc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) withNames(sc score.Score) score.Score {
	sc.TeamName = s.teams[sc.TeamID].Name
	sc.CategoryName = s.categories[sc.CategoryID].Name
	sc.ScoredByName = s.userName(sc.ScoredBy)
	return sc
}
