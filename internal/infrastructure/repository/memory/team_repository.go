package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/event-scoring/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) ListByEvent(_ context.Context, eventID int64) ([]team.Team, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, t := range s.teams {
		if t.EventID == eventID {
			t.CreatedByName = s.userName(t.CreatedBy)
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[id]
	if !ok {
		return team.Team{}, false, nil
	}
	t.CreatedByName = s.userName(t.CreatedBy)
	return t, true, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) (team.Team, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := teamNameKey{eventID: t.EventID, name: t.Name}
	if _, taken := s.teamNames[key]; taken {
		return team.Team{}, team.ErrDuplicateName
	}

	t.ID = s.nextID("teams")
	t.CreatedAt = s.timestamp()
	t.CreatedByName = ""
	s.teams[t.ID] = t
	s.teamNames[key] = t.ID

	t.CreatedByName = s.userName(t.CreatedBy)
	return t, nil
}

func (r *TeamRepository) Rename(_ context.Context, id int64, name string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.teams[id]
	if !ok || t.Name == name {
		return nil
	}
	key := teamNameKey{eventID: t.EventID, name: name}
	if _, taken := s.teamNames[key]; taken {
		return team.ErrDuplicateName
	}

	delete(s.teamNames, teamNameKey{eventID: t.EventID, name: t.Name})
	t.Name = name
	s.teams[id] = t
	s.teamNames[key] = id
	return nil
}

func (r *TeamRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteTeam(id)
	return nil
}
