package memory

import (
	"sync"
	"time"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/score"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
)

// Store holds every table behind a single lock so that unique indexes and
// cascading deletes behave like one database.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	seq map[string]int64

	users      map[int64]user.User
	events     map[int64]event.Event
	activities map[int64]activity.Activity
	categories map[int64]activity.ScoreCategory
	leaders    map[int64]leader.Assignment
	teams      map[int64]team.Team
	scores     map[score.Key]score.Score

	usersByEmail map[string]int64
	teamNames    map[teamNameKey]int64
	leaderPairs  map[leaderKey]int64
}

type teamNameKey struct {
	eventID int64
	name    string
}

type leaderKey struct {
	activityID int64
	userID     int64
}

func NewStore() *Store {
	return &Store{
		now:          time.Now,
		seq:          make(map[string]int64),
		users:        make(map[int64]user.User),
		events:       make(map[int64]event.Event),
		activities:   make(map[int64]activity.Activity),
		categories:   make(map[int64]activity.ScoreCategory),
		leaders:      make(map[int64]leader.Assignment),
		teams:        make(map[int64]team.Team),
		scores:       make(map[score.Key]score.Score),
		usersByEmail: make(map[string]int64),
		teamNames:    make(map[teamNameKey]int64),
		leaderPairs:  make(map[leaderKey]int64),
	}
}

// nextID must be called with mu held for writing.
func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func (s *Store) userName(id int64) string {
	return s.users[id].Name
}

// deleteScoresWhere must be called with mu held for writing.
func (s *Store) deleteScoresWhere(match func(score.Score) bool) {
	for key, sc := range s.scores {
		if match(sc) {
			delete(s.scores, key)
		}
	}
}

// deleteActivity removes an activity and its dependents. mu must be held for writing.
func (s *Store) deleteActivity(id int64) {
	s.deleteScoresWhere(func(sc score.Score) bool { return sc.ActivityID == id })
	for lid, l := range s.leaders {
		if l.ActivityID == id {
			delete(s.leaderPairs, leaderKey{activityID: l.ActivityID, userID: l.UserID})
			delete(s.leaders, lid)
		}
	}
	for cid, c := range s.categories {
		if c.ActivityID == id {
			delete(s.categories, cid)
		}
	}
	delete(s.activities, id)
}

// deleteTeam removes a team and its scores. mu must be held for writing.
func (s *Store) deleteTeam(id int64) {
	t, ok := s.teams[id]
	if !ok {
		return
	}
	s.deleteScoresWhere(func(sc score.Score) bool { return sc.TeamID == id })
	delete(s.teamNames, teamNameKey{eventID: t.EventID, name: t.Name})
	delete(s.teams, id)
}
