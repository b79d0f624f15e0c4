package memory

import (
	"time"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
)

const (
	DemoOrganizerEmail = "organizer@example.com"
	DemoLeaderEmail    = "leader@example.com"
)

// SeedDemo fills an empty store with one event, one scored activity, two teams and
// a leader. Both demo accounts use passwordHash. It is a no-op on a non-empty store.
func SeedDemo(s *Store, passwordHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) > 0 {
		return
	}

	organizer := s.seedUser("Demo Organizer", DemoOrganizerEmail, passwordHash)
	leaderUser := s.seedUser("Demo Leader", DemoLeaderEmail, passwordHash)

	ev := event.Event{
		ID:          s.nextID("events"),
		CreatorID:   organizer.ID,
		Name:        "Summer Games",
		Description: "Three days of team challenges",
		StartDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		CreatedAt:   s.timestamp(),
	}
	s.events[ev.ID] = ev

	act := activity.Activity{
		ID:           s.nextID("activities"),
		EventID:      ev.ID,
		Name:         "Obstacle Course",
		ActivityDate: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		CreatedAt:    s.timestamp(),
	}
	s.activities[act.ID] = act

	for _, c := range []activity.ScoreCategory{
		{Name: "Speed", MaxScore: 10, Weight: 1},
		{Name: "Style", MaxScore: 5, Weight: 2},
	} {
		c.ID = s.nextID("score_categories")
		c.ActivityID = act.ID
		s.categories[c.ID] = c
	}

	for _, name := range []string{"Red Foxes", "Blue Herons"} {
		t := team.Team{
			ID:        s.nextID("teams"),
			EventID:   ev.ID,
			Name:      name,
			CreatedBy: organizer.ID,
			CreatedAt: s.timestamp(),
		}
		s.teams[t.ID] = t
		s.teamNames[teamNameKey{eventID: ev.ID, name: name}] = t.ID
	}

	assignment := leader.Assignment{
		ID:         s.nextID("activity_leaders"),
		ActivityID: act.ID,
		UserID:     leaderUser.ID,
		AssignedBy: organizer.ID,
		AssignedAt: s.timestamp(),
	}
	s.leaders[assignment.ID] = assignment
	s.leaderPairs[leaderKey{activityID: act.ID, userID: leaderUser.ID}] = assignment.ID
}

func (s *Store) seedUser(name, email, passwordHash string) user.User {
	u := user.User{
		ID:           s.nextID("users"),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.timestamp(),
	}
	s.users[u.ID] = u
	s.usersByEmail[email] = u.ID
	return u
}
