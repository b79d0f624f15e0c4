package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/event"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/score"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
	"github.com/riskibarqy/event-scoring/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoSet struct {
	store      *Store
	users      *UserRepository
	events     *EventRepository
	activities *ActivityRepository
	leaders    *LeaderRepository
	teams      *TeamRepository
	scores     *ScoreRepository
}

func newFixture(t *testing.T) repoSet {
	t.Helper()
	store := NewStore()
	store.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return repoSet{
		store:      store,
		users:      NewUserRepository(store),
		events:     NewEventRepository(store),
		activities: NewActivityRepository(store),
		leaders:    NewLeaderRepository(store),
		teams:      NewTeamRepository(store),
		scores:     NewScoreRepository(store),
	}
}

// seedScored creates one event with an activity, a category, a leader, a team and a score.
func (f repoSet) seedScored(t *testing.T) (event.Event, activity.Activity, activity.ScoreCategory, team.Team) {
	t.Helper()
	ctx := context.Background()

	owner, err := f.users.Create(ctx, user.User{Name: "Owner", Email: "owner@example.com"})
	require.NoError(t, err)
	helper, err := f.users.Create(ctx, user.User{Name: "Helper", Email: "helper@example.com"})
	require.NoError(t, err)

	ev, err := f.events.Create(ctx, event.Event{
		CreatorID: owner.ID,
		Name:      "Summer Camp",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	act, cats, err := f.activities.Create(ctx, activity.Activity{
		EventID:      ev.ID,
		Name:         "Relay",
		ActivityDate: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	}, []activity.ScoreCategory{{Name: "Speed", MaxScore: 10, Weight: 1}})
	require.NoError(t, err)
	require.Len(t, cats, 1)

	_, err = f.leaders.Create(ctx, leader.Assignment{ActivityID: act.ID, UserID: helper.ID, AssignedBy: owner.ID})
	require.NoError(t, err)

	tm, err := f.teams.Create(ctx, team.Team{EventID: ev.ID, Name: "T1", CreatedBy: owner.ID})
	require.NoError(t, err)

	_, err = f.scores.Upsert(ctx, score.Score{
		ActivityID: act.ID, TeamID: tm.ID, CategoryID: cats[0].ID, Value: 8, ScoredBy: helper.ID,
	})
	require.NoError(t, err)

	return ev, act, cats[0], tm
}

func TestUserRepository_EmailIsUniqueCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.users.Create(ctx, user.User{Name: "Ann", Email: "Ann@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	_, err = f.users.Create(ctx, user.User{Name: "Other", Email: "ann@example.com"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	found, ok, err := f.users.GetByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.ID, found.ID)
}

func TestUserRepository_SearchOrdersAndLimits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, u := range []user.User{
		{Name: "Zed", Email: "zed@camp.org"},
		{Name: "Amy", Email: "amy@camp.org"},
		{Name: "Bob", Email: "bob@elsewhere.net"},
	} {
		_, err := f.users.Create(ctx, u)
		require.NoError(t, err)
	}

	got, err := f.users.Search(ctx, "CAMP", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Amy", got[0].Name)
	assert.Equal(t, "Zed", got[1].Name)

	got, err = f.users.Search(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Amy", got[0].Name)
}

func TestEventRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev, act, cat, tm := f.seedScored(t)

	require.NoError(t, f.events.Delete(ctx, ev.ID))

	_, ok, err := f.activities.GetByID(ctx, act.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = f.activities.GetCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = f.teams.GetByID(ctx, tm.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	leaders, err := f.leaders.ListByActivity(ctx, act.ID)
	require.NoError(t, err)
	assert.Empty(t, leaders)
	scores, err := f.scores.ListByActivity(ctx, act.ID)
	require.NoError(t, err)
	assert.Empty(t, scores)

	// The team name index is released with the team.
	_, err = f.teams.Create(ctx, team.Team{EventID: ev.ID, Name: tm.Name})
	assert.NoError(t, err)
}

func TestActivityRepository_DeleteKeepsTeams(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev, act, _, tm := f.seedScored(t)

	require.NoError(t, f.activities.Delete(ctx, act.ID))

	_, ok, err := f.teams.GetByID(ctx, tm.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	scores, err := f.scores.ListByEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Empty(t, scores)
	isLeader, err := f.leaders.IsLeaderInEvent(ctx, ev.ID, 2)
	require.NoError(t, err)
	assert.False(t, isLeader)
}

func TestActivityRepository_SaveCategoriesIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev, act, cat, _ := f.seedScored(t)

	other, otherCats, err := f.activities.Create(ctx, activity.Activity{EventID: ev.ID, Name: "Quiz"},
		[]activity.ScoreCategory{{Name: "Accuracy", MaxScore: 5, Weight: 1}})
	require.NoError(t, err)

	_, err = f.activities.SaveCategories(ctx, act.ID, []activity.ScoreCategory{
		{Name: "Style", MaxScore: 5, Weight: 2},
		{ID: otherCats[0].ID, Name: "Stolen", MaxScore: 1, Weight: 1},
	})
	assert.ErrorIs(t, err, activity.ErrCategoryMismatch)

	cats, err := f.activities.ListCategories(ctx, act.ID)
	require.NoError(t, err)
	require.Len(t, cats, 1)

	saved, err := f.activities.SaveCategories(ctx, act.ID, []activity.ScoreCategory{
		{ID: cat.ID, Name: "Speed", MaxScore: 20, Weight: 1},
		{Name: "Style", MaxScore: 5, Weight: 2},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, cat.ID, saved[0].ID)

	cats, err = f.activities.ListCategories(ctx, act.ID)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, 20.0, cats[0].MaxScore)

	otherList, err := f.activities.ListCategories(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Accuracy", otherList[0].Name)
}

func TestLeaderRepository_PairIsUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, act, _, _ := f.seedScored(t)

	_, err := f.leaders.Create(ctx, leader.Assignment{ActivityID: act.ID, UserID: 2, AssignedBy: 1})
	assert.ErrorIs(t, err, leader.ErrAlreadyAssigned)

	list, err := f.leaders.ListByActivity(ctx, act.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Helper", list[0].UserName)
	assert.Equal(t, "helper@example.com", list[0].UserEmail)

	require.NoError(t, f.leaders.Delete(ctx, list[0].ID))
	_, err = f.leaders.Create(ctx, leader.Assignment{ActivityID: act.ID, UserID: 2, AssignedBy: 1})
	assert.NoError(t, err)
}

func TestTeamRepository_NameUniquePerEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev, _, _, tm := f.seedScored(t)

	_, err := f.teams.Create(ctx, team.Team{EventID: ev.ID, Name: "T1"})
	assert.ErrorIs(t, err, team.ErrDuplicateName)

	_, err = f.teams.Create(ctx, team.Team{EventID: ev.ID + 100, Name: "T1"})
	assert.NoError(t, err)

	second, err := f.teams.Create(ctx, team.Team{EventID: ev.ID, Name: "T2"})
	require.NoError(t, err)
	assert.ErrorIs(t, f.teams.Rename(ctx, second.ID, "T1"), team.ErrDuplicateName)

	require.NoError(t, f.teams.Rename(ctx, tm.ID, "Alpha"))
	_, err = f.teams.Create(ctx, team.Team{EventID: ev.ID, Name: "T1"})
	assert.NoError(t, err)

	list, err := f.teams.ListByEvent(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Owner", list[0].CreatedByName)
}

func TestScoreRepository_UpsertKeepsOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ev, act, cat, tm := f.seedScored(t)

	before, err := f.scores.ListByActivity(ctx, act.ID)
	require.NoError(t, err)
	require.Len(t, before, 1)

	updated, err := f.scores.Upsert(ctx, score.Score{
		ActivityID: act.ID, TeamID: tm.ID, CategoryID: cat.ID, Value: 9.5, ScoredBy: 1, Notes: "photo finish",
	})
	require.NoError(t, err)
	assert.Equal(t, before[0].ID, updated.ID)
	assert.Equal(t, "Owner", updated.ScoredByName)

	after, err := f.scores.ListByEvent(ctx, ev.ID)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, 9.5, after[0].Value)
	assert.Equal(t, "photo finish", after[0].Notes)
	assert.Equal(t, "T1", after[0].TeamName)
	assert.Equal(t, "Speed", after[0].CategoryName)
}

func TestSeedDemo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	SeedDemo(f.store, "hash")
	SeedDemo(f.store, "hash")

	organizer, ok, err := f.users.GetByEmail(ctx, DemoOrganizerEmail)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hash", organizer.PasswordHash)

	events, err := f.events.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, organizer.ID, events[0].CreatorID)

	teams, err := f.teams.ListByEvent(ctx, events[0].ID)
	require.NoError(t, err)
	assert.Len(t, teams, 2)

	cats, err := f.activities.ListCategoriesByEvent(ctx, events[0].ID)
	require.NoError(t, err)
	assert.Len(t, cats, 2)

	leaderUser, _, err := f.users.GetByEmail(ctx, DemoLeaderEmail)
	require.NoError(t, err)
	isLeader, err := f.leaders.IsLeaderInEvent(ctx, events[0].ID, leaderUser.ID)
	require.NoError(t, err)
	assert.True(t, isLeader)
}
