package ranking

import (
	"math"
	"sort"

	"github.com/riskibarqy/event-scoring/internal/domain/activity"
)

// Compute builds the leaderboard for in. It is a pure function of its input:
// teams are ordered by total score, then activities completed (both descending),
// then name and id so equal standings always come out in the same order.
func Compute(in Input) Board {
	activityIDs := make(map[int64]struct{}, len(in.Activities))
	for _, a := range in.Activities {
		activityIDs[a.ID] = struct{}{}
	}

	categories := make(map[int64]activity.ScoreCategory, len(in.Categories))
	activityMax := make(map[int64]float64, len(in.Activities))
	eventMax := 0.0
	for _, c := range in.Categories {
		if _, ok := activityIDs[c.ActivityID]; !ok {
			continue
		}
		categories[c.ID] = c
		activityMax[c.ActivityID] += c.MaxWeighted()
		eventMax += c.MaxWeighted()
	}
	eventMax = round(eventMax, 2)

	teamIDs := make(map[int64]struct{}, len(in.Teams))
	for _, t := range in.Teams {
		teamIDs[t.ID] = struct{}{}
	}

	totals := make(map[int64]float64, len(in.Teams))
	completed := make(map[int64]map[int64]struct{}, len(in.Teams))
	participants := make(map[int64]map[int64]struct{}, len(in.Activities))
	for _, s := range in.Scores {
		if _, ok := teamIDs[s.TeamID]; !ok {
			continue
		}
		if _, ok := activityIDs[s.ActivityID]; !ok {
			continue
		}
		addMember(completed, s.TeamID, s.ActivityID)
		addMember(participants, s.ActivityID, s.TeamID)

		c, ok := categories[s.CategoryID]
		if !ok {
			continue
		}
		totals[s.TeamID] += s.Value * c.Weight
	}

	standings := make([]TeamStanding, 0, len(in.Teams))
	for _, t := range in.Teams {
		total := round(totals[t.ID], 2)
		standings = append(standings, TeamStanding{
			TeamID:              t.ID,
			Name:                t.Name,
			EventID:             t.EventID,
			TotalScore:          total,
			ActivitiesCompleted: len(completed[t.ID]),
			MaxPossibleScore:    eventMax,
			ScorePercentage:     Percentage(total, eventMax),
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.ActivitiesCompleted != b.ActivitiesCompleted {
			return a.ActivitiesCompleted > b.ActivitiesCompleted
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.TeamID < b.TeamID
	})

	leaders := make(map[int64][]LeaderRef, len(in.Activities))
	for _, l := range in.Leaders {
		leaders[l.ActivityID] = append(leaders[l.ActivityID], LeaderRef{UserID: l.UserID, Name: l.UserName})
	}

	activities := make([]ActivityInfo, 0, len(in.Activities))
	for _, a := range in.Activities {
		refs := leaders[a.ID]
		if refs == nil {
			refs = []LeaderRef{}
		}
		sort.SliceStable(refs, func(i, j int) bool { return refs[i].UserID < refs[j].UserID })
		activities = append(activities, ActivityInfo{
			Activity:          a,
			MaxPossibleScore:  round(activityMax[a.ID], 2),
			TeamsParticipated: len(participants[a.ID]),
			Leaders:           refs,
		})
	}
	sort.SliceStable(activities, func(i, j int) bool {
		a, b := activities[i].Activity, activities[j].Activity
		if !a.ActivityDate.Equal(b.ActivityDate) {
			return a.ActivityDate.Before(b.ActivityDate)
		}
		return a.ID < b.ID
	})

	return Board{
		Teams:            standings,
		Activities:       activities,
		MaxPossibleScore: eventMax,
	}
}

// Percentage returns total/maxScore*100 rounded to one decimal, or 0 when maxScore is not positive.
func Percentage(total, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return round(total/maxScore*100, 1)
}

func addMember(sets map[int64]map[int64]struct{}, key, member int64) {
	set, ok := sets[key]
	if !ok {
		set = make(map[int64]struct{})
		sets[key] = set
	}
	set[member] = struct{}{}
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
