package ranking

import (
	"github.com/riskibarqy/event-scoring/internal/domain/activity"
	"github.com/riskibarqy/event-scoring/internal/domain/leader"
	"github.com/riskibarqy/event-scoring/internal/domain/score"
	"github.com/riskibarqy/event-scoring/internal/domain/team"
)

// Input is everything recorded for one event.
type Input struct {
	EventID    int64
	Activities []activity.Activity
	Categories []activity.ScoreCategory
	Teams      []team.Team
	Scores     []score.Score
	Leaders    []leader.Assignment
}

type TeamStanding struct {
	TeamID              int64
	Name                string
	EventID             int64
	TotalScore          float64
	ActivitiesCompleted int
	MaxPossibleScore    float64
	ScorePercentage     float64
}

type LeaderRef struct {
	UserID int64
	Name   string
}

type ActivityInfo struct {
	Activity          activity.Activity
	MaxPossibleScore  float64
	TeamsParticipated int
	Leaders           []LeaderRef
}

type Board struct {
	Teams            []TeamStanding
	Activities       []ActivityInfo
	MaxPossibleScore float64
}
