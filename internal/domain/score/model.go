package score

import "time"

// Score is keyed by (ActivityID, TeamID, CategoryID); writing the same key again replaces it.
type Score struct {
	ID           int64
	ActivityID   int64
	TeamID       int64
	CategoryID   int64
	Value        float64
	ScoredBy     int64
	Notes        string
	ScoredAt     time.Time
	TeamName     string
	CategoryName string
	ScoredByName string
}

type Key struct {
	ActivityID int64
	TeamID     int64
	CategoryID int64
}

func (s Score) Key() Key {
	return Key{ActivityID: s.ActivityID, TeamID: s.TeamID, CategoryID: s.CategoryID}
}
