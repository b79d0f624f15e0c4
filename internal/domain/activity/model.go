package activity

import (
	"errors"
	"time"
)

const DefaultWeight = 1.0

// ErrCategoryMismatch is returned when a category update targets a category of another activity.
var ErrCategoryMismatch = errors.New("score category does not belong to activity")

type Activity struct {
	ID           int64
	EventID      int64
	Name         string
	Description  string
	ActivityDate time.Time
	CreatedAt    time.Time
}

// ScoreCategory is one weighted, max-bounded scoring dimension of an activity.
type ScoreCategory struct {
	ID         int64
	ActivityID int64
	Name       string
	MaxScore   float64
	Weight     float64
}

// MaxWeighted is the best weighted contribution this category can make.
func (c ScoreCategory) MaxWeighted() float64 {
	return c.MaxScore * c.Weight
}

// Accepts reports whether value lies within [0, MaxScore].
func (c ScoreCategory) Accepts(value float64) bool {
	return value >= 0 && value <= c.MaxScore
}

type Patch struct {
	Name         *string
	Description  *string
	ActivityDate *time.Time
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.ActivityDate == nil
}

func (p Patch) Apply(a Activity) Activity {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.ActivityDate != nil {
		a.ActivityDate = *p.ActivityDate
	}
	return a
}
