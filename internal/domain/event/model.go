package event

import "time"

type Event struct {
	ID          int64
	CreatorID   int64
	CreatorName string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
}

// Patch carries the fields of a partial update. Nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.StartDate == nil && p.EndDate == nil
}

// Apply returns e with the patch applied.
func (p Patch) Apply(e Event) Event {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	return e
}
