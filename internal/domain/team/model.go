package team

import (
	"errors"
	"time"
)

// ErrDuplicateName is returned when the (event, name) unique constraint is violated.
var ErrDuplicateName = errors.New("team name already exists for this event")

type Team struct {
	ID            int64
	EventID       int64
	Name          string
	CreatedBy     int64
	CreatedByName string
	CreatedAt     time.Time
}
