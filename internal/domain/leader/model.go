package leader

import (
	"errors"
	"time"
)

// ErrAlreadyAssigned is returned when the (activity, user) unique constraint is violated.
var ErrAlreadyAssigned = errors.New("user is already a leader of this activity")

// Assignment grants a user scoring rights on one activity.
type Assignment struct {
	ID         int64
	ActivityID int64
	UserID     int64
	AssignedBy int64
	AssignedAt time.Time
	UserName   string
	UserEmail  string
}
