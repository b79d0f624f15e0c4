package user

import (
	"errors"
	"time"
)

// ErrEmailTaken is returned by repositories when the email unique constraint is violated.
var ErrEmailTaken = errors.New("email already in use")

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID int64
}
