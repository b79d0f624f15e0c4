package team

import "context"

type Repository interface {
	ListByEvent(ctx context.Context, eventID int64) ([]Team, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	Create(ctx context.Context, t Team) (Team, error)
	Rename(ctx context.Context, id int64, name string) error
	// Delete removes the team and every score recorded for it.
	Delete(ctx context.Context, id int64) error
}
