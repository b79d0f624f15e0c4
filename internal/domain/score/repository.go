package score

import "context"

type Repository interface {
	// Upsert inserts the score or overwrites value, notes, scorer and timestamp of the existing key.
	Upsert(ctx context.Context, s Score) (Score, error)
	ListByActivity(ctx context.Context, activityID int64) ([]Score, error)
	ListByEvent(ctx context.Context, eventID int64) ([]Score, error)
}
