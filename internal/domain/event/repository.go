package event

import "context"

type Repository interface {
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id int64) (Event, bool, error)
	Create(ctx context.Context, e Event) (Event, error)
	Update(ctx context.Context, id int64, patch Patch) error
	// Delete removes the event together with its activities, categories,
	// leader assignments, teams and scores.
	Delete(ctx context.Context, id int64) error
}
