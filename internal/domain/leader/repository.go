package leader

import "context"

type Repository interface {
	ListByActivity(ctx context.Context, activityID int64) ([]Assignment, error)
	ListByEvent(ctx context.Context, eventID int64) ([]Assignment, error)
	GetByID(ctx context.Context, id int64) (Assignment, bool, error)
	IsLeader(ctx context.Context, activityID, userID int64) (bool, error)
	IsLeaderInEvent(ctx context.Context, eventID, userID int64) (bool, error)
	Create(ctx context.Context, a Assignment) (Assignment, error)
	Delete(ctx context.Context, id int64) error
}
