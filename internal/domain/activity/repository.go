package activity

import "context"

type Repository interface {
	ListByEvent(ctx context.Context, eventID int64) ([]Activity, error)
	GetByID(ctx context.Context, id int64) (Activity, bool, error)
	// Create stores the activity and its categories atomically.
	Create(ctx context.Context, a Activity, categories []ScoreCategory) (Activity, []ScoreCategory, error)
	Update(ctx context.Context, id int64, patch Patch) error
	// Delete removes the activity together with its categories, leader assignments and scores.
	Delete(ctx context.Context, id int64) error

	ListCategories(ctx context.Context, activityID int64) ([]ScoreCategory, error)
	ListCategoriesByEvent(ctx context.Context, eventID int64) ([]ScoreCategory, error)
	GetCategory(ctx context.Context, id int64) (ScoreCategory, bool, error)
	// SaveCategories updates categories that carry an ID and inserts the rest.
	SaveCategories(ctx context.Context, activityID int64, categories []ScoreCategory) ([]ScoreCategory, error)
}
