package user

import "context"

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, query string, limit int) ([]User, error)
}
