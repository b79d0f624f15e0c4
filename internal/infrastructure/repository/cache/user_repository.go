package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/event-scoring/internal/domain/user"
	basecache "github.com/riskibarqy/event-scoring/internal/platform/cache"
)

// UserRepository caches user lookups by id. Users are never updated or deleted,
// so only misses need care: they are dropped right away so a later registration
// under that id is visible.
type UserRepository struct {
	next  user.Repository
	cache *basecache.Store
}

func NewUserRepository(next user.Repository, cache *basecache.Store) *UserRepository {
	return &UserRepository{next: next, cache: cache}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	return r.next.Create(ctx, u)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, bool, error) {
	key := "user:id:" + strconv.FormatInt(id, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedUserByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedUserByID{}, err
		}
		return cachedUserByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return user.User{}, false, err
	}
	if !cached.exists {
		r.cache.Delete(ctx, key)
	}
	return cached.value, cached.exists, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return r.next.GetByEmail(ctx, email)
}

// Exists answers from the id cache; it backs token subject checks on every request.
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, exists, err := r.GetByID(ctx, id)
	return exists, err
}

func (r *UserRepository) Search(ctx context.Context, query string, limit int) ([]user.User, error) {
	items, err := r.next.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return append([]user.User(nil), items...), nil
}

type cachedUserByID struct {
	value  user.User
	exists bool
}
