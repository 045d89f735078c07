package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"login-signup-service/internal/adapter/cache"
	domain "login-signup-service/internal/domain/user"
	"login-signup-service/internal/usecase/auth"
	"login-signup-service/pkg/logger"
)

// CachedUserRepository implements auth.Repository with caching support.
// It wraps a persistent repository and a cache implementation.
type CachedUserRepository struct {
	dbRepo auth.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo auth.Repository, cache cache.UserCache, log *zap.Logger) *CachedUserRepository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository. Nothing is cached on write; the
// record is picked up on its first lookup.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (string, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByEmail retrieves a user using the cache-aside pattern. Only hits are
// cached, so a signup is visible to the next login immediately.
func (r *CachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.WithContext(ctx, r.log)

	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, email)
		if err != nil {
			log.Warn("cache get error, falling back to database", zap.String("email", email), zap.Error(err))
		} else if cachedUser != nil {
			return cachedUser, nil
		}
	}

	// Cache miss or cache disabled - collapse concurrent lookups for one email
	result, err, _ := r.group.Do(cache.Key(email), func() (any, error) {
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, email)
			if err == nil && cachedUser != nil {
				log.Debug("user retrieved from cache after single-flight wait", zap.String("email", email))
				return cachedUser, nil
			}
		}

		u, err := r.dbRepo.GetByEmail(ctx, email)
		if err != nil || u == nil {
			return u, err
		}

		if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				log.Warn("failed to cache user", zap.String("email", email), zap.Error(err))
			}
		}

		return u, nil
	})
	if err != nil {
		return nil, err
	}

	u, _ := result.(*domain.User)
	if u == nil {
		return nil, nil
	}
	// singleflight hands the same pointer to every waiter
	cp := *u
	return &cp, nil
}
