package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "login-signup-service/internal/domain/user"
	"login-signup-service/pkg/logger"
)

// keyPrefix namespaces user records looked up by email.
const keyPrefix = "user:email:"

// UserCache defines the interface for user caching operations.
type UserCache interface {
	// Get retrieves a user by email.
	// Returns nil if the user is not in the cache.
	Get(ctx context.Context, email string) (*domain.User, error)

	// Set stores a user with the configured TTL.
	Set(ctx context.Context, user *domain.User) error
}

// cachedUser is the JSON layout stored in Redis. domain.User carries no
// tags, so the wire shape is pinned here.
type cachedUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// RedisUserCache implements UserCache using Redis as the backing store.
type RedisUserCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisUserCache creates a new Redis-backed user cache.
func NewRedisUserCache(client redis.UniversalClient, ttl time.Duration, log *zap.Logger) *RedisUserCache {
	return &RedisUserCache{
		client: client,
		ttl:    ttl,
		log:    log.Named("user_cache"),
	}
}

// Key returns the Redis key for an email address.
func Key(email string) string {
	return keyPrefix + email
}

// Get retrieves a user from Redis.
func (c *RedisUserCache) Get(ctx context.Context, email string) (*domain.User, error) {
	log := logger.WithContext(ctx, c.log)

	data, err := c.client.Get(ctx, Key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		log.Debug("cache miss", zap.String("email", email))
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get from cache", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	var cu cachedUser
	if err := json.Unmarshal(data, &cu); err != nil {
		log.Error("failed to unmarshal cached user", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	log.Debug("cache hit", zap.String("email", email))
	return &domain.User{
		ID:           cu.ID,
		Name:         cu.Name,
		Email:        cu.Email,
		PasswordHash: cu.PasswordHash,
		CreatedAt:    cu.CreatedAt,
	}, nil
}

// Set stores a user in Redis with TTL.
func (c *RedisUserCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("cannot cache nil user")
	}

	log := logger.WithContext(ctx, c.log)

	data, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	})
	if err != nil {
		log.Error("failed to marshal user for cache", zap.String("email", user.Email), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, Key(user.Email), data, c.ttl).Err(); err != nil {
		log.Error("failed to set cache", zap.String("email", user.Email), zap.Error(err))
		return err
	}

	log.Debug("cached user", zap.String("email", user.Email), zap.Duration("ttl", c.ttl))
	return nil
}
