package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"login-signup-service/internal/domain/user"
)

// UserRepoMemory is an in-process user store keyed by email.
type UserRepoMemory struct {
	mu    sync.RWMutex
	users map[string]user.User
}

// NewUserRepoMemory creates an empty store.
func NewUserRepoMemory() *UserRepoMemory {
	return &UserRepoMemory{users: make(map[string]user.User)}
}

// Create stores u under its email.
func (r *UserRepoMemory) Create(ctx context.Context, u *user.User) (string, error) {
	if u == nil {
		return "", errors.New("user cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.Email]; ok {
		return "", fmt.Errorf("failed to create user: %w", user.ErrDuplicateEmail)
	}

	stored := *u
	stored.ID = uuid.NewString()
	r.users[u.Email] = stored
	return stored.ID, nil
}

// GetByEmail returns a copy of the stored user, or nil if none exists.
func (r *UserRepoMemory) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// Count returns the number of stored users.
func (r *UserRepoMemory) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
