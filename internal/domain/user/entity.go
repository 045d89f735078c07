package user

import (
	"errors"
	"time"
)

// ErrDuplicateEmail is returned by repositories when an insert collides with
// an existing email.
var ErrDuplicateEmail = errors.New("duplicate email")

// User represents a registered account.
type User struct {
	ID           string    // ID is assigned by the store
	Name         string    // Name is the display name
	Email        string    // Email is the natural key, matched exactly
	PasswordHash string    // PasswordHash is a bcrypt hash, never the plaintext
	CreatedAt    time.Time // CreatedAt is set once at signup
}
