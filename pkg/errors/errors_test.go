package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", NewValidationError("password", MsgPasswordTooShort), http.StatusBadRequest},
		{"conflict", ErrEmailRegistered, http.StatusBadRequest},
		{"authentication", ErrInvalidCredentials, http.StatusBadRequest},
		{"server", NewServerError("lookup failed", cause), http.StatusInternalServerError},
		{"wrapped validation", fmt.Errorf("register: %w", ErrAllFieldsRequired), http.StatusBadRequest},
		{"plain error", cause, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, StatusOf(tt.err))
			assert.Equal(t, tt.status < 500, IsClientFault(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "All fields are required", ErrAllFieldsRequired.Error())
	assert.Equal(t, "Email already registered", ErrEmailRegistered.Error())
	assert.Equal(t, "Invalid credentials", ErrInvalidCredentials.Error())
	assert.Equal(t, "user already exists", NewConflictError("user", "").Error())
}

func TestServerError_Unwrap(t *testing.T) {
	cause := errors.New("socket closed")
	err := NewServerError("failed to create user", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "socket closed")
	assert.Equal(t, "failed to create user", NewServerError("failed to create user", nil).Error())
}
