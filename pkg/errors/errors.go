package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Messages returned to clients. They are part of the public contract.
const (
	MsgAllFieldsRequired   = "All fields are required"
	MsgPasswordTooShort    = "Password must be at least 6 characters"
	MsgEmailRegistered     = "Email already registered"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgInvalidRequestBody  = "Invalid request body"
	MsgServerError         = "Server error"
	MsgAccountCreated      = "Account created successfully"
	MsgWelcomeBackTemplate = "Welcome back, %s"
)

// Common application errors
var (
	ErrAllFieldsRequired  = NewValidationError("", MsgAllFieldsRequired)
	ErrInvalidRequestBody = NewValidationError("", MsgInvalidRequestBody)
	ErrEmailRegistered    = NewConflictError("user", MsgEmailRegistered)
	ErrInvalidCredentials = NewAuthenticationError(MsgInvalidCredentials)
)

// HTTPStatuser is implemented by errors that know which HTTP status they map to.
type HTTPStatuser interface {
	HTTPStatus() int
}

// ValidationError represents invalid or missing client input.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error returns the client-facing message.
func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPStatus implements HTTPStatuser
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// ConflictError represents a resource that already exists
type ConflictError struct {
	Resource string
	Message  string
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus implements HTTPStatuser. Conflicts are reported as 400, not 409.
func (e *ConflictError) HTTPStatus() int {
	return http.StatusBadRequest
}

// AuthenticationError is returned for both an unknown account and a wrong
// password. Callers must not be able to tell the two apart.
type AuthenticationError struct {
	Message string
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{Message: message}
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	return e.Message
}

// HTTPStatus implements HTTPStatuser
func (e *AuthenticationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// ServerError represents an unexpected failure. Its detail is for logs only.
type ServerError struct {
	Message string
	Err     error
}

// NewServerError creates a new server error wrapping err
func NewServerError(message string, err error) *ServerError {
	return &ServerError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *ServerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *ServerError) Unwrap() error {
	return e.Err
}

// HTTPStatus implements HTTPStatuser
func (e *ServerError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// StatusOf returns the HTTP status carried by err, or 500 when err does not
// carry one.
func StatusOf(err error) int {
	var s HTTPStatuser
	if errors.As(err, &s) {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// IsClientFault reports whether err should be shown to the caller as-is.
func IsClientFault(err error) bool {
	return StatusOf(err) < http.StatusInternalServerError
}
