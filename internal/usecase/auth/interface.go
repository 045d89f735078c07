package auth

import "context"

// Service defines the credential workflow consumed by transports.
type Service interface {
	Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error)
	Authenticate(ctx context.Context, in AuthenticateRequest) (*AuthenticateResponse, error)
}
