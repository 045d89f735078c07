package auth

// RegisterRequest represents the payload for creating a new account.
type RegisterRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterResponse represents the result of a successful signup.
// ID is for logging only and is not returned to clients.
type RegisterResponse struct {
	ID      string
	Message string
}

// AuthenticateRequest represents the payload for a login attempt.
type AuthenticateRequest struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// AuthenticateResponse represents the result of a successful login.
type AuthenticateResponse struct {
	Name    string
	Message string
}
