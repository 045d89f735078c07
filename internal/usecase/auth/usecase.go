package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "login-signup-service/internal/domain/user"
	apperrors "login-signup-service/pkg/errors"
	"login-signup-service/pkg/logger"
	"login-signup-service/pkg/security"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 6

// Repository defines the storage collaborator for user records.
// GetByEmail returns (nil, nil) when no record matches.
// Create returns domain.ErrDuplicateEmail (possibly wrapped) when the email is taken.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Usecase implements the credential workflow: signup and login.
type Usecase struct {
	repo     Repository
	hasher   security.PasswordHasher
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time

	placeholderOnce sync.Once
	placeholderHash string
}

// New creates a new Usecase.
func New(r Repository, h security.PasswordHasher, log *zap.Logger) *Usecase {
	return &Usecase{
		repo:     r,
		hasher:   h,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
	}
}

// Register validates the input, rejects duplicate emails, hashes the password
// and stores a new record.
//
// The existence check and the insert are separate storage calls. Repositories
// also enforce uniqueness, so the loser of a concurrent signup still gets a
// ConflictError.
func (uc *Usecase) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	log := logger.WithContext(ctx, uc.log).With(zap.String("email", in.Email))
	log.Info("registering user")

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("register validation failed", zap.String("reason", "missing field"))
		return nil, apperrors.ErrAllFieldsRequired
	}
	if err := uc.validate.Var(in.Password, fmt.Sprintf("min=%d", MinPasswordLength)); err != nil {
		log.Warn("register validation failed", zap.String("reason", "password too short"))
		return nil, apperrors.NewValidationError("password", apperrors.MsgPasswordTooShort)
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to check existing email", zap.Error(err))
		return nil, apperrors.NewServerError("failed to check existing email", err)
	}
	if existing != nil {
		log.Warn("email already registered")
		return nil, apperrors.ErrEmailRegistered
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, apperrors.NewServerError("failed to hash password", err)
	}

	id, err := uc.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    uc.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			log.Warn("email registered concurrently")
			return nil, apperrors.ErrEmailRegistered
		}
		log.Error("failed to create user", zap.Error(err))
		return nil, apperrors.NewServerError("failed to create user", err)
	}

	log.Info("user registered", zap.String("id", id))
	return &RegisterResponse{ID: id, Message: apperrors.MsgAccountCreated}, nil
}

// Authenticate checks an email/password pair. An unknown email and a wrong
// password produce the same error.
func (uc *Usecase) Authenticate(ctx context.Context, in AuthenticateRequest) (*AuthenticateResponse, error) {
	log := logger.WithContext(ctx, uc.log).With(zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("login validation failed", zap.String("reason", "missing field"))
		return nil, apperrors.ErrAllFieldsRequired
	}

	u, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to look up user", zap.Error(err))
		return nil, apperrors.NewServerError("failed to look up user", err)
	}
	if u == nil {
		uc.comparePlaceholder(in.Password)
		log.Info("login rejected", zap.String("reason", "unknown email"))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := uc.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			log.Info("login rejected", zap.String("reason", "password mismatch"))
			return nil, apperrors.ErrInvalidCredentials
		}
		log.Error("failed to verify password", zap.Error(err))
		return nil, apperrors.NewServerError("failed to verify password", err)
	}

	log.Info("user authenticated", zap.String("id", u.ID))
	return &AuthenticateResponse{
		Name:    u.Name,
		Message: fmt.Sprintf(apperrors.MsgWelcomeBackTemplate, u.Name),
	}, nil
}

// comparePlaceholder spends one hash comparison so the unknown-email path
// takes about as long as the wrong-password path.
func (uc *Usecase) comparePlaceholder(password string) {
	uc.placeholderOnce.Do(func() {
		h, err := uc.hasher.Hash("placeholder-password")
		if err != nil {
			uc.log.Warn("failed to compute placeholder hash", zap.Error(err))
			return
		}
		uc.placeholderHash = h
	})
	if uc.placeholderHash == "" {
		return
	}
	_ = uc.hasher.Compare(uc.placeholderHash, password)
}
