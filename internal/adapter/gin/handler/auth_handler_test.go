package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"login-signup-service/internal/usecase/auth"
	apperrors "login-signup-service/pkg/errors"
)

// MockService is a mock implementation of auth.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, in auth.RegisterRequest) (*auth.RegisterResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.RegisterResponse), args.Error(1)
}

func (m *MockService) Authenticate(ctx context.Context, in auth.AuthenticateRequest) (*auth.AuthenticateResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.AuthenticateResponse), args.Error(1)
}

func setupTest(t *testing.T) (*gin.Engine, *MockService) {
	gin.SetMode(gin.TestMode)
	svc := new(MockService)
	h := NewAuthHandler(svc, zaptest.NewLogger(t))

	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	return r, svc
}

func do(r *gin.Engine, path, body string) (*httptest.ResponseRecorder, MessageResponse) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp MessageResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestSignup(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, svc := setupTest(t)
		svc.On("Register", mock.Anything, auth.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}).
			Return(&auth.RegisterResponse{ID: "1", Message: apperrors.MsgAccountCreated}, nil)

		w, resp := do(r, "/signup", `{"name":"Ada","email":"ada@example.com","password":"secret1"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, MessageResponse{Message: "Account created successfully", Success: true}, resp)
		assert.NotContains(t, w.Body.String(), "secret1")
		svc.AssertExpectations(t)
	})

	t.Run("Validation Error", func(t *testing.T) {
		r, svc := setupTest(t)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.ErrAllFieldsRequired)

		w, resp := do(r, "/signup", `{"name":"Ada"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, MessageResponse{Message: "All fields are required", Success: false}, resp)
		assert.JSONEq(t, `{"message":"All fields are required","success":false}`, w.Body.String())
	})

	t.Run("Conflict", func(t *testing.T) {
		r, svc := setupTest(t)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.ErrEmailRegistered)

		w, resp := do(r, "/signup", `{"name":"Ada","email":"ada@example.com","password":"secret1"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email already registered", resp.Message)
	})

	t.Run("Wrapped Client Error Keeps Message", func(t *testing.T) {
		r, svc := setupTest(t)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("register: %w", apperrors.NewValidationError("password", apperrors.MsgPasswordTooShort)))

		w, resp := do(r, "/signup", `{"name":"Ada","email":"ada@example.com","password":"abc"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Password must be at least 6 characters", resp.Message)
	})

	t.Run("Empty Body Is Treated As Empty Object", func(t *testing.T) {
		r, svc := setupTest(t)
		svc.On("Register", mock.Anything, auth.RegisterRequest{}).Return(nil, apperrors.ErrAllFieldsRequired)

		w, resp := do(r, "/signup", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "All fields are required", resp.Message)
		svc.AssertExpectations(t)
	})

	t.Run("Invalid Request Body", func(t *testing.T) {
		r, svc := setupTest(t)

		w, resp := do(r, "/signup", "invalid json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, MessageResponse{Message: "Invalid request body", Success: false}, resp)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Wrong Field Type", func(t *testing.T) {
		r, svc := setupTest(t)

		w, resp := do(r, "/signup", `{"name":"Ada","email":"ada@example.com","password":123456}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", resp.Message)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Server Error Is Not Exposed", func(t *testing.T) {
		r, svc := setupTest(t)
		svc.On("Register", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewServerError("failed to create user", errors.New("mongo: write concern timeout")))

		w, resp := do(r, "/signup", `{"name":"Ada","email":"ada@example.com","password":"secret1"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Server error","success":false}`, w.Body.String())
		assert.NotContains(t, resp.Message, "mongo")
	})

	t.Run("Plain Error Is Server Error", func(t *testing.T) {
		r, svc := setupTest(t)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		w, _ := do(r, "/signup", `{"name":"Ada","email":"ada@example.com","password":"secret1"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, svc := setupTest(t)
		svc.On("Authenticate", mock.Anything, auth.AuthenticateRequest{Email: "ada@example.com", Password: "secret1"}).
			Return(&auth.AuthenticateResponse{Name: "Ada", Message: "Welcome back, Ada"}, nil)

		w, resp := do(r, "/login", `{"email":"ada@example.com","password":"secret1"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, MessageResponse{Message: "Welcome back, Ada", Success: true}, resp)
	})

	t.Run("Invalid Credentials", func(t *testing.T) {
		r, svc := setupTest(t)
		svc.On("Authenticate", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidCredentials)

		w, _ := do(r, "/login", `{"email":"ada@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Invalid credentials","success":false}`, w.Body.String())
	})

	t.Run("Missing Fields", func(t *testing.T) {
		r, svc := setupTest(t)
		svc.On("Authenticate", mock.Anything, auth.AuthenticateRequest{Email: "ada@example.com"}).
			Return(nil, apperrors.ErrAllFieldsRequired)

		w, resp := do(r, "/login", `{"email":"ada@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "All fields are required", resp.Message)
	})

	t.Run("Invalid Request Body", func(t *testing.T) {
		r, _ := setupTest(t)

		w, resp := do(r, "/login", `{"email":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", resp.Message)
	})

	t.Run("Server Error", func(t *testing.T) {
		r, svc := setupTest(t)
		svc.On("Authenticate", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewServerError("failed to look up user", errors.New("connection reset")))

		w, _ := do(r, "/login", `{"email":"ada@example.com","password":"secret1"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"Server error","success":false}`, w.Body.String())
	})
}
