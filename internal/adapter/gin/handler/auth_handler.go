package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"login-signup-service/internal/usecase/auth"
	apperrors "login-signup-service/pkg/errors"
	"login-signup-service/pkg/logger"
)

// AuthHandler handles HTTP requests for signup and login
type AuthHandler struct {
	svc auth.Service
	log *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(svc auth.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		svc: svc,
		log: log,
	}
}

// SignupRequest represents the HTTP request body for creating an account
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the HTTP request body for a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MessageResponse is the body of every signup and login response
type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := h.bindJSON(c, &req); err != nil {
		h.handleError(c, err)
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), auth.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: resp.Message, Success: true})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := h.bindJSON(c, &req); err != nil {
		h.handleError(c, err)
		return
	}

	resp, err := h.svc.Authenticate(c.Request.Context(), auth.AuthenticateRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: resp.Message, Success: true})
}

// bindJSON decodes the request body into dst. An empty body leaves dst zeroed
// so the usecase reports the missing fields.
func (h *AuthHandler) bindJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid request body", zap.Error(err))
		return apperrors.ErrInvalidRequestBody
	}
	return nil
}

// handleError converts usecase errors to HTTP responses. Client faults are
// returned with their own message; everything else becomes a generic 500.
func (h *AuthHandler) handleError(c *gin.Context, err error) {
	var statuser apperrors.HTTPStatuser
	if errors.As(err, &statuser) && apperrors.IsClientFault(err) {
		msg := err.Error()
		if e, ok := statuser.(error); ok {
			msg = e.Error()
		}
		c.JSON(statuser.HTTPStatus(), MessageResponse{Message: msg})
		return
	}

	logger.WithContext(c.Request.Context(), h.log).Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, MessageResponse{Message: apperrors.MsgServerError})
}
