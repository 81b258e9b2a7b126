package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/fjod/go_foodcart/internal/service"
	"github.com/sirupsen/logrus"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.PublicUser, error)
	Login(ctx context.Context, email, password string) (*domain.PublicUser, error)
}

type AuthHandler struct {
	users   UserService
	timeout time.Duration
	responder
}

func NewAuthHandler(users UserService, timeout time.Duration, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{users: users, timeout: timeout, responder: responder{log: log.WithField("handler", "auth")}}
}

type RegisterRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	User domain.PublicUser `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	// Every failure is a 500; clients validate fields before sending.
	var req RegisterRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.internal(w, r, err, "Error registering user")
		return
	}

	user, err := h.users.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		h.internal(w, r, err, "Error registering user")
		return
	}

	h.json(w, http.StatusCreated, UserResponse{User: *user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		h.error(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, err := h.users.Login(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		h.error(w, http.StatusBadRequest, "missing_fields", "Please provide email and password")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		h.error(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	case err != nil:
		h.internal(w, r, err, "Error logging in")
		return
	}

	h.json(w, http.StatusOK, UserResponse{User: *user})
}
