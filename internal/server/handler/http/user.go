package http

import (
	"context"
	"encoding/json"
	"net/http"

	"contactdesk/internal/middleware"
	"contactdesk/internal/models"
)

// UserService defines the user operations required by the HTTP handlers.
type UserService interface {
	// Register creates a new account.
	Register(ctx context.Context, req models.RegisterUserRequest) (models.UserResponse, error)
	// Login verifies credentials and issues a fresh session token.
	Login(ctx context.Context, req models.LoginUserRequest) (models.UserResponse, error)
	// Current returns the authenticated user's profile.
	Current(user *models.User) models.UserResponse
	// Update applies the provided profile fields.
	Update(ctx context.Context, user *models.User, req models.UpdateUserRequest) (models.UserResponse, error)
	// Logout clears the user's session token.
	Logout(ctx context.Context, user *models.User) (models.UserResponse, error)
}

// UserHandler handles HTTP requests for registration, login and profile
// management.
type UserHandler struct {
	UserService UserService
}

// Register handles POST /api/users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.UserService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, resp)
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.UserService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, resp)
}

// Current handles GET /api/users/current.
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeData(w, h.UserService.Current(user))
}

// Update handles PATCH /api/users/current.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.UserService.Update(r.Context(), user, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, resp)
}

// Logout handles DELETE /api/users/current.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp, err := h.UserService.Logout(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, resp)
}
