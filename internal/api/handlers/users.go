package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/service"
)

// UserHandler handles user provisioning HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUserRequest represents the user creation payload
type CreateUserRequest struct {
	Email       string `json:"email"`
	CountryCode string `json:"country_code,omitempty"`
	City        string `json:"city,omitempty"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUser provisions a new user with localization-seeded defaults
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if req.Email == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "email is required",
		})
		return
	}

	user, err := h.userService.CreateUser(req.Email, req.CountryCode, req.City)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCreateUser.Error())
		return
	}

	respondJSON(w, http.StatusCreated, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// GetUser retrieves a user by ID
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(userIDParam(r))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveUser.Error())
		return
	}

	respondJSON(w, http.StatusOK, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
