package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finpal/finpal-backend/internal/apperrors"
)

// userIDParam extracts the userId URL parameter. The validation middleware
// guarantees it is a well-formed UUID by the time a handler runs.
func userIDParam(r *http.Request) string {
	return chi.URLParam(r, "userId")
}

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondServiceError maps a service error to an HTTP status code with a
// consistent error envelope. Anything outside the known taxonomy is a
// store-level failure and maps to 500.
func respondServiceError(w http.ResponseWriter, err error, message string) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrGoalNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrEmptyGoalID),
		errors.Is(err, apperrors.ErrDuplicateGoalID),
		errors.Is(err, apperrors.ErrInvalidUUID),
		errors.Is(err, apperrors.ErrMissingRequiredField):
		status = http.StatusBadRequest
	}

	respondJSON(w, status, map[string]string{
		"error":  message,
		"detail": err.Error(),
	})
}
