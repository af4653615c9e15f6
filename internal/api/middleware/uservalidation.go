// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finpal/finpal-backend/internal/api/response"
	"github.com/finpal/finpal-backend/internal/validation"
)

// ValidateUserIDMiddleware validates that the userId URL parameter is
// present and is a valid UUID. Returns 400 Bad Request otherwise.
//
// Example usage in router:
//
//	r.Route("/users/{userId}", func(r chi.Router) {
//	    r.Use(middleware.ValidateUserIDMiddleware)
//	    r.Get("/goals/progress", handler.Progress)
//	})
func ValidateUserIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userId")

		if userID == "" {
			response.RespondError(w, http.StatusBadRequest, "valid user ID is required", "")
			return
		}

		if err := validation.ValidateUUID(userID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid user ID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
