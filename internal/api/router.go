package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/finpal/finpal-backend/internal/api/handlers"
	custommiddleware "github.com/finpal/finpal-backend/internal/api/middleware"
	"github.com/finpal/finpal-backend/internal/config"
	"github.com/finpal/finpal-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	userService *service.UserService,
	profileService *service.ProfileService,
	transactionService *service.TransactionService,
	spendingService *service.SpendingService,
	goalService *service.GoalService,
	progressService *service.ProgressService,
	cfg *config.Config,
	log *logrus.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/users", func(r chi.Router) {
			userHandler := handlers.NewUserHandler(userService)
			r.Post("/", userHandler.CreateUser)

			r.Route("/{userId}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUserIDMiddleware)

				r.Get("/", userHandler.GetUser)

				profileHandler := handlers.NewProfileHandler(profileService)
				r.Get("/profile/financial", profileHandler.GetFinancial)
				r.Put("/profile/financial", profileHandler.UpdateFinancial)

				transactionHandler := handlers.NewTransactionHandler(transactionService, spendingService)
				r.Post("/transactions", transactionHandler.Create)
				r.Get("/transactions", transactionHandler.List)
				r.Get("/transactions/summary", transactionHandler.Summary)

				goalHandler := handlers.NewGoalHandler(goalService, progressService)
				r.Post("/goals/sync", goalHandler.SyncGoals)
				r.Get("/goals/progress", goalHandler.Progress)
				r.Get("/goals/budget-analysis", goalHandler.BudgetAnalysis)
				r.Post("/goals/contributions", goalHandler.Contribute)
			})
		})
	})

	return r
}
