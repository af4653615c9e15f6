package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/finpal/finpal-backend/internal/api"
	"github.com/finpal/finpal-backend/internal/config"
	"github.com/finpal/finpal-backend/internal/database"
	"github.com/finpal/finpal-backend/internal/localization"
	"github.com/finpal/finpal-backend/internal/repository"
	"github.com/finpal/finpal-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.Log)

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	logger.Infof("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// Shared lookup tables
	locConfig := localization.DefaultConfig()
	rangeTables := service.DefaultRangeTables()

	// Create services
	systemService := service.NewSystemService(db)
	userService := service.NewUserService(userRepo, locConfig)
	profileService := service.NewProfileService(userRepo, rangeTables)
	spendingService := service.NewSpendingService(transactionRepo)
	transactionService := service.NewTransactionService(userRepo, transactionRepo)
	savingsService := service.NewSavingsService(userRepo, profileService, spendingService, locConfig)
	goalService := service.NewGoalService(userRepo, goalRepo, locConfig)
	progressService := service.NewProgressService(userRepo, goalRepo, profileService, spendingService, savingsService)
	patternsService := service.NewPatternsService(userRepo, spendingService, logger)

	// Nightly spending-pattern refresh
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Scheduler.PatternsRefreshSchedule, func() {
		if err := patternsService.RefreshAll(time.Now().UTC()); err != nil {
			logger.WithError(err).Error("pattern refresh sweep failed")
		}
	})
	if err != nil {
		logger.Fatalf("Failed to schedule pattern refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(
		systemService,
		userService,
		profileService,
		transactionService,
		spendingService,
		goalService,
		progressService,
		cfg,
		logger,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// newLogger builds the application logger: JSON output in production,
// text elsewhere, level from configuration.
func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()

	if cfg.Env == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
