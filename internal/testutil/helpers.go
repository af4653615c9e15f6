package testutil

import (
	"database/sql"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/finpal/finpal-backend/internal/localization"
	"github.com/finpal/finpal-backend/internal/repository"
	"github.com/finpal/finpal-backend/internal/service"
)

// NewTestProfileService creates a ProfileService with the default range
// tables against the given test database.
func NewTestProfileService(t *testing.T, db *sql.DB) *service.ProfileService {
	t.Helper()

	return service.NewProfileService(repository.NewUserRepository(db), service.DefaultRangeTables())
}

// NewTestSpendingService creates a SpendingService against the given test database.
func NewTestSpendingService(t *testing.T, db *sql.DB) *service.SpendingService {
	t.Helper()

	return service.NewSpendingService(repository.NewTransactionRepository(db))
}

// NewTestSavingsService creates a SavingsService with default localization
// tables against the given test database.
func NewTestSavingsService(t *testing.T, db *sql.DB) *service.SavingsService {
	t.Helper()

	return service.NewSavingsService(
		repository.NewUserRepository(db),
		NewTestProfileService(t, db),
		NewTestSpendingService(t, db),
		localization.DefaultConfig(),
	)
}

// NewTestProgressService creates a fully wired ProgressService against the
// given test database.
func NewTestProgressService(t *testing.T, db *sql.DB) *service.ProgressService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)
	return service.NewProgressService(
		userRepo,
		repository.NewGoalRepository(db),
		NewTestProfileService(t, db),
		NewTestSpendingService(t, db),
		NewTestSavingsService(t, db),
	)
}

// NewTestGoalService creates a GoalService with default localization
// tables against the given test database.
func NewTestGoalService(t *testing.T, db *sql.DB) *service.GoalService {
	t.Helper()

	return service.NewGoalService(
		repository.NewUserRepository(db),
		repository.NewGoalRepository(db),
		localization.DefaultConfig(),
	)
}

// NewTestUserService creates a UserService with default localization
// tables against the given test database.
func NewTestUserService(t *testing.T, db *sql.DB) *service.UserService {
	t.Helper()

	return service.NewUserService(repository.NewUserRepository(db), localization.DefaultConfig())
}

// NewTestTransactionService creates a TransactionService against the given
// test database.
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewUserRepository(db),
		repository.NewTransactionRepository(db),
	)
}

// NewTestPatternsService creates a PatternsService with a silenced logger
// against the given test database.
func NewTestPatternsService(t *testing.T, db *sql.DB) *service.PatternsService {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return service.NewPatternsService(
		repository.NewUserRepository(db),
		NewTestSpendingService(t, db),
		logger,
	)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeEmail generates a unique email address for testing.
//
// Example usage:
//
//	email := testutil.MakeEmail()
//	// Returns: "test-1a2b3c@example.com"
func MakeEmail() string {
	return "test-" + strings.ToLower(randomAlphanumeric(6)) + "@example.com"
}

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomAlphanumeric(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(alphanumeric[rand.Intn(len(alphanumeric))])
	}
	return sb.String()
}
