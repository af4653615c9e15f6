package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrGoalNotFound indicates that a goal with the given ID does not exist
	// in the user's active goal list.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
// Malformed goal data (bad target_amount, unparseable target_date) is NOT part
// of this taxonomy: the allocator recovers it locally to safe defaults.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyGoalID indicates that a goal in a sync payload has no ID.
	ErrEmptyGoalID = errors.New("goal ID cannot be empty")

	// ErrDuplicateGoalID indicates that a sync payload lists the same goal ID twice.
	ErrDuplicateGoalID = errors.New("duplicate goal ID")

	// ErrDuplicateEmail indicates that a user with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)

// Operation failure errors represent system-level failures when retrieving
// or processing data. Store unavailability is the one condition that
// propagates as a hard failure: the computations have no meaningful
// fallback without their inputs.
var (
	// User operation errors
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToRetrieveUser = errors.New("failed to retrieve user")

	// Profile operation errors
	ErrFailedToRetrieveProfile = errors.New("failed to retrieve financial profile")
	ErrFailedToUpdateProfile   = errors.New("failed to update financial profile")

	// Goal operation errors
	ErrFailedToSaveGoals          = errors.New("failed to sync goals")
	ErrFailedToRecordContribution = errors.New("failed to record contribution")
	ErrFailedToBuildAnalysis      = errors.New("failed to build budget analysis")

	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToSaveTransaction      = errors.New("failed to save transaction")
	ErrFailedToAggregateSpending    = errors.New("failed to aggregate spending")

	// Progress operation errors
	ErrFailedToComputeProgress = errors.New("failed to compute goal progress")
)
