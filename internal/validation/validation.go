package validation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/model"
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

// ValidateGoalSync checks a goal-sync payload: every goal needs an ID and
// IDs must be unique within the list. Amounts and dates are deliberately
// NOT validated here; the allocator recovers malformed values locally.
func ValidateGoalSync(goals []model.Goal) error {
	seen := make(map[string]bool, len(goals))
	for _, goal := range goals {
		if goal.ID == "" {
			return apperrors.ErrEmptyGoalID
		}
		if seen[goal.ID] {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateGoalID, goal.ID)
		}
		seen[goal.ID] = true
	}
	return nil
}

// ValidatePeriod normalizes a period keyword; anything unrecognized falls
// back to "month" to match the aggregator's window default.
func ValidatePeriod(period string) string {
	switch period {
	case "week", "month", "year":
		return period
	default:
		return "month"
	}
}
