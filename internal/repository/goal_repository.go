package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/money"
)

// GoalRepository provides data access methods for the goals blob on the
// user row. The blob is treated as whole-document state: ReplaceGoals
// overwrites the active list rather than merging, and concurrent writers
// are last-writer-wins with no optimistic-concurrency check.
type GoalRepository struct {
	db *sql.DB
}

// NewGoalRepository creates a new GoalRepository with the provided database connection.
func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// LoadGoals retrieves the user's active goal list. A missing or malformed
// blob yields an empty list; only a missing user or store error propagates.
func (s *GoalRepository) LoadGoals(userID string) ([]model.Goal, error) {
	query := `SELECT goals FROM user WHERE id = ?`

	var raw string
	err := s.db.QueryRow(query, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}

	var blob model.GoalBlob
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &blob)
	}

	if blob.ActiveGoals == nil {
		return []model.Goal{}, nil
	}
	return blob.ActiveGoals, nil
}

// ReplaceGoals overwrites the user's entire active goal list. The method
// name is deliberate: callers get replace-not-merge semantics, so any goal
// absent from the new list is gone.
func (s *GoalRepository) ReplaceGoals(userID string, goals []model.Goal) error {
	blob := model.GoalBlob{ActiveGoals: goals}
	if blob.ActiveGoals == nil {
		blob.ActiveGoals = []model.Goal{}
	}

	goalsJSON, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("failed to encode goals: %w", err)
	}

	result, err := s.db.Exec(`UPDATE user SET goals = ? WHERE id = ?`, string(goalsJSON), userID)
	if err != nil {
		return fmt.Errorf("failed to update goals: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check goals update: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// IncrementSaved adds amount to a goal's current_saved. It never
// decrements on its own; negative amounts are the caller's responsibility.
// Returns ErrGoalNotFound when the goal ID is not in the active list.
func (s *GoalRepository) IncrementSaved(userID, goalID string, amount decimal.Decimal) error {
	goals, err := s.LoadGoals(userID)
	if err != nil {
		return err
	}

	found := false
	for i := range goals {
		if goals[i].ID != goalID {
			continue
		}
		// Seed from the legacy current_amount alias when present, then
		// clear it so it cannot shadow the updated value on reads.
		current := decimal.Zero
		switch {
		case goals[i].CurrentAmount != nil:
			current = goals[i].CurrentAmount.Decimal
		case goals[i].CurrentSaved != nil:
			current = goals[i].CurrentSaved.Decimal
		}
		updated := money.NewAmount(current.Add(amount))
		goals[i].CurrentSaved = &updated
		goals[i].CurrentAmount = nil
		found = true
		break
	}

	if !found {
		return apperrors.ErrGoalNotFound
	}

	return s.ReplaceGoals(userID, goals)
}
