package repository_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/repository"
	"github.com/finpal/finpal-backend/internal/testutil"
)

// TestGoalRepository_LoadGoals tests goal-blob reads.
//
// WHY: The goals blob is written by multiple client generations. Loads
// must tolerate empty and malformed blobs, returning an empty list rather
// than failing whole requests over one bad document.
func TestGoalRepository_LoadGoals(t *testing.T) {
	t.Run("returns empty slice for a fresh user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewGoalRepository(db)

		userID := testutil.NewUser().Build(t, db)

		goals, err := repo.LoadGoals(userID)
		if err != nil {
			t.Fatalf("LoadGoals() returned unexpected error: %v", err)
		}
		if len(goals) != 0 {
			t.Errorf("Expected no goals, got %d", len(goals))
		}
	})

	t.Run("returns empty slice for a malformed blob", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewGoalRepository(db)

		userID := testutil.NewUser().Build(t, db)
		if _, err := db.Exec(`UPDATE user SET goals = 'not-json' WHERE id = ?`, userID); err != nil {
			t.Fatalf("Failed to corrupt goals blob: %v", err)
		}

		goals, err := repo.LoadGoals(userID)
		if err != nil {
			t.Fatalf("LoadGoals() returned unexpected error: %v", err)
		}
		if len(goals) != 0 {
			t.Errorf("Expected no goals from malformed blob, got %d", len(goals))
		}
	})

	t.Run("returns not found for an unknown user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewGoalRepository(db)

		_, err := repo.LoadGoals(testutil.MakeID())

		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

// TestGoalRepository_ReplaceGoals tests the whole-document write.
//
// WHY: Sync is replace-not-merge. A goal missing from the new list must be
// gone after the write, and the stored amounts must survive a round trip
// through the blob encoding.
func TestGoalRepository_ReplaceGoals(t *testing.T) {
	t.Run("overwrites the previous list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewGoalRepository(db)

		userID := testutil.NewUser().
			WithGoals(
				testutil.NewGoal("old-a").WithTarget(1000).Goal(),
				testutil.NewGoal("old-b").WithTarget(2000).Goal(),
			).
			Build(t, db)

		err := repo.ReplaceGoals(userID, []model.Goal{
			testutil.NewGoal("new").WithTarget(5000).Goal(),
		})
		if err != nil {
			t.Fatalf("ReplaceGoals() returned unexpected error: %v", err)
		}

		goals, err := repo.LoadGoals(userID)
		if err != nil {
			t.Fatalf("LoadGoals() returned unexpected error: %v", err)
		}

		if len(goals) != 1 {
			t.Fatalf("Expected 1 goal after replace, got %d", len(goals))
		}
		if goals[0].ID != "new" {
			t.Errorf("Expected goal %q, got %q", "new", goals[0].ID)
		}
		if !goals[0].TargetAmount.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("Expected target 5000, got %s", goals[0].TargetAmount)
		}
	})

	t.Run("nil list stores an empty list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewGoalRepository(db)

		userID := testutil.NewUser().
			WithGoals(testutil.NewGoal("only").WithTarget(1000).Goal()).
			Build(t, db)

		if err := repo.ReplaceGoals(userID, nil); err != nil {
			t.Fatalf("ReplaceGoals() returned unexpected error: %v", err)
		}

		goals, err := repo.LoadGoals(userID)
		if err != nil {
			t.Fatalf("LoadGoals() returned unexpected error: %v", err)
		}
		if len(goals) != 0 {
			t.Errorf("Expected empty list, got %d goals", len(goals))
		}
	})

	t.Run("returns not found for an unknown user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewGoalRepository(db)

		err := repo.ReplaceGoals(testutil.MakeID(), nil)

		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

// TestGoalRepository_IncrementSaved tests the contribution write.
//
// WHY: Contributions are the one partial update on the blob. The increment
// must land on the right goal, seed from the legacy current_amount alias
// when that is all the goal has, and reject unknown goal IDs.
func TestGoalRepository_IncrementSaved(t *testing.T) {
	t.Run("adds to the existing saved amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewGoalRepository(db)

		userID := testutil.NewUser().
			WithGoals(
				testutil.NewGoal("bike").WithTarget(20000).WithSaved(3000).Goal(),
				testutil.NewGoal("trip").WithTarget(50000).Goal(),
			).
			Build(t, db)

		if err := repo.IncrementSaved(userID, "bike", decimal.NewFromInt(1500)); err != nil {
			t.Fatalf("IncrementSaved() returned unexpected error: %v", err)
		}

		goals, err := repo.LoadGoals(userID)
		if err != nil {
			t.Fatalf("LoadGoals() returned unexpected error: %v", err)
		}

		for _, g := range goals {
			switch g.ID {
			case "bike":
				if g.CurrentSaved == nil || !g.CurrentSaved.Equal(decimal.NewFromInt(4500)) {
					t.Errorf("Expected saved 4500, got %v", g.CurrentSaved)
				}
			case "trip":
				if g.CurrentSaved != nil && !g.CurrentSaved.IsZero() {
					t.Errorf("Expected untouched goal, got saved %v", g.CurrentSaved)
				}
			}
		}
	})

	t.Run("seeds from the legacy current_amount alias", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewGoalRepository(db)

		userID := testutil.NewUser().
			WithGoals(testutil.NewGoal("legacy").WithTarget(10000).WithLegacyCurrent(2000).Goal()).
			Build(t, db)

		if err := repo.IncrementSaved(userID, "legacy", decimal.NewFromInt(500)); err != nil {
			t.Fatalf("IncrementSaved() returned unexpected error: %v", err)
		}

		goals, err := repo.LoadGoals(userID)
		if err != nil {
			t.Fatalf("LoadGoals() returned unexpected error: %v", err)
		}

		if goals[0].CurrentSaved == nil || !goals[0].CurrentSaved.Equal(decimal.NewFromInt(2500)) {
			t.Errorf("Expected saved 2500, got %v", goals[0].CurrentSaved)
		}
		if goals[0].CurrentAmount != nil {
			t.Errorf("Expected legacy alias cleared, got %v", goals[0].CurrentAmount)
		}
	})

	t.Run("returns goal not found for an unknown goal ID", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewGoalRepository(db)

		userID := testutil.NewUser().
			WithGoals(testutil.NewGoal("only").WithTarget(1000).Goal()).
			Build(t, db)

		err := repo.IncrementSaved(userID, "missing", decimal.NewFromInt(100))

		if !errors.Is(err, apperrors.ErrGoalNotFound) {
			t.Errorf("Expected ErrGoalNotFound, got %v", err)
		}
	})
}
