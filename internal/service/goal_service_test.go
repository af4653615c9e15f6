package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/repository"
	"github.com/finpal/finpal-backend/internal/service"
	"github.com/finpal/finpal-backend/internal/testutil"
)

// TestGoalService_SyncGoals tests the whole-list sync write.
//
// WHY: Clients push their entire goal list on every change. The sync must
// replace rather than merge, stamp a sync time on every stored goal and
// hand back the installment annotations the client renders.
func TestGoalService_SyncGoals(t *testing.T) {
	now := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

	t.Run("replaces the stored list and stamps sync time", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGoalService(t, db)

		userID := testutil.NewUser().
			WithGoals(testutil.NewGoal("stale").WithTarget(1000).Goal()).
			Build(t, db)

		enriched, err := svc.SyncGoals(userID, []model.Goal{
			testutil.NewGoal("trip").
				WithTarget(12000).
				WithDeadlineMonths(now, 6).
				Goal(),
		}, now)
		if err != nil {
			t.Fatalf("SyncGoals() returned unexpected error: %v", err)
		}

		if len(enriched) != 1 {
			t.Fatalf("Expected 1 goal after sync, got %d", len(enriched))
		}
		if enriched[0].ID != "trip" {
			t.Errorf("Expected goal %q, got %q", "trip", enriched[0].ID)
		}
		if enriched[0].SyncedAt != now.Format(time.RFC3339) {
			t.Errorf("Expected synced_at %q, got %q", now.Format(time.RFC3339), enriched[0].SyncedAt)
		}

		stored, err := repository.NewGoalRepository(db).LoadGoals(userID)
		if err != nil {
			t.Fatalf("LoadGoals() returned unexpected error: %v", err)
		}
		if len(stored) != 1 || stored[0].ID != "trip" {
			t.Errorf("Expected only the synced goal stored, got %v", stored)
		}
	})

	t.Run("empty list clears all goals", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGoalService(t, db)

		userID := testutil.NewUser().
			WithGoals(testutil.NewGoal("a").WithTarget(1000).Goal()).
			Build(t, db)

		enriched, err := svc.SyncGoals(userID, []model.Goal{}, now)
		if err != nil {
			t.Fatalf("SyncGoals() returned unexpected error: %v", err)
		}
		if len(enriched) != 0 {
			t.Errorf("Expected no goals, got %d", len(enriched))
		}
	})

	t.Run("returns not found for an unknown user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGoalService(t, db)

		_, err := svc.SyncGoals(testutil.MakeID(), nil, now)

		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

// TestEnrichGoals tests the installment annotation.
//
// WHY: The synced-goals response tells the client what saving evenly until
// the deadline costs per month. Goals without a usable deadline or amount
// must pass through unannotated instead of failing the sync.
func TestEnrichGoals(t *testing.T) {
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("computes even monthly installments", func(t *testing.T) {
		goals := []model.Goal{
			testutil.NewGoal("trip").WithTarget(12000).WithDeadlineMonths(now, 6).Goal(),
		}

		enriched := service.EnrichGoals(goals, now)

		if enriched[0].MonthsRemaining == nil || *enriched[0].MonthsRemaining != 6 {
			t.Fatalf("Expected 6 months remaining, got %v", enriched[0].MonthsRemaining)
		}
		if enriched[0].MonthlySavingsNeeded == nil || *enriched[0].MonthlySavingsNeeded != 2000 {
			t.Errorf("Expected installment 2000, got %v", enriched[0].MonthlySavingsNeeded)
		}
	})

	t.Run("skips goals without a usable deadline or amount", func(t *testing.T) {
		goals := []model.Goal{
			testutil.NewGoal("no-date").WithTarget(5000).Goal(),
			testutil.NewGoal("bad-date").WithTarget(5000).WithTargetDate("soon").Goal(),
			testutil.NewGoal("no-amount").WithDeadlineMonths(now, 3).Goal(),
		}

		enriched := service.EnrichGoals(goals, now)

		for _, g := range enriched {
			if g.MonthlySavingsNeeded != nil {
				t.Errorf("Goal %s: expected no annotation, got %v", g.ID, *g.MonthlySavingsNeeded)
			}
		}
	})

	t.Run("floors months remaining at one for past deadlines", func(t *testing.T) {
		goals := []model.Goal{
			testutil.NewGoal("overdue").WithTarget(3000).WithTargetDate("2024-01-01").Goal(),
		}

		enriched := service.EnrichGoals(goals, now)

		if enriched[0].MonthsRemaining == nil || *enriched[0].MonthsRemaining != 1 {
			t.Fatalf("Expected 1 month remaining, got %v", enriched[0].MonthsRemaining)
		}
		if enriched[0].MonthlySavingsNeeded == nil || *enriched[0].MonthlySavingsNeeded != 3000 {
			t.Errorf("Expected installment 3000, got %v", enriched[0].MonthlySavingsNeeded)
		}
	})
}

// TestGoalService_Contribute tests the contribution write.
//
// WHY: Contributions move real money expectations. The increment has to
// land on the stored goal and the confirmation message has to carry the
// user's currency symbol.
func TestGoalService_Contribute(t *testing.T) {
	t.Run("increments saved amount and confirms in the user currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGoalService(t, db)

		userID := testutil.NewUser().
			WithGoals(testutil.NewGoal("bike").WithTarget(20000).WithSaved(3000).Goal()).
			Build(t, db)

		message, err := svc.Contribute(userID, "bike", decimal.NewFromInt(1500))
		if err != nil {
			t.Fatalf("Contribute() returned unexpected error: %v", err)
		}

		if message != "Added ₹1,500 to goal" {
			t.Errorf("Unexpected confirmation message: %q", message)
		}

		goals, err := repository.NewGoalRepository(db).LoadGoals(userID)
		if err != nil {
			t.Fatalf("LoadGoals() returned unexpected error: %v", err)
		}
		if goals[0].CurrentSaved == nil || !goals[0].CurrentSaved.Equal(decimal.NewFromInt(4500)) {
			t.Errorf("Expected saved 4500, got %v", goals[0].CurrentSaved)
		}
	})

	t.Run("uses the profile currency when set", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGoalService(t, db)

		userID := testutil.NewUser().
			WithCurrency("USD").
			WithGoals(testutil.NewGoal("laptop").WithTarget(2000).Goal()).
			Build(t, db)

		message, err := svc.Contribute(userID, "laptop", decimal.NewFromInt(250))
		if err != nil {
			t.Fatalf("Contribute() returned unexpected error: %v", err)
		}

		if message != "Added $250 to goal" {
			t.Errorf("Unexpected confirmation message: %q", message)
		}
	})

	t.Run("returns goal not found for an unknown goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGoalService(t, db)

		userID := testutil.NewUser().Build(t, db)

		_, err := svc.Contribute(userID, "missing", decimal.NewFromInt(100))

		if !errors.Is(err, apperrors.ErrGoalNotFound) {
			t.Errorf("Expected ErrGoalNotFound, got %v", err)
		}
	})
}

// TestGoalService_BudgetAnalysis tests the demand-vs-spending read.
//
// WHY: Budget analysis tells the user whether their goal list is
// realistic against their average spending from the patterns blob, and
// flags goals with short runways as urgent.
func TestGoalService_BudgetAnalysis(t *testing.T) {
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("reports per-goal installments against average spending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGoalService(t, db)

		userID := testutil.NewUser().
			WithGoals(
				testutil.NewGoal("trip").WithTarget(12000).WithDeadlineMonths(now, 6).Goal(),
				testutil.NewGoal("rush").WithTarget(12000).WithDeadlineMonths(now, 2).Goal(),
			).
			Build(t, db)

		err := repository.NewUserRepository(db).SavePatterns(userID, model.SpendingPatterns{
			AvgMonthlyTotal: 18000,
			TopCategory:     "food",
		})
		if err != nil {
			t.Fatalf("SavePatterns() returned unexpected error: %v", err)
		}

		analysis, err := svc.BudgetAnalysis(userID, now)
		if err != nil {
			t.Fatalf("BudgetAnalysis() returned unexpected error: %v", err)
		}

		if !analysis.HasGoals {
			t.Fatal("Expected HasGoals to be true")
		}
		if analysis.AvgMonthlySpending != 18000 {
			t.Errorf("Expected avg spending 18000, got %v", analysis.AvgMonthlySpending)
		}
		if len(analysis.Goals) != 2 {
			t.Fatalf("Expected 2 recommendations, got %d", len(analysis.Goals))
		}

		for _, g := range analysis.Goals {
			switch g.GoalID {
			case "trip":
				if g.MonthlySavingsNeeded != 2000 || g.Status != "on_track" {
					t.Errorf("trip: expected 2000/on_track, got %v/%s", g.MonthlySavingsNeeded, g.Status)
				}
			case "rush":
				if g.MonthlySavingsNeeded != 6000 || g.Status != "urgent" {
					t.Errorf("rush: expected 6000/urgent, got %v/%s", g.MonthlySavingsNeeded, g.Status)
				}
			}
		}

		if analysis.TotalMonthlySavingsNeeded != 8000 {
			t.Errorf("Expected total 8000, got %v", analysis.TotalMonthlySavingsNeeded)
		}
		if analysis.Tip != "To reach your goals, aim to save ₹8,000 per month." {
			t.Errorf("Unexpected tip: %q", analysis.Tip)
		}
	})

	t.Run("reports no goals without erroring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGoalService(t, db)

		userID := testutil.NewUser().Build(t, db)

		analysis, err := svc.BudgetAnalysis(userID, now)
		if err != nil {
			t.Fatalf("BudgetAnalysis() returned unexpected error: %v", err)
		}

		if analysis.HasGoals {
			t.Error("Expected HasGoals to be false")
		}
		if analysis.Message != "No goals set. Add goals to get personalized budget recommendations." {
			t.Errorf("Unexpected message: %q", analysis.Message)
		}
	})
}
