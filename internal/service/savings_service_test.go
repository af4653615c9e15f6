package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/testutil"
)

func floatPtr(v float64) *float64 { return &v }

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// TestSavingsService_Compute tests the pure savings arithmetic.
//
// WHY: MonthlySavings is the pool every goal allocation draws from. This
// ensures it derives from the planned budget rather than actual spending,
// that overspending surfaces as utilization instead of shrinking the pool,
// and that PPP adjustment only applies when the user opted in.
func TestSavingsService_Compute(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSavingsService(t, db)

	t.Run("derives savings from the budget not actual spending", func(t *testing.T) {
		fin := model.FinancialProfile{
			MonthlySalary: decimalPtr(60000),
			MonthlyBudget: decimalPtr(50000),
		}
		spending := model.SpendingSummary{Total: 20000, TransactionCount: 4}

		breakdown := svc.Compute(model.Profile{}, fin, spending)

		if !breakdown.MonthlySavings.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("Expected savings 10000, got %s", breakdown.MonthlySavings)
		}
		if !breakdown.BudgetUsedPercentage.Equal(decimal.NewFromInt(40)) {
			t.Errorf("Expected 40%% budget used, got %s", breakdown.BudgetUsedPercentage)
		}
		if !breakdown.ExpectedSavings.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("Expected expected savings 10000, got %s", breakdown.ExpectedSavings)
		}
		if !breakdown.SavingsVsExpected.IsZero() {
			t.Errorf("Expected savings vs expected 0, got %s", breakdown.SavingsVsExpected)
		}
	})

	t.Run("treats the whole salary as savings when no budget is set", func(t *testing.T) {
		fin := model.FinancialProfile{MonthlySalary: decimalPtr(50000)}

		breakdown := svc.Compute(model.Profile{}, fin, model.SpendingSummary{Total: 12000})

		if !breakdown.MonthlySavings.Equal(decimal.NewFromInt(50000)) {
			t.Errorf("Expected savings 50000, got %s", breakdown.MonthlySavings)
		}
		if breakdown.HasBudget {
			t.Error("Expected HasBudget to be false")
		}
		if !breakdown.BudgetUsedPercentage.IsZero() {
			t.Errorf("Expected zero budget utilization, got %s", breakdown.BudgetUsedPercentage)
		}
	})

	t.Run("clamps savings at zero when the budget exceeds the salary", func(t *testing.T) {
		fin := model.FinancialProfile{
			MonthlySalary: decimalPtr(30000),
			MonthlyBudget: decimalPtr(50000),
		}

		breakdown := svc.Compute(model.Profile{}, fin, model.SpendingSummary{})

		if !breakdown.MonthlySavings.IsZero() {
			t.Errorf("Expected zero savings, got %s", breakdown.MonthlySavings)
		}
	})

	t.Run("missing salary yields zero savings", func(t *testing.T) {
		breakdown := svc.Compute(model.Profile{}, model.FinancialProfile{}, model.SpendingSummary{})

		if breakdown.HasSalary {
			t.Error("Expected HasSalary to be false")
		}
		if !breakdown.MonthlySavings.IsZero() {
			t.Errorf("Expected zero savings, got %s", breakdown.MonthlySavings)
		}
	})

	t.Run("rounds budget utilization to one decimal", func(t *testing.T) {
		fin := model.FinancialProfile{
			MonthlySalary: decimalPtr(60000),
			MonthlyBudget: decimalPtr(30000),
		}
		spending := model.SpendingSummary{Total: 5000}

		breakdown := svc.Compute(model.Profile{}, fin, spending)

		if breakdown.BudgetUsedPercentage.String() != "16.7" {
			t.Errorf("Expected budget used 16.7, got %s", breakdown.BudgetUsedPercentage)
		}
	})

	t.Run("applies PPP multiplier when location budgeting is enabled", func(t *testing.T) {
		profile := model.Profile{}
		profile.Preferences.LocationBudgetingEnabled = true
		profile.Location.CountryCode = "US"
		profile.Location.City = "New York"

		fin := model.FinancialProfile{
			MonthlySalary: decimalPtr(60000),
			MonthlyBudget: decimalPtr(30000),
		}

		breakdown := svc.Compute(profile, fin, model.SpendingSummary{})

		if breakdown.PPPMultiplier.String() != "3.08" {
			t.Errorf("Expected PPP multiplier 3.08, got %s", breakdown.PPPMultiplier)
		}
		if !breakdown.PPPAdjustedBudget.Equal(decimal.NewFromInt(92400)) {
			t.Errorf("Expected adjusted budget 92400, got %s", breakdown.PPPAdjustedBudget)
		}
	})

	t.Run("keeps the multiplier at one when location budgeting is disabled", func(t *testing.T) {
		profile := model.Profile{}
		profile.Location.CountryCode = "US"
		profile.Location.City = "New York"

		fin := model.FinancialProfile{MonthlyBudget: decimalPtr(30000)}

		breakdown := svc.Compute(profile, fin, model.SpendingSummary{})

		if !breakdown.PPPMultiplier.Equal(decimal.NewFromInt(1)) {
			t.Errorf("Expected PPP multiplier 1, got %s", breakdown.PPPMultiplier)
		}
	})
}

// TestSavingsService_ForUser tests the wired read path.
//
// WHY: ForUser stitches together the profile blob, range resolution and
// the trailing-month spending aggregate. This ensures the pieces compose:
// bracket IDs resolve to amounts and only in-window transactions count.
func TestSavingsService_ForUser(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("resolves salary bracket and sums the trailing month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSavingsService(t, db)

		userID := testutil.NewUser().
			WithSalaryRange("75k_150k").
			WithBudget(30000).
			Build(t, db)

		testutil.CreateTransaction(t, db, userID, 3000, "food", now.AddDate(0, 0, -5))
		testutil.CreateTransaction(t, db, userID, 2000, "transport", now.AddDate(0, 0, -10))
		testutil.CreateTransaction(t, db, userID, 9999, "food", now.AddDate(0, 0, -40))

		breakdown, err := svc.ForUser(userID, now)
		if err != nil {
			t.Fatalf("ForUser() returned unexpected error: %v", err)
		}

		if !breakdown.MonthlySalary.Equal(decimal.NewFromInt(112500)) {
			t.Errorf("Expected bracket salary 112500, got %s", breakdown.MonthlySalary)
		}
		if !breakdown.MonthlySavings.Equal(decimal.NewFromInt(82500)) {
			t.Errorf("Expected savings 82500, got %s", breakdown.MonthlySavings)
		}
		if !breakdown.MonthlyExpenses.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("Expected expenses 5000 from the trailing month, got %s", breakdown.MonthlyExpenses)
		}
		if breakdown.TransactionCount != 2 {
			t.Errorf("Expected 2 transactions in window, got %d", breakdown.TransactionCount)
		}
	})

	t.Run("returns not found for an unknown user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSavingsService(t, db)

		_, err := svc.ForUser(testutil.MakeID(), now)

		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}
