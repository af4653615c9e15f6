package service

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finpal/finpal-backend/internal/localization"
	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/repository"
)

// SavingsService computes the monthly savings available for goals plus
// budget-utilization metrics. The arithmetic lives in Compute, which is
// pure over already-fetched data; ForUser wires in the two store reads.
type SavingsService struct {
	userRepo       *repository.UserRepository
	profileService *ProfileService
	spending       *SpendingService
	localization   localization.Config
}

// NewSavingsService creates a new SavingsService with the provided
// dependencies and localization tables.
func NewSavingsService(
	userRepo *repository.UserRepository,
	profileService *ProfileService,
	spending *SpendingService,
	loc localization.Config,
) *SavingsService {
	return &SavingsService{
		userRepo:       userRepo,
		profileService: profileService,
		spending:       spending,
		localization:   loc,
	}
}

// Compute derives the savings breakdown from a profile and the current
// month's spending.
//
// MonthlySavings comes from the budget (planned spending), not actual
// expenses: max(0, salary-budget) when a budget is set, else the whole
// salary. Overspending is surfaced via BudgetUsedPercentage and the
// matrix's budget_exceeded flag instead of shrinking the goal pool.
func (s *SavingsService) Compute(profile model.Profile, fin model.FinancialProfile, spending model.SpendingSummary) model.SavingsBreakdown {
	breakdown := model.SavingsBreakdown{
		MonthlyExpenses:    decimal.NewFromFloat(spending.Total),
		TransactionCount:   spending.TransactionCount,
		ExpensesByCategory: spending.ByCategory,
		HasSalary:          fin.MonthlySalary != nil,
		HasBudget:          fin.MonthlyBudget != nil,
	}
	if breakdown.ExpensesByCategory == nil {
		breakdown.ExpensesByCategory = map[string]float64{}
	}

	if fin.MonthlySalary != nil {
		breakdown.MonthlySalary = *fin.MonthlySalary
	}
	if fin.MonthlyBudget != nil {
		breakdown.MonthlyBudget = *fin.MonthlyBudget
	}

	breakdown.PPPMultiplier = s.localization.PPPMultiplier(
		profile.Location,
		profile.Preferences.LocationBudgetingEnabled,
	)
	if breakdown.MonthlyBudget.IsPositive() {
		breakdown.PPPAdjustedBudget = breakdown.MonthlyBudget.Mul(breakdown.PPPMultiplier)
	}

	if breakdown.HasBudget && breakdown.MonthlyBudget.IsPositive() {
		breakdown.MonthlySavings = decimal.Max(decimal.Zero, breakdown.MonthlySalary.Sub(breakdown.MonthlyBudget))
		breakdown.BudgetUsedPercentage = breakdown.MonthlyExpenses.
			Div(breakdown.MonthlyBudget).
			Mul(decimal.NewFromInt(100)).
			Round(1)
		breakdown.ExpectedSavings = decimal.Max(decimal.Zero, breakdown.MonthlySalary.Sub(breakdown.MonthlyBudget))
	} else {
		// No budget: the whole salary is treated as available for goals.
		breakdown.MonthlySavings = breakdown.MonthlySalary
	}

	breakdown.SavingsVsExpected = breakdown.MonthlySavings.Sub(breakdown.ExpectedSavings)

	return breakdown
}

// ForUser loads the profile and the current month's spending, then
// computes the breakdown. The two reads are independent and run
// concurrently; they are not a single snapshot, which is an accepted
// staleness window on this read-mostly path.
func (s *SavingsService) ForUser(userID string, now time.Time) (model.SavingsBreakdown, error) {
	var (
		profile  model.Profile
		spending model.SpendingSummary
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		profile, err = s.userRepo.GetProfile(userID)
		return err
	})
	g.Go(func() error {
		var err error
		spending, err = s.spending.Summary(userID, PeriodMonth, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.SavingsBreakdown{}, err
	}

	fin := s.profileService.ResolveFinancial(profile.Financial)
	return s.Compute(profile, fin, spending), nil
}
