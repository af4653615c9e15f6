package service

import (
	"github.com/shopspring/decimal"

	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/repository"
)

// RangeTables maps the coarse salary/budget bracket IDs the clients offer
// to approximate monthly amounts. A nil value ("prefer_not") and any
// unknown ID both resolve to no amount, never an error. The tables are
// injected so tests can substitute their own.
type RangeTables struct {
	Salary map[string]*decimal.Decimal
	Budget map[string]*decimal.Decimal
}

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultRangeTables returns the built-in bracket lookup tables.
func DefaultRangeTables() RangeTables {
	return RangeTables{
		Salary: map[string]*decimal.Decimal{
			"below_30k":  amountPtr(25000),
			"30k_75k":    amountPtr(52500),
			"75k_150k":   amountPtr(112500),
			"above_150k": amountPtr(200000),
			"prefer_not": nil,
		},
		Budget: map[string]*decimal.Decimal{
			"below_20k":  amountPtr(15000),
			"20k_40k":    amountPtr(30000),
			"40k_70k":    amountPtr(55000),
			"70k_100k":   amountPtr(85000),
			"above_100k": amountPtr(120000),
		},
	}
}

// ProfileService resolves and updates the financial section of the user
// profile blob.
type ProfileService struct {
	userRepo *repository.UserRepository
	ranges   RangeTables
}

// NewProfileService creates a new ProfileService with the provided
// repository and range tables.
func NewProfileService(userRepo *repository.UserRepository, ranges RangeTables) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		ranges:   ranges,
	}
}

// ResolveFinancial turns the stored financial section into a resolved
// profile: explicit amounts win, range IDs fall back to the lookup tables,
// unknown IDs resolve to nil. Pure; no I/O.
func (s *ProfileService) ResolveFinancial(fin model.Financial) model.FinancialProfile {
	resolved := model.FinancialProfile{
		SalaryRangeID: fin.SalaryRangeID,
		BudgetRangeID: fin.BudgetRangeID,
	}

	if fin.MonthlySalary != nil {
		d := decimal.NewFromFloat(*fin.MonthlySalary)
		resolved.MonthlySalary = &d
	} else if fin.SalaryRangeID != "" {
		resolved.MonthlySalary = s.ranges.Salary[fin.SalaryRangeID]
	}

	if fin.MonthlyBudget != nil {
		d := decimal.NewFromFloat(*fin.MonthlyBudget)
		resolved.MonthlyBudget = &d
	} else if fin.BudgetRangeID != "" {
		resolved.MonthlyBudget = s.ranges.Budget[fin.BudgetRangeID]
	}

	return resolved
}

// LoadFinancialProfile loads the user's profile blob and resolves its
// financial section.
func (s *ProfileService) LoadFinancialProfile(userID string) (model.FinancialProfile, error) {
	profile, err := s.userRepo.GetProfile(userID)
	if err != nil {
		return model.FinancialProfile{}, err
	}
	return s.ResolveFinancial(profile.Financial), nil
}

// FinancialUpdate carries a partial update to the financial section.
// Only non-nil fields are applied.
type FinancialUpdate struct {
	MonthlySalary *float64
	SalaryRangeID *string
	MonthlyBudget *float64
	BudgetRangeID *string
}

// UpdateFinancial applies a partial update to the financial section of the
// profile blob and returns the newly resolved profile.
func (s *ProfileService) UpdateFinancial(userID string, update FinancialUpdate) (model.FinancialProfile, error) {
	profile, err := s.userRepo.GetProfile(userID)
	if err != nil {
		return model.FinancialProfile{}, err
	}

	if update.MonthlySalary != nil {
		profile.Financial.MonthlySalary = update.MonthlySalary
	}
	if update.SalaryRangeID != nil {
		profile.Financial.SalaryRangeID = *update.SalaryRangeID
	}
	if update.MonthlyBudget != nil {
		profile.Financial.MonthlyBudget = update.MonthlyBudget
	}
	if update.BudgetRangeID != nil {
		profile.Financial.BudgetRangeID = *update.BudgetRangeID
	}

	if err := s.userRepo.SaveProfile(userID, profile); err != nil {
		return model.FinancialProfile{}, err
	}

	return s.ResolveFinancial(profile.Financial), nil
}
