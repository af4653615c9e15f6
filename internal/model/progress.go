package model

import "github.com/shopspring/decimal"

// FinancialProfile is the resolved income/budget picture for a user.
// Nil fields mean the user never provided the value (directly or via a
// range selection); downstream math treats them as zero.
type FinancialProfile struct {
	MonthlySalary *decimal.Decimal
	MonthlyBudget *decimal.Decimal
	SalaryRangeID string
	BudgetRangeID string
}

// SavingsBreakdown is the savings calculator's output: how much of the
// user's planned budget is left for goals this month, plus utilization
// metrics. MonthlySavings is derived from the budget, not actual expenses;
// overspending surfaces through BudgetUsedPercentage instead of shrinking
// the goal-funding pool.
type SavingsBreakdown struct {
	MonthlySalary        decimal.Decimal
	MonthlyBudget        decimal.Decimal
	MonthlyExpenses      decimal.Decimal
	MonthlySavings       decimal.Decimal
	BudgetUsedPercentage decimal.Decimal
	ExpectedSavings      decimal.Decimal
	SavingsVsExpected    decimal.Decimal
	PPPMultiplier        decimal.Decimal
	PPPAdjustedBudget    decimal.Decimal
	TransactionCount     int
	ExpensesByCategory   map[string]float64
	HasSalary            bool
	HasBudget            bool
}

// GoalAllocation is the per-goal result of the priority-first allocator,
// computed fresh on every request and never persisted.
type GoalAllocation struct {
	ID                      string
	Label                   string
	Icon                    string
	Color                   string
	Priority                int
	TargetAmount            decimal.Decimal
	TargetDate              string
	CurrentSaved            decimal.Decimal
	AmountNeeded            decimal.Decimal
	IdealMonthly            decimal.Decimal
	AllocatedMonthly        decimal.Decimal
	IsUnderfunded           bool
	ProgressPercentage      decimal.Decimal
	MonthsToComplete        *int
	ProjectedCompletionDate string
	DeadlineAtRisk          bool
	OnTrack                 bool
}

// AllocationMatrix aggregates allocation demand against supply.
type AllocationMatrix struct {
	TotalNeeded    decimal.Decimal
	TotalAvailable decimal.Decimal
	Shortfall      decimal.Decimal
	BudgetExceeded bool
	BudgetOverage  decimal.Decimal
}

// GoalProgress is the full progress report: savings breakdown, per-goal
// allocations, aggregate matrix and a human-readable tip.
type GoalProgress struct {
	Savings            SavingsBreakdown
	Matrix             AllocationMatrix
	Goals              []GoalAllocation
	TotalGoalTarget    decimal.Decimal
	TotalCurrentSaved  decimal.Decimal
	UnallocatedSavings decimal.Decimal
	Tip                string
}
