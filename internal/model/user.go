package model

import "time"

// User represents a user row from the database. The Profile, Goals and
// Patterns fields mirror the semi-structured JSON columns; they are decoded
// lazily by the repositories that own them.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Profile is the semi-structured profile blob stored on the user row.
type Profile struct {
	Identity    Identity    `json:"identity,omitempty"`
	Financial   Financial   `json:"financial,omitempty"`
	Preferences Preferences `json:"preferences,omitempty"`
	Location    Location    `json:"location,omitempty"`
}

// Identity holds display-facing user settings.
type Identity struct {
	Currency string `json:"currency,omitempty"`
	Locale   string `json:"locale,omitempty"`
}

// Financial holds the income/budget section of the profile. Explicit
// amounts win over range IDs when both are present.
type Financial struct {
	MonthlySalary *float64 `json:"monthly_salary,omitempty"`
	SalaryRangeID string   `json:"salary_range_id,omitempty"`
	MonthlyBudget *float64 `json:"monthly_budget,omitempty"`
	BudgetRangeID string   `json:"budget_range_id,omitempty"`
}

// Preferences holds opt-in feature flags.
type Preferences struct {
	LocationBudgetingEnabled bool `json:"location_budgeting_enabled,omitempty"`
}

// Location holds the user's declared location plus optional overrides for
// the derived PPP figures. Overrides, when present, win over table lookups.
type Location struct {
	CountryCode        string   `json:"country_code,omitempty"`
	City               string   `json:"city,omitempty"`
	LocalityTier       string   `json:"locality_tier,omitempty"`
	LocalityMultiplier *float64 `json:"locality_multiplier,omitempty"`
	PPPMultiplier      *float64 `json:"ppp_multiplier,omitempty"`
}

// SpendingPatterns is the patterns blob refreshed by the nightly job and
// read by the budget-analysis endpoint.
type SpendingPatterns struct {
	AvgMonthlyTotal float64 `json:"avg_monthly_total,omitempty"`
	LastMonthTotal  float64 `json:"last_month_total,omitempty"`
	TopCategory     string  `json:"top_category,omitempty"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}
