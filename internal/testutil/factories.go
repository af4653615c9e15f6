package testutil

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/money"
)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithSalary(50000).
//	    WithBudget(30000).
//	    WithGoals(goalA, goalB).
//	    Build(t, db)
type UserBuilder struct {
	ID      string
	Email   string
	Profile model.Profile
	Goals   []model.Goal
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	id := MakeID()
	return &UserBuilder{
		ID:    id,
		Email: MakeEmail(),
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithSalary sets an explicit monthly salary.
func (b *UserBuilder) WithSalary(salary float64) *UserBuilder {
	b.Profile.Financial.MonthlySalary = &salary
	return b
}

// WithSalaryRange sets a salary bracket ID without an explicit amount.
func (b *UserBuilder) WithSalaryRange(rangeID string) *UserBuilder {
	b.Profile.Financial.SalaryRangeID = rangeID
	return b
}

// WithBudget sets an explicit monthly budget.
func (b *UserBuilder) WithBudget(budget float64) *UserBuilder {
	b.Profile.Financial.MonthlyBudget = &budget
	return b
}

// WithBudgetRange sets a budget bracket ID without an explicit amount.
func (b *UserBuilder) WithBudgetRange(rangeID string) *UserBuilder {
	b.Profile.Financial.BudgetRangeID = rangeID
	return b
}

// WithLocationBudgeting opts the user into location-aware budgeting for
// the given location.
func (b *UserBuilder) WithLocationBudgeting(countryCode, city string) *UserBuilder {
	b.Profile.Preferences.LocationBudgetingEnabled = true
	b.Profile.Location.CountryCode = countryCode
	b.Profile.Location.City = city
	return b
}

// WithCurrency sets the display currency.
func (b *UserBuilder) WithCurrency(code string) *UserBuilder {
	b.Profile.Identity.Currency = code
	return b
}

// WithGoals sets the active goal list.
func (b *UserBuilder) WithGoals(goals ...model.Goal) *UserBuilder {
	b.Goals = goals
	return b
}

// Build inserts the user and returns its ID.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) string {
	t.Helper()

	profileJSON, err := json.Marshal(b.Profile)
	if err != nil {
		t.Fatalf("Failed to encode test profile: %v", err)
	}

	goalsJSON := []byte(`{}`)
	if b.Goals != nil {
		goalsJSON, err = json.Marshal(model.GoalBlob{ActiveGoals: b.Goals})
		if err != nil {
			t.Fatalf("Failed to encode test goals: %v", err)
		}
	}

	_, err = db.Exec(
		`INSERT INTO user (id, email, profile, goals, patterns, created_at) VALUES (?, ?, ?, ?, '{}', ?)`,
		b.ID, b.Email, string(profileJSON), string(goalsJSON), time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}

	return b.ID
}

// GoalBuilder provides a fluent interface for building test goals.
//
// Example usage:
//
//	goal := testutil.NewGoal("emergency-fund").
//	    WithTarget(60000).
//	    WithDeadlineMonths(now, 6).
//	    WithPriority(1).
//	    Goal()
type GoalBuilder struct {
	goal model.Goal
}

// NewGoal creates a GoalBuilder with the given ID (also used as label).
func NewGoal(id string) *GoalBuilder {
	return &GoalBuilder{
		goal: model.Goal{ID: id, Label: id},
	}
}

// WithLabel sets a custom label.
func (b *GoalBuilder) WithLabel(label string) *GoalBuilder {
	b.goal.Label = label
	return b
}

// WithTarget sets the target amount.
func (b *GoalBuilder) WithTarget(amount float64) *GoalBuilder {
	b.goal.TargetAmount = money.AmountFromFloat(amount)
	return b
}

// WithRawTarget sets the target amount from a raw decorated string by
// encoding it through the defensive JSON path.
func (b *GoalBuilder) WithRawTarget(raw string) *GoalBuilder {
	b.goal.TargetAmount = money.NewAmount(money.Parse(raw))
	return b
}

// WithSaved sets the current saved amount.
func (b *GoalBuilder) WithSaved(amount float64) *GoalBuilder {
	saved := money.AmountFromFloat(amount)
	b.goal.CurrentSaved = &saved
	return b
}

// WithLegacyCurrent sets the legacy current_amount alias.
func (b *GoalBuilder) WithLegacyCurrent(amount float64) *GoalBuilder {
	current := money.AmountFromFloat(amount)
	b.goal.CurrentAmount = &current
	return b
}

// WithPriority sets the priority rank.
func (b *GoalBuilder) WithPriority(priority int) *GoalBuilder {
	b.goal.Priority = &priority
	return b
}

// WithTargetDate sets a literal target date string.
func (b *GoalBuilder) WithTargetDate(date string) *GoalBuilder {
	b.goal.TargetDate = date
	return b
}

// WithDeadlineMonths sets the target date a number of whole months after now.
func (b *GoalBuilder) WithDeadlineMonths(now time.Time, months int) *GoalBuilder {
	b.goal.TargetDate = now.AddDate(0, months, 0).Format("2006-01-02")
	return b
}

// Goal returns the built goal.
func (b *GoalBuilder) Goal() model.Goal {
	return b.goal
}

// CreateTransaction inserts a test transaction for the user at the given
// time offset from now (negative offsets are in the past).
func CreateTransaction(t *testing.T, db *sql.DB, userID string, amount float64, category string, at time.Time) string {
	t.Helper()

	id := MakeID()
	_, err := db.Exec(
		`INSERT INTO "transaction" (id, user_id, amount, category, transaction_at, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, amount, category, at.UTC(), time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("Failed to insert test transaction: %v", err)
	}

	return id
}
