package service

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/finpal/finpal-backend/internal/localization"
	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/repository"
)

// GoalService handles the goal write paths (sync, contributions) and the
// budget analysis read.
type GoalService struct {
	userRepo     *repository.UserRepository
	goalRepo     *repository.GoalRepository
	localization localization.Config
}

// NewGoalService creates a new GoalService with the provided dependencies.
func NewGoalService(
	userRepo *repository.UserRepository,
	goalRepo *repository.GoalRepository,
	loc localization.Config,
) *GoalService {
	return &GoalService{
		userRepo:     userRepo,
		goalRepo:     goalRepo,
		localization: loc,
	}
}

// SyncGoals wholesale-replaces the user's active goal list with the given
// one and returns the stored goals enriched with their implied monthly
// installments. Goals absent from the new list are dropped, not merged.
func (s *GoalService) SyncGoals(userID string, goals []model.Goal, now time.Time) ([]model.EnrichedGoal, error) {
	syncedAt := now.UTC().Format(time.RFC3339)
	for i := range goals {
		goals[i].SyncedAt = syncedAt
	}

	if err := s.goalRepo.ReplaceGoals(userID, goals); err != nil {
		return nil, err
	}

	stored, err := s.goalRepo.LoadGoals(userID)
	if err != nil {
		return nil, err
	}

	return EnrichGoals(stored, now), nil
}

// LoadEnrichedGoals returns the user's active goals with installment
// annotations.
func (s *GoalService) LoadEnrichedGoals(userID string, now time.Time) ([]model.EnrichedGoal, error) {
	goals, err := s.goalRepo.LoadGoals(userID)
	if err != nil {
		return nil, err
	}
	return EnrichGoals(goals, now), nil
}

// EnrichGoals annotates goals with the even monthly installment implied by
// their target amount and deadline. Goals without a positive amount and a
// parseable deadline pass through unannotated. Pure.
func EnrichGoals(goals []model.Goal, now time.Time) []model.EnrichedGoal {
	enriched := make([]model.EnrichedGoal, len(goals))
	for i, goal := range goals {
		enriched[i] = model.EnrichedGoal{Goal: goal}

		if goal.TargetDate == "" || !goal.TargetAmount.IsPositive() {
			continue
		}
		deadline, err := time.ParseInLocation(dateLayout, goal.TargetDate, time.UTC)
		if err != nil {
			continue
		}

		months := (deadline.Year()-now.Year())*12 + int(deadline.Month()-now.Month())
		if months < 1 {
			months = 1
		}

		needed, _ := goal.TargetAmount.Div(decimal.NewFromInt(int64(months))).Round(0).Float64()
		enriched[i].MonthlySavingsNeeded = &needed
		enriched[i].MonthsRemaining = &months
	}
	return enriched
}

// Contribute adds amount to a goal's current_saved and returns a formatted
// confirmation message in the user's currency. Negative amounts are passed
// through unvalidated; that check belongs to the caller.
func (s *GoalService) Contribute(userID, goalID string, amount decimal.Decimal) (string, error) {
	if err := s.goalRepo.IncrementSaved(userID, goalID, amount); err != nil {
		return "", err
	}

	symbol, err := s.currencySymbol(userID)
	if err != nil {
		return "", err
	}

	value, _ := amount.Float64()
	return fmt.Sprintf("Added %s%s to goal", symbol, humanize.CommafWithDigits(value, 0)), nil
}

// BudgetAnalysis reports what the goal list demands per month against the
// user's average spending from the patterns blob.
func (s *GoalService) BudgetAnalysis(userID string, now time.Time) (model.BudgetAnalysis, error) {
	goals, err := s.LoadEnrichedGoals(userID, now)
	if err != nil {
		return model.BudgetAnalysis{}, err
	}

	if len(goals) == 0 {
		return model.BudgetAnalysis{
			HasGoals: false,
			Message:  "No goals set. Add goals to get personalized budget recommendations.",
		}, nil
	}

	patterns, err := s.userRepo.GetPatterns(userID)
	if err != nil {
		return model.BudgetAnalysis{}, err
	}

	symbol, err := s.currencySymbol(userID)
	if err != nil {
		return model.BudgetAnalysis{}, err
	}

	analysis := model.BudgetAnalysis{
		HasGoals:           true,
		AvgMonthlySpending: patterns.AvgMonthlyTotal,
		Goals:              []model.GoalRecommendation{},
	}

	for _, goal := range goals {
		if goal.MonthlySavingsNeeded == nil || goal.MonthsRemaining == nil {
			continue
		}

		status := "on_track"
		if *goal.MonthsRemaining <= 3 {
			status = "urgent"
		}

		target, _ := goal.TargetAmount.Float64()
		analysis.Goals = append(analysis.Goals, model.GoalRecommendation{
			GoalID:               goal.ID,
			GoalLabel:            goal.Label,
			TargetAmount:         target,
			TargetDate:           goal.TargetDate,
			MonthlySavingsNeeded: *goal.MonthlySavingsNeeded,
			MonthsRemaining:      *goal.MonthsRemaining,
			Status:               status,
		})
		analysis.TotalMonthlySavingsNeeded += *goal.MonthlySavingsNeeded
	}

	analysis.Tip = fmt.Sprintf(
		"To reach your goals, aim to save %s%s per month.",
		symbol,
		humanize.CommafWithDigits(analysis.TotalMonthlySavingsNeeded, 0),
	)

	return analysis, nil
}

func (s *GoalService) currencySymbol(userID string) (string, error) {
	profile, err := s.userRepo.GetProfile(userID)
	if err != nil {
		return "", err
	}

	currency := profile.Identity.Currency
	if currency == "" {
		currency = s.localization.Country(profile.Location.CountryCode).Currency
	}
	return localization.CurrencySymbol(currency), nil
}
