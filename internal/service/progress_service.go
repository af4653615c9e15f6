package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/repository"
)

// ProgressService produces the full goal-progress report: savings
// breakdown, priority-first allocations, aggregate matrix and tip.
type ProgressService struct {
	userRepo       *repository.UserRepository
	goalRepo       *repository.GoalRepository
	profileService *ProfileService
	spending       *SpendingService
	savings        *SavingsService
}

// NewProgressService creates a new ProgressService with the provided dependencies.
func NewProgressService(
	userRepo *repository.UserRepository,
	goalRepo *repository.GoalRepository,
	profileService *ProfileService,
	spending *SpendingService,
	savings *SavingsService,
) *ProgressService {
	return &ProgressService{
		userRepo:       userRepo,
		goalRepo:       goalRepo,
		profileService: profileService,
		spending:       spending,
		savings:        savings,
	}
}

// GetGoalProgress loads the user's profile, current-month spending and
// goals, then runs the allocator against them. The three reads are
// independent and run concurrently; they are not a single snapshot, which
// is an accepted staleness window since the endpoint is read-mostly and
// idempotent. Store unavailability is the only failure mode; malformed
// goal data degrades per-goal instead of failing the report.
func (s *ProgressService) GetGoalProgress(userID string, now time.Time) (model.GoalProgress, error) {
	var (
		profile  model.Profile
		spending model.SpendingSummary
		goals    []model.Goal
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
	g.Go(func() error {
		var err error
		goals, err = s.goalRepo.LoadGoals(userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.GoalProgress{}, err
	}

	fin := s.profileService.ResolveFinancial(profile.Financial)
	breakdown := s.savings.Compute(profile, fin, spending)

	return s.compute(breakdown, goals, now), nil
}

// compute assembles the full report from already-fetched inputs. Pure.
func (s *ProgressService) compute(breakdown model.SavingsBreakdown, goals []model.Goal, now time.Time) model.GoalProgress {
	progress := model.GoalProgress{
		Savings: breakdown,
		Goals:   []model.GoalAllocation{},
		Matrix: model.AllocationMatrix{
			TotalAvailable: breakdown.MonthlySavings,
		},
	}

	if breakdown.HasBudget && breakdown.MonthlyBudget.IsPositive() &&
		breakdown.MonthlyExpenses.GreaterThan(breakdown.MonthlyBudget) {
		progress.Matrix.BudgetExceeded = true
		progress.Matrix.BudgetOverage = breakdown.MonthlyExpenses.Sub(breakdown.MonthlyBudget)
	}

	if len(goals) == 0 {
		progress.Tip = buildTip(breakdown, progress.Goals)
		return progress
	}

	needs := ComputeGoalNeeds(goals, now)

	totalIdeal := decimal.Zero
	for _, need := range needs {
		totalIdeal = totalIdeal.Add(need.IdealMonthly)
		progress.TotalGoalTarget = progress.TotalGoalTarget.Add(need.TargetAmount)
		progress.TotalCurrentSaved = progress.TotalCurrentSaved.Add(need.CurrentSaved)
	}

	progress.Matrix.TotalNeeded = totalIdeal.Round(2)
	progress.Matrix.Shortfall = decimal.Max(decimal.Zero, totalIdeal.Sub(breakdown.MonthlySavings)).Round(2)

	allocations, unallocated := Allocate(needs, breakdown.MonthlySavings, now)
	progress.Goals = allocations
	progress.UnallocatedSavings = unallocated.Round(2)

	progress.Tip = buildTip(breakdown, allocations)
	return progress
}

// buildTip picks the human-readable nudge for the progress report: missing
// income first, then missing goals, then a celebration or the names of up
// to two behind-schedule goals.
func buildTip(breakdown model.SavingsBreakdown, allocations []model.GoalAllocation) string {
	if !breakdown.HasSalary {
		return "Set your income in preferences to see goal projections."
	}
	if len(allocations) == 0 {
		return "Add savings goals to track your progress."
	}

	behind := []string{}
	for _, a := range allocations {
		if !a.OnTrack {
			behind = append(behind, a.Label)
		}
	}

	if len(behind) == 0 {
		return fmt.Sprintf("Great! You're on track for all %d goal(s). Keep it up!", len(allocations))
	}

	if len(behind) > 2 {
		behind = behind[:2]
	}
	return fmt.Sprintf("You're behind on: %s. Consider increasing savings.", strings.Join(behind, ", "))
}
