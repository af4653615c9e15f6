package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/money"
	"github.com/finpal/finpal-backend/internal/service"
	"github.com/finpal/finpal-backend/internal/validation"
)

// GoalHandler handles goal HTTP requests
type GoalHandler struct {
	goalService     *service.GoalService
	progressService *service.ProgressService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService, progressService *service.ProgressService) *GoalHandler {
	return &GoalHandler{
		goalService:     goalService,
		progressService: progressService,
	}
}

// SyncGoalRequest is one goal in a sync payload. TargetAmount tolerates
// decorated strings and plain numbers alike.
type SyncGoalRequest struct {
	ID           string       `json:"id"`
	Label        string       `json:"label"`
	Icon         string       `json:"icon,omitempty"`
	Color        string       `json:"color,omitempty"`
	TargetAmount money.Amount `json:"target_amount"`
	TargetDate   string       `json:"target_date,omitempty"`
	Priority     *int         `json:"priority,omitempty"`
}

// SyncGoalsRequest represents the full goal-sync payload
type SyncGoalsRequest struct {
	Goals []SyncGoalRequest `json:"goals"`
}

// SyncGoalsResponse represents the goal-sync result
type SyncGoalsResponse struct {
	SyncedCount int                  `json:"synced_count"`
	Goals       []model.EnrichedGoal `json:"goals"`
}

// SyncGoals wholesale-replaces the user's active goal list
func (h *GoalHandler) SyncGoals(w http.ResponseWriter, r *http.Request) {
	var req SyncGoalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	goals := make([]model.Goal, len(req.Goals))
	for i, g := range req.Goals {
		goals[i] = model.Goal{
			ID:           g.ID,
			Label:        g.Label,
			Icon:         g.Icon,
			Color:        g.Color,
			TargetAmount: g.TargetAmount,
			TargetDate:   g.TargetDate,
			Priority:     g.Priority,
		}
	}

	if err := validation.ValidateGoalSync(goals); err != nil {
		respondServiceError(w, err, "Invalid goal list")
		return
	}

	enriched, err := h.goalService.SyncGoals(userIDParam(r), goals, time.Now().UTC())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSaveGoals.Error())
		return
	}

	respondJSON(w, http.StatusOK, SyncGoalsResponse{
		SyncedCount: len(goals),
		Goals:       enriched,
	})
}

// GoalProgressEntry is one goal's allocation in the progress response.
// Current/CurrentSaved and AllocatedMonthly/MonthlyContribution are
// deliberate aliases kept for older clients.
type GoalProgressEntry struct {
	ID                      string  `json:"id"`
	Label                   string  `json:"label"`
	Icon                    string  `json:"icon,omitempty"`
	Color                   string  `json:"color,omitempty"`
	Priority                int     `json:"priority"`
	TargetAmount            float64 `json:"target_amount"`
	TargetDate              string  `json:"target_date,omitempty"`
	Current                 float64 `json:"current"`
	CurrentSaved            float64 `json:"current_saved"`
	AmountNeeded            float64 `json:"amount_needed"`
	IdealMonthly            float64 `json:"ideal_monthly"`
	AllocatedMonthly        float64 `json:"allocated_monthly"`
	MonthlyContribution     float64 `json:"monthly_contribution"`
	IsUnderfunded           bool    `json:"is_underfunded"`
	DeadlineAtRisk          bool    `json:"deadline_at_risk"`
	ProgressPercentage      float64 `json:"progress_percentage"`
	MonthsToComplete        *int    `json:"months_to_complete,omitempty"`
	ProjectedCompletionDate string  `json:"projected_completion_date,omitempty"`
	OnTrack                 bool    `json:"on_track"`
}

// AllocationMatrixResponse aggregates allocation demand against supply
type AllocationMatrixResponse struct {
	TotalNeeded    float64 `json:"total_needed"`
	TotalAvailable float64 `json:"total_available"`
	Shortfall      float64 `json:"shortfall"`
	BudgetExceeded bool    `json:"budget_exceeded"`
	BudgetOverage  float64 `json:"budget_overage"`
}

// GoalProgressResponse is the flat progress report: savings breakdown,
// per-goal allocations, matrix, totals and tip.
type GoalProgressResponse struct {
	MonthlySalary        float64                  `json:"monthly_salary"`
	MonthlyBudget        float64                  `json:"monthly_budget"`
	MonthlyExpenses      float64                  `json:"monthly_expenses"`
	MonthlySavings       float64                  `json:"monthly_savings"`
	BudgetUsedPercentage float64                  `json:"budget_used_percentage"`
	ExpectedSavings      float64                  `json:"expected_savings"`
	SavingsVsExpected    float64                  `json:"savings_vs_expected"`
	PPPMultiplier        float64                  `json:"ppp_multiplier"`
	PPPAdjustedBudget    float64                  `json:"ppp_adjusted_budget"`
	TransactionCount     int                      `json:"transaction_count"`
	ExpensesByCategory   map[string]float64       `json:"expenses_by_category"`
	AllocationMatrix     AllocationMatrixResponse `json:"allocation_matrix"`
	Goals                []GoalProgressEntry      `json:"goals"`
	TotalGoalTarget      float64                  `json:"total_goal_target"`
	TotalCurrentSaved    float64                  `json:"total_current_saved"`
	UnallocatedSavings   float64                  `json:"unallocated_savings"`
	Tip                  string                   `json:"tip,omitempty"`
}

// Progress returns the full goal-progress report
func (h *GoalHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.progressService.GetGoalProgress(userIDParam(r), time.Now().UTC())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeProgress.Error())
		return
	}

	respondJSON(w, http.StatusOK, goalProgressResponse(progress))
}

func goalProgressResponse(progress model.GoalProgress) GoalProgressResponse {
	s := progress.Savings

	resp := GoalProgressResponse{
		MonthlySalary:        s.MonthlySalary.InexactFloat64(),
		MonthlyBudget:        s.MonthlyBudget.InexactFloat64(),
		MonthlyExpenses:      s.MonthlyExpenses.InexactFloat64(),
		MonthlySavings:       s.MonthlySavings.InexactFloat64(),
		BudgetUsedPercentage: s.BudgetUsedPercentage.InexactFloat64(),
		ExpectedSavings:      s.ExpectedSavings.InexactFloat64(),
		SavingsVsExpected:    s.SavingsVsExpected.InexactFloat64(),
		PPPMultiplier:        s.PPPMultiplier.InexactFloat64(),
		PPPAdjustedBudget:    s.PPPAdjustedBudget.InexactFloat64(),
		TransactionCount:     s.TransactionCount,
		ExpensesByCategory:   s.ExpensesByCategory,
		AllocationMatrix: AllocationMatrixResponse{
			TotalNeeded:    progress.Matrix.TotalNeeded.InexactFloat64(),
			TotalAvailable: progress.Matrix.TotalAvailable.InexactFloat64(),
			Shortfall:      progress.Matrix.Shortfall.InexactFloat64(),
			BudgetExceeded: progress.Matrix.BudgetExceeded,
			BudgetOverage:  progress.Matrix.BudgetOverage.InexactFloat64(),
		},
		Goals:              make([]GoalProgressEntry, len(progress.Goals)),
		TotalGoalTarget:    progress.TotalGoalTarget.InexactFloat64(),
		TotalCurrentSaved:  progress.TotalCurrentSaved.InexactFloat64(),
		UnallocatedSavings: progress.UnallocatedSavings.InexactFloat64(),
		Tip:                progress.Tip,
	}

	for i, g := range progress.Goals {
		resp.Goals[i] = GoalProgressEntry{
			ID:                      g.ID,
			Label:                   g.Label,
			Icon:                    g.Icon,
			Color:                   g.Color,
			Priority:                g.Priority,
			TargetAmount:            g.TargetAmount.InexactFloat64(),
			TargetDate:              g.TargetDate,
			Current:                 g.CurrentSaved.InexactFloat64(),
			CurrentSaved:            g.CurrentSaved.InexactFloat64(),
			AmountNeeded:            g.AmountNeeded.InexactFloat64(),
			IdealMonthly:            g.IdealMonthly.InexactFloat64(),
			AllocatedMonthly:        g.AllocatedMonthly.InexactFloat64(),
			MonthlyContribution:     g.AllocatedMonthly.InexactFloat64(),
			IsUnderfunded:           g.IsUnderfunded,
			DeadlineAtRisk:          g.DeadlineAtRisk,
			ProgressPercentage:      g.ProgressPercentage.InexactFloat64(),
			MonthsToComplete:        g.MonthsToComplete,
			ProjectedCompletionDate: g.ProjectedCompletionDate,
			OnTrack:                 g.OnTrack,
		}
	}

	return resp
}

// BudgetAnalysis reports per-goal monthly savings recommendations
func (h *GoalHandler) BudgetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.goalService.BudgetAnalysis(userIDParam(r), time.Now().UTC())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildAnalysis.Error())
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

// ContributeRequest represents a goal contribution payload
type ContributeRequest struct {
	GoalID string       `json:"goal_id"`
	Amount money.Amount `json:"amount"`
}

// ContributeResponse represents the contribution confirmation
type ContributeResponse struct {
	Message string `json:"message"`
	GoalID  string `json:"goal_id"`
}

// Contribute adds an amount to a goal's saved total
func (h *GoalHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	var req ContributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if req.GoalID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "goal_id is required",
		})
		return
	}

	message, err := h.goalService.Contribute(userIDParam(r), req.GoalID, req.Amount.Decimal)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordContribution.Error())
		return
	}

	respondJSON(w, http.StatusOK, ContributeResponse{
		Message: message,
		GoalID:  req.GoalID,
	})
}
