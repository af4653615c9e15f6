package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/service"
)

// ProfileHandler handles financial-profile HTTP requests
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// FinancialProfileResponse represents the resolved financial profile.
// Salary/budget are null when the user never provided them.
type FinancialProfileResponse struct {
	MonthlySalary *float64 `json:"monthly_salary"`
	MonthlyBudget *float64 `json:"monthly_budget"`
	SalaryRangeID string   `json:"salary_range_id,omitempty"`
	BudgetRangeID string   `json:"budget_range_id,omitempty"`
}

func financialProfileResponse(fin model.FinancialProfile) FinancialProfileResponse {
	resp := FinancialProfileResponse{
		SalaryRangeID: fin.SalaryRangeID,
		BudgetRangeID: fin.BudgetRangeID,
	}
	if fin.MonthlySalary != nil {
		v, _ := fin.MonthlySalary.Float64()
		resp.MonthlySalary = &v
	}
	if fin.MonthlyBudget != nil {
		v, _ := fin.MonthlyBudget.Float64()
		resp.MonthlyBudget = &v
	}
	return resp
}

// GetFinancial returns the user's resolved financial profile
func (h *ProfileHandler) GetFinancial(w http.ResponseWriter, r *http.Request) {
	fin, err := h.profileService.LoadFinancialProfile(userIDParam(r))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveProfile.Error())
		return
	}

	respondJSON(w, http.StatusOK, financialProfileResponse(fin))
}

// UpdateFinancialRequest represents a partial financial-profile update.
// Only provided fields change.
type UpdateFinancialRequest struct {
	MonthlySalary *float64 `json:"monthly_salary,omitempty"`
	SalaryRangeID *string  `json:"salary_range_id,omitempty"`
	MonthlyBudget *float64 `json:"monthly_budget,omitempty"`
	BudgetRangeID *string  `json:"budget_range_id,omitempty"`
}

// UpdateFinancial applies a partial update to the financial profile and
// returns the newly resolved values
func (h *ProfileHandler) UpdateFinancial(w http.ResponseWriter, r *http.Request) {
	var req UpdateFinancialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	fin, err := h.profileService.UpdateFinancial(userIDParam(r), service.FinancialUpdate{
		MonthlySalary: req.MonthlySalary,
		SalaryRangeID: req.SalaryRangeID,
		MonthlyBudget: req.MonthlyBudget,
		BudgetRangeID: req.BudgetRangeID,
	})
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateProfile.Error())
		return
	}

	respondJSON(w, http.StatusOK, financialProfileResponse(fin))
}
