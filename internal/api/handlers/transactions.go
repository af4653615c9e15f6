package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/service"
	"github.com/finpal/finpal-backend/internal/validation"
)

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	spendingService    *service.SpendingService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(
	transactionService *service.TransactionService,
	spendingService *service.SpendingService,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		spendingService:    spendingService,
	}
}

// CreateTransactionRequest represents a transaction capture payload
type CreateTransactionRequest struct {
	Amount        float64 `json:"amount"`
	Merchant      string  `json:"merchant,omitempty"`
	Category      string  `json:"category,omitempty"`
	Note          string  `json:"note,omitempty"`
	Source        string  `json:"source,omitempty"`
	TransactionAt string  `json:"transaction_at,omitempty"` // RFC 3339; defaults to now
}

// Create captures a transaction for the user
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	tx := model.Transaction{
		Amount:   req.Amount,
		Merchant: req.Merchant,
		Category: req.Category,
		Note:     req.Note,
		Source:   req.Source,
	}
	if req.TransactionAt != "" {
		at, err := time.Parse(time.RFC3339, req.TransactionAt)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"error":  "Invalid transaction_at timestamp",
				"detail": err.Error(),
			})
			return
		}
		tx.TransactionAt = at
	}

	created, err := h.transactionService.Create(userIDParam(r), tx, time.Now().UTC())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSaveTransaction.Error())
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// List returns the user's recent transactions, newest first.
// Query params: days (default 30), category, limit (default 100).
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	category := r.URL.Query().Get("category")

	transactions, err := h.spendingService.Recent(userIDParam(r), days, category, limit, time.Now().UTC())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransactions.Error())
		return
	}

	respondJSON(w, http.StatusOK, transactions)
}

// SummaryResponse represents an aggregated spending summary
type SummaryResponse struct {
	Period           string             `json:"period"`
	Total            float64            `json:"total"`
	ByCategory       map[string]float64 `json:"by_category"`
	TransactionCount int                `json:"transaction_count"`
	AvgTransaction   float64            `json:"avg_transaction"`
}

// Summary aggregates the user's spending over a trailing period
// (?period=week|month|year, default month)
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	period := validation.ValidatePeriod(r.URL.Query().Get("period"))

	summary, err := h.spendingService.Summary(userIDParam(r), period, time.Now().UTC())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToAggregateSpending.Error())
		return
	}

	respondJSON(w, http.StatusOK, SummaryResponse{
		Period:           period,
		Total:            summary.Total,
		ByCategory:       summary.ByCategory,
		TransactionCount: summary.TransactionCount,
		AvgTransaction:   summary.AvgTransaction,
	})
}
