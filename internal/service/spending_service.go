package service

import (
	"time"

	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/repository"
)

// Trailing-window sizes per period keyword. Unrecognized periods fall back
// to a month.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// SpendingService aggregates a user's transactions over trailing windows.
type SpendingService struct {
	transactionRepo *repository.TransactionRepository
}

// NewSpendingService creates a new SpendingService with the provided repository.
func NewSpendingService(transactionRepo *repository.TransactionRepository) *SpendingService {
	return &SpendingService{transactionRepo: transactionRepo}
}

// PeriodDays translates a period keyword to its window length in days.
func PeriodDays(period string) int {
	switch period {
	case PeriodWeek:
		return 7
	case PeriodYear:
		return 365
	default:
		return 30
	}
}

// Summary sums the user's transactions over the trailing window ending at
// now, grouped by category. An empty window yields the zero summary.
func (s *SpendingService) Summary(userID, period string, now time.Time) (model.SpendingSummary, error) {
	since := now.AddDate(0, 0, -PeriodDays(period))

	byCategory, count, err := s.transactionRepo.SumByCategory(userID, since)
	if err != nil {
		return model.SpendingSummary{}, err
	}

	total := 0.0
	for _, v := range byCategory {
		total += v
	}

	summary := model.SpendingSummary{
		Total:            total,
		ByCategory:       byCategory,
		TransactionCount: count,
	}
	if count > 0 {
		summary.AvgTransaction = total / float64(count)
	}

	return summary, nil
}

// Recent lists the user's transactions over the trailing number of days,
// newest first, optionally filtered by category.
func (s *SpendingService) Recent(userID string, days int, category string, limit int, now time.Time) ([]model.Transaction, error) {
	if days <= 0 {
		days = 30
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.transactionRepo.ListByUser(userID, now.AddDate(0, 0, -days), category, limit)
}
