package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/repository"
)

// PatternsService recomputes the spending-patterns blob that the
// budget-analysis read consumes. It runs nightly from the scheduler but
// can be invoked per-user.
type PatternsService struct {
	userRepo *repository.UserRepository
	spending *SpendingService
	log      *logrus.Logger
}

// NewPatternsService creates a new PatternsService with the provided dependencies.
func NewPatternsService(
	userRepo *repository.UserRepository,
	spending *SpendingService,
	log *logrus.Logger,
) *PatternsService {
	return &PatternsService{
		userRepo: userRepo,
		spending: spending,
		log:      log,
	}
}

// RefreshUser recomputes and stores one user's spending patterns from the
// trailing year and month of transactions.
func (s *PatternsService) RefreshUser(userID string, now time.Time) error {
	yearly, err := s.spending.Summary(userID, PeriodYear, now)
	if err != nil {
		return err
	}
	monthly, err := s.spending.Summary(userID, PeriodMonth, now)
	if err != nil {
		return err
	}

	patterns := model.SpendingPatterns{
		AvgMonthlyTotal: yearly.Total / 12,
		LastMonthTotal:  monthly.Total,
		TopCategory:     topCategory(monthly.ByCategory),
		UpdatedAt:       now.UTC().Format(time.RFC3339),
	}

	return s.userRepo.SavePatterns(userID, patterns)
}

// RefreshAll recomputes patterns for every user. A failure for one user is
// logged and does not stop the sweep.
func (s *PatternsService) RefreshAll(now time.Time) error {
	ids, err := s.userRepo.ListUserIDs()
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.RefreshUser(id, now); err != nil {
			s.log.WithField("user_id", id).WithError(err).Warn("pattern refresh failed")
		}
	}

	s.log.WithField("users", len(ids)).Info("pattern refresh sweep complete")
	return nil
}

// topCategory returns the category with the highest spend, or "" for an
// empty month. Ties resolve to the lexicographically smallest category so
// the result is deterministic.
func topCategory(byCategory map[string]float64) string {
	top := ""
	max := 0.0
	for category, total := range byCategory {
		if total > max || (total == max && top != "" && category < top) {
			top = category
			max = total
		}
	}
	return top
}
