package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/finpal/finpal-backend/internal/apperrors"
	"github.com/finpal/finpal-backend/internal/model"
	"github.com/finpal/finpal-backend/internal/repository"
)

// TransactionService handles transaction capture.
type TransactionService struct {
	userRepo        *repository.UserRepository
	transactionRepo *repository.TransactionRepository
}

// NewTransactionService creates a new TransactionService with the provided repositories.
func NewTransactionService(
	userRepo *repository.UserRepository,
	transactionRepo *repository.TransactionRepository,
) *TransactionService {
	return &TransactionService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
	}
}

// Create stores a spending transaction for the user. The timestamp
// defaults to now when the caller omits it.
func (s *TransactionService) Create(userID string, tx model.Transaction, now time.Time) (model.Transaction, error) {
	if _, err := s.userRepo.GetUser(userID); err != nil {
		return model.Transaction{}, err
	}

	if tx.Merchant == "" && tx.Amount == 0 {
		return model.Transaction{}, apperrors.ErrMissingRequiredField
	}

	tx.ID = uuid.New().String()
	tx.UserID = userID
	if tx.TransactionAt.IsZero() {
		tx.TransactionAt = now
	}

	if err := s.transactionRepo.Insert(tx); err != nil {
		return model.Transaction{}, err
	}

	return tx, nil
}
