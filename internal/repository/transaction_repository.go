package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/finpal/finpal-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Insert stores a new transaction row.
func (s *TransactionRepository) Insert(tx model.Transaction) error {
	query := `
          INSERT INTO "transaction" (id, user_id, amount, merchant, category, note, source, transaction_at, created_at)
          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
      `
	_, err := s.db.Exec(query,
		tx.ID,
		tx.UserID,
		tx.Amount,
		tx.Merchant,
		tx.Category,
		tx.Note,
		tx.Source,
		tx.TransactionAt.UTC(),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's transactions since the given time, newest
// first, optionally filtered by category and capped at limit rows.
func (s *TransactionRepository) ListByUser(userID string, since time.Time, category string, limit int) ([]model.Transaction, error) {
	query := `
          SELECT id, user_id, amount, COALESCE(merchant, ''), COALESCE(category, ''), COALESCE(note, ''), COALESCE(source, ''), transaction_at
          FROM "transaction"
          WHERE user_id = ? AND transaction_at >= ?
      `
	args := []any{userID, since.UTC()}

	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}

	query += " ORDER BY transaction_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Amount,
			&t.Merchant,
			&t.Category,
			&t.Note,
			&t.Source,
			&t.TransactionAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// SumByCategory aggregates a user's spending since the given time, grouped
// by category. Transactions without a category land in "other". An empty
// window returns an empty map.
func (s *TransactionRepository) SumByCategory(userID string, since time.Time) (map[string]float64, int, error) {
	query := `
          SELECT COALESCE(NULLIF(category, ''), 'other'), SUM(amount), COUNT(*)
          FROM "transaction"
          WHERE user_id = ? AND transaction_at >= ?
          GROUP BY COALESCE(NULLIF(category, ''), 'other')
      `
	rows, err := s.db.Query(query, userID, since.UTC())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	defer rows.Close()

	byCategory := map[string]float64{}
	count := 0
	for rows.Next() {
		var category string
		var total float64
		var n int
		if err := rows.Scan(&category, &total, &n); err != nil {
			return nil, 0, fmt.Errorf("failed to scan aggregate row: %w", err)
		}
		byCategory[category] = total
		count += n
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating aggregate results: %w", err)
	}

	return byCategory, count, nil
}
