package model

import "time"

// Transaction represents a spending transaction captured for a user.
// Amounts are in the store's native currency; no cross-currency
// normalization happens downstream.
type Transaction struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Amount        float64   `json:"amount"`
	Merchant      string    `json:"merchant,omitempty"`
	Category      string    `json:"category,omitempty"`
	Note          string    `json:"note,omitempty"`
	Source        string    `json:"source,omitempty"`
	TransactionAt time.Time `json:"transactionAt"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// SpendingSummary aggregates a user's transactions over a trailing window.
// An empty window yields the zero value, never a division error.
type SpendingSummary struct {
	Total            float64            `json:"total"`
	ByCategory       map[string]float64 `json:"by_category"`
	TransactionCount int                `json:"transaction_count"`
	AvgTransaction   float64            `json:"avg_transaction"`
}
