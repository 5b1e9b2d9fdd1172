package repositories

import (
	"errors"
	"time"

	"paylink/internal/models"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// MonthlyTransactionStats aggregates money movement for one calendar month.
type MonthlyTransactionStats struct {
	Count int64
	Sum   float64
	Avg   float64
}

// TransactionTypeCount is one row of the per-type breakdown.
type TransactionTypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// TransactionRepository defines persistence for the append-only
// transaction log. Rows are created once and never mutated.
type TransactionRepository interface {
	Create(tx *models.Transaction) error
	ListForUser(userID uint, limit, offset int) ([]models.Transaction, error)
	ListAll(limit, offset int) ([]models.Transaction, error)
	CountAll() (int64, error)
	TotalVolume() (float64, error)
	CountByType() ([]TransactionTypeCount, error)
	MonthlyStats(year int, month time.Month) (*MonthlyTransactionStats, error)
}
