package repositories

import (
	"errors"
	"time"

	"paylink/internal/models"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// MonthlyWalletStats aggregates wallet balances for one calendar month
// of wallet creation.
type MonthlyWalletStats struct {
	Count int64
	Sum   float64
	Avg   float64
}

// WalletRepository defines wallet persistence operations. Balance
// mutations are expressed as atomic conditional updates so concurrent
// writers can never drive a balance negative.
type WalletRepository interface {
	Create(wallet *models.Wallet) error
	GetByUserID(userID uint) (*models.Wallet, error)
	ListWithUsers(limit, offset int) ([]WalletWithUser, error)

	// Credit unconditionally increments the balance.
	Credit(userID uint, amount float64) error
	// Debit decrements the balance only if it stays non-negative,
	// returning ErrInsufficientBalance when the guard fails.
	Debit(userID uint, amount float64) error

	// CreateTransaction records a ledger row alongside a balance
	// mutation inside the same unit of work.
	CreateTransaction(tx *models.Transaction) error

	TotalBalance() (float64, error)
	MonthlyStats(year int, month time.Month) (*MonthlyWalletStats, error)

	ExecuteInTransaction(fn func(WalletRepository) error) error
}

// WalletWithUser is the admin listing row joining a wallet to its owner.
type WalletWithUser struct {
	ID         uint    `json:"id"`
	UserID     uint    `json:"user_id"`
	Balance    float64 `json:"balance"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	IsVerified bool    `json:"is_verified"`
}
