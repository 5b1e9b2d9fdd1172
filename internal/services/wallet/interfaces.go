package wallet

import (
	"context"

	"paylink/internal/models"
)

// CardValidator checks that a card exists, is live, and belongs to the
// user before it is referenced by a money movement.
type CardValidator interface {
	ValidateCard(ctx context.Context, userID, cardID uint) error
}

// Service owns single-wallet balance mutations. Transfers between two
// wallets live in the transfer package.
type Service interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	Deposit(ctx context.Context, userID uint, amount float64, cardID uint) (*models.Wallet, error)
	Withdraw(ctx context.Context, userID uint, amount float64, cardID uint) (*models.Wallet, error)
	GetTransactions(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error)
}
