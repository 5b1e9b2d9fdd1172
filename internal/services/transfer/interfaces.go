package transfer

import (
	"context"

	"paylink/internal/models"
)

// UserResolver looks up transfer recipients.
type UserResolver interface {
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
}

// Notifier delivers transfer notifications, best effort.
type Notifier interface {
	NotifyTransfer(ctx context.Context, tx *models.Transaction, sender, recipient *models.User)
}

// Service moves money between two user wallets.
type Service interface {
	Transfer(ctx context.Context, senderID uint, recipientIdentifier string, amount float64, description string) (*models.Transaction, error)
}
