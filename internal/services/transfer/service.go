// Package transfer implements P2P money movement. The debit, credit and
// ledger insert happen inside one database transaction; the conditional
// debit makes concurrent transfers on the same wallet safe.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paylink/internal/models"
	"paylink/internal/repositories"

	"github.com/google/uuid"
)

type service struct {
	wallets  repositories.WalletRepository
	users    UserResolver
	notifier Notifier
}

// NewService creates a transfer service. notifier may be nil.
func NewService(wallets repositories.WalletRepository, users UserResolver, notifier Notifier) Service {
	if wallets == nil {
		panic("wallet repo is required")
	}
	if users == nil {
		panic("user resolver is required")
	}
	return &service{wallets: wallets, users: users, notifier: notifier}
}

func (s *service) Transfer(ctx context.Context, senderID uint, recipientIdentifier string, amount float64, description string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	sender, err := s.users.GetByID(senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sender: %w", err)
	}

	if _, err := s.wallets.GetByUserID(senderID); err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrSenderWalletNotFound
		}
		return nil, err
	}

	recipient, err := s.resolveRecipient(recipientIdentifier)
	if err != nil {
		return nil, err
	}
	if recipient.ID == senderID {
		return nil, ErrSelfTransfer
	}

	if _, err := s.wallets.GetByUserID(recipient.ID); err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrRecipientWalletNotFound
		}
		return nil, err
	}

	tx := &models.Transaction{
		Reference:   uuid.NewString(),
		SenderID:    &sender.ID,
		RecipientID: &recipient.ID,
		Amount:      amount,
		Description: description,
		Type:        models.TransactionTypeTransfer,
		Status:      models.TransactionStatusCompleted,
	}

	err = s.wallets.ExecuteInTransaction(func(repo repositories.WalletRepository) error {
		if err := repo.Debit(sender.ID, amount); err != nil {
			return err
		}
		if err := repo.Credit(recipient.ID, amount); err != nil {
			return err
		}
		return repo.CreateTransaction(tx)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return nil, ErrInsufficientBalance
		}
		return nil, fmt.Errorf("transfer failed: %w", err)
	}

	// Notifications happen after commit; a push failure must not unwind
	// money that has already moved.
	if s.notifier != nil {
		s.notifier.NotifyTransfer(ctx, tx, sender, recipient)
	}

	return tx, nil
}

// resolveRecipient finds the recipient by exact email match when the
// identifier contains "@", otherwise by phone.
func (s *service) resolveRecipient(identifier string) (*models.User, error) {
	var (
		recipient *models.User
		err       error
	)
	if strings.Contains(identifier, "@") {
		recipient, err = s.users.GetByEmail(identifier)
	} else {
		recipient, err = s.users.GetByPhone(identifier)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to resolve recipient: %w", err)
	}
	return recipient, nil
}
