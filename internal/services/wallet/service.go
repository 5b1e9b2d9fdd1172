// Package wallet implements deposit and withdraw operations. Every
// balance mutation is an atomic conditional update paired with exactly
// one transaction row inside the same database transaction.
package wallet

import (
	"context"
	"errors"
	"fmt"

	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/repositories/cache"
	"paylink/internal/services/card"

	"github.com/google/uuid"
)

type service struct {
	repo   repositories.WalletRepository
	txRepo repositories.TransactionRepository
	cache  *cache.CacheService
	cards  CardValidator
}

// NewService creates a wallet service. cards may be nil when card
// validation is not wired (tests).
func NewService(
	repo repositories.WalletRepository,
	txRepo repositories.TransactionRepository,
	cacheSvc *cache.CacheService,
	cards CardValidator,
) Service {
	if repo == nil {
		panic("wallet repo is required")
	}
	if txRepo == nil {
		panic("transaction repo is required")
	}
	return &service{repo: repo, txRepo: txRepo, cache: cacheSvc, cards: cards}
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if s.cache != nil {
		if wallet, err := s.cache.GetWallet(ctx, userID); err == nil {
			return wallet, nil
		}
	}

	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.CacheWallet(ctx, wallet)
	}
	return wallet, nil
}

func (s *service) Deposit(ctx context.Context, userID uint, amount float64, cardID uint) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := s.validateCard(ctx, userID, cardID); err != nil {
		return nil, err
	}
	// Existence check up front so an absent wallet is a 404, not a
	// silent zero-row update.
	if _, err := s.repo.GetByUserID(userID); err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		if err := tx.Credit(userID, amount); err != nil {
			return err
		}
		return tx.CreateTransaction(&models.Transaction{
			Reference:   uuid.NewString(),
			RecipientID: &userID,
			Amount:      amount,
			CardID:      cardIDRef(cardID),
			Type:        models.TransactionTypeDeposit,
			Status:      models.TransactionStatusCompleted,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("deposit failed: %w", err)
	}

	return s.reload(ctx, userID)
}

func (s *service) Withdraw(ctx context.Context, userID uint, amount float64, cardID uint) (*models.Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := s.validateCard(ctx, userID, cardID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByUserID(userID); err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, err
	}

	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		if err := tx.Debit(userID, amount); err != nil {
			return err
		}
		return tx.CreateTransaction(&models.Transaction{
			Reference:   uuid.NewString(),
			RecipientID: &userID,
			Amount:      amount,
			CardID:      cardIDRef(cardID),
			Type:        models.TransactionTypeWithdraw,
			Status:      models.TransactionStatusCompleted,
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientBalance) {
			return nil, ErrInsufficientBalance
		}
		return nil, fmt.Errorf("withdrawal failed: %w", err)
	}

	return s.reload(ctx, userID)
}

func (s *service) GetTransactions(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error) {
	return s.txRepo.ListForUser(userID, limit, offset)
}

func (s *service) validateCard(ctx context.Context, userID, cardID uint) error {
	if s.cards == nil || cardID == 0 {
		return nil
	}
	if err := s.cards.ValidateCard(ctx, userID, cardID); err != nil {
		if errors.Is(err, card.ErrCardNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("card validation failed: %w", err)
	}
	return nil
}

func (s *service) reload(ctx context.Context, userID uint) (*models.Wallet, error) {
	if s.cache != nil {
		_ = s.cache.InvalidateWallet(ctx, userID)
	}
	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload wallet: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.CacheWallet(ctx, wallet)
	}
	return wallet, nil
}

func cardIDRef(cardID uint) *uint {
	if cardID == 0 {
		return nil
	}
	return &cardID
}
