package repositories

import (
	"fmt"
	"time"

	"paylink/internal/models"

	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a gorm-backed WalletRepository.
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) ListWithUsers(limit, offset int) ([]WalletWithUser, error) {
	var rows []WalletWithUser
	err := r.db.Model(&models.Wallet{}).
		Select("wallets.id, wallets.user_id, wallets.balance, users.email, users.phone, users.is_verified").
		Joins("JOIN users ON users.id = wallets.user_id").
		Order("wallets.id").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return rows, nil
}

func (r *walletRepository) Credit(userID uint, amount float64) error {
	result := r.db.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to credit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

// Debit is the balance check and the update in one statement. Zero rows
// affected means the wallet either does not exist or would go negative.
func (r *walletRepository) Debit(userID uint, amount float64) error {
	result := r.db.Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to debit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByUserID(userID); err != nil {
			return err
		}
		return ErrInsufficientBalance
	}
	return nil
}

func (r *walletRepository) CreateTransaction(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *walletRepository) TotalBalance() (float64, error) {
	var total float64
	err := r.db.Model(&models.Wallet{}).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get total balance: %w", err)
	}
	return total, nil
}

func (r *walletRepository) MonthlyStats(year int, month time.Month) (*MonthlyWalletStats, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var stats MonthlyWalletStats
	err := r.db.Model(&models.Wallet{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("COUNT(*) as count, COALESCE(SUM(balance), 0) as sum, COALESCE(AVG(balance), 0) as avg").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly wallet stats: %w", err)
	}
	return &stats, nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&walletRepository{db: tx})
	})
}
