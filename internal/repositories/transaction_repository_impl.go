package repositories

import (
	"fmt"
	"time"

	"paylink/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a gorm-backed TransactionRepository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(tx *models.Transaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) ListForUser(userID uint, limit, offset int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Preload("Sender").
		Preload("Recipient").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (r *transactionRepository) ListAll(limit, offset int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list all transactions: %w", err)
	}
	return transactions, nil
}

func (r *transactionRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *transactionRepository) TotalVolume() (float64, error) {
	var total float64
	err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get total volume: %w", err)
	}
	return total, nil
}

func (r *transactionRepository) CountByType() ([]TransactionTypeCount, error) {
	var rows []TransactionTypeCount
	err := r.db.Model(&models.Transaction{}).
		Select("type, COUNT(*) as count").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions by type: %w", err)
	}
	return rows, nil
}

func (r *transactionRepository) MonthlyStats(year int, month time.Month) (*MonthlyTransactionStats, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var stats MonthlyTransactionStats
	err := r.db.Model(&models.Transaction{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("COUNT(*) as count, COALESCE(SUM(amount), 0) as sum, COALESCE(AVG(amount), 0) as avg").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly transaction stats: %w", err)
	}
	return &stats, nil
}
