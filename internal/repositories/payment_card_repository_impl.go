package repositories

import (
	"fmt"

	"paylink/internal/models"

	"gorm.io/gorm"
)

type paymentCardRepository struct {
	db *gorm.DB
}

// NewPaymentCardRepository creates a gorm-backed PaymentCardRepository.
func NewPaymentCardRepository(db *gorm.DB) PaymentCardRepository {
	return &paymentCardRepository{db: db}
}

func (r *paymentCardRepository) Create(card *models.PaymentCard) error {
	if err := r.db.Create(card).Error; err != nil {
		return fmt.Errorf("failed to create payment card: %w", err)
	}
	return nil
}

func (r *paymentCardRepository) GetForUser(id, userID uint) (*models.PaymentCard, error) {
	var card models.PaymentCard
	err := r.db.
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		First(&card).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get payment card: %w", err)
	}
	return &card, nil
}

func (r *paymentCardRepository) ListForUser(userID uint) ([]models.PaymentCard, error) {
	var cards []models.PaymentCard
	err := r.db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("is_default DESC, created_at DESC").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payment cards: %w", err)
	}
	return cards, nil
}

func (r *paymentCardRepository) Update(card *models.PaymentCard) error {
	if err := r.db.Save(card).Error; err != nil {
		return fmt.Errorf("failed to update payment card: %w", err)
	}
	return nil
}

func (r *paymentCardRepository) UnsetDefaults(userID uint) error {
	err := r.db.Model(&models.PaymentCard{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Update("is_default", false).Error
	if err != nil {
		return fmt.Errorf("failed to unset default cards: %w", err)
	}
	return nil
}

func (r *paymentCardRepository) SoftDelete(id, userID uint) error {
	result := r.db.Model(&models.PaymentCard{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, userID, false).
		Updates(map[string]interface{}{"is_deleted": true, "is_default": false})
	if result.Error != nil {
		return fmt.Errorf("failed to delete payment card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *paymentCardRepository) NewestForUser(userID uint) (*models.PaymentCard, error) {
	var card models.PaymentCard
	err := r.db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at DESC").
		First(&card).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get newest payment card: %w", err)
	}
	return &card, nil
}
