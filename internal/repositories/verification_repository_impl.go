package repositories

import (
	"fmt"
	"time"

	"paylink/internal/models"

	"gorm.io/gorm"
)

type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a gorm-backed VerificationRepository.
func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(code *models.VerificationCode) error {
	if err := r.db.Create(code).Error; err != nil {
		return fmt.Errorf("failed to create verification code: %w", err)
	}
	return nil
}

func (r *verificationRepository) LatestValid(userID uint, codeType string, now time.Time) (*models.VerificationCode, error) {
	var code models.VerificationCode
	err := r.db.
		Where("user_id = ? AND type = ? AND is_used = ? AND expires_at > ?", userID, codeType, false, now).
		Order("created_at DESC").
		First(&code).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to get verification code: %w", err)
	}
	return &code, nil
}

func (r *verificationRepository) MarkUsed(code *models.VerificationCode) error {
	code.IsUsed = true
	if err := r.db.Save(code).Error; err != nil {
		return fmt.Errorf("failed to mark verification code used: %w", err)
	}
	return nil
}
