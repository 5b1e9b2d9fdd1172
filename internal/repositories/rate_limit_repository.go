package repositories

import (
	"fmt"

	"paylink/internal/models"

	"gorm.io/gorm"
)

// RateLimitRepository records limiter rejections.
type RateLimitRepository interface {
	Create(log *models.RateLimitLog) error
}

type rateLimitRepository struct {
	db *gorm.DB
}

// NewRateLimitRepository creates a gorm-backed RateLimitRepository.
func NewRateLimitRepository(db *gorm.DB) RateLimitRepository {
	return &rateLimitRepository{db: db}
}

func (r *rateLimitRepository) Create(log *models.RateLimitLog) error {
	if err := r.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to create rate limit log: %w", err)
	}
	return nil
}
