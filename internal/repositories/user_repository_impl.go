package repositories

import (
	"context"
	"fmt"

	"paylink/internal/models"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a gorm-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	if user.Email != nil {
		if existing, _ := r.GetByEmail(*user.Email); existing != nil {
			return ErrDuplicateEmail
		}
	}
	if user.Phone != nil {
		if existing, _ := r.GetByPhone(*user.Phone); existing != nil {
			return ErrDuplicatePhone
		}
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) CreateWithWallet(user *models.User) error {
	if user.Email != nil {
		if existing, _ := r.GetByEmail(*user.Email); existing != nil {
			return ErrDuplicateEmail
		}
	}
	if user.Phone != nil {
		if existing, _ := r.GetByPhone(*user.Phone); existing != nil {
			return ErrDuplicatePhone
		}
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		wallet := &models.Wallet{UserID: user.ID}
		if err := tx.Create(wallet).Error; err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}
		user.Wallet = wallet
		return nil
	})
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	invalidateUserCache(user.ID)
	return nil
}

func (r *userRepository) IncrementTokenVersion(userID uint) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("token_version", gorm.Expr("token_version + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment token version: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	invalidateUserCache(userID)
	return nil
}

// invalidateUserCache evicts the cached auth snapshot after any user row
// mutation. Token version and active status gate every request, so a
// stale entry would keep revoked sessions alive until the TTL.
func invalidateUserCache(userID uint) {
	if CacheService != nil {
		_ = CacheService.InvalidateUser(context.Background(), userID)
	}
}

func (r *userRepository) List(limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.Limit(limit).Offset(offset).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *userRepository) CountVerified() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("is_verified = ?", true).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count verified users: %w", err)
	}
	return count, nil
}
