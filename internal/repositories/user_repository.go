package repositories

import (
	"errors"

	"paylink/internal/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	ErrDuplicatePhone = errors.New("a user with this phone already exists")
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(user *models.User) error
	// CreateWithWallet creates the user and an empty wallet for them in
	// one database transaction.
	CreateWithWallet(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	Update(user *models.User) error
	IncrementTokenVersion(userID uint) error
	List(limit, offset int) ([]models.User, error)
	CountAll() (int64, error)
	CountVerified() (int64, error)
}
