package repositories

import (
	"errors"

	"paylink/internal/models"
)

var ErrCardNotFound = errors.New("card not found")

// PaymentCardRepository defines payment card persistence. Cards are
// soft-deleted; every query filters on is_deleted.
type PaymentCardRepository interface {
	Create(card *models.PaymentCard) error
	GetForUser(id, userID uint) (*models.PaymentCard, error)
	ListForUser(userID uint) ([]models.PaymentCard, error)
	Update(card *models.PaymentCard) error
	UnsetDefaults(userID uint) error
	SoftDelete(id, userID uint) error
	// NewestForUser returns the most recently added live card, used to
	// promote a replacement default.
	NewestForUser(userID uint) (*models.PaymentCard, error)
}
