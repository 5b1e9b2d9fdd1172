package card

import (
	"context"

	"paylink/internal/models"
)

// Service manages a user's stored payment cards.
type Service interface {
	AddCard(userID uint, input *models.CreateCardInput) (*models.PaymentCard, error)
	ListCards(userID uint) ([]models.PaymentCard, error)
	GetCard(userID, cardID uint) (*models.PaymentCard, error)
	SetDefault(userID, cardID uint) (*models.PaymentCard, error)
	DeleteCard(userID, cardID uint) error

	// ValidateCard checks that the card exists, belongs to the user and
	// is not deleted. Funding operations call this before moving money.
	ValidateCard(ctx context.Context, userID, cardID uint) error
}
