package models

import "time"

// PaymentCard stores only hashed card material plus a masked display
// string. Rows are soft-deleted so transaction history keeps its card
// references.
type PaymentCard struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	UserID           uint      `gorm:"index;not null" json:"user_id"`
	Name             string    `gorm:"not null" json:"name"`
	CardNumberHash   string    `gorm:"not null" json:"-"`
	MaskedCardNumber string    `gorm:"not null" json:"card_number"`
	ExpireDate       string    `gorm:"not null" json:"expire_date"`
	CVCHash          string    `gorm:"not null" json:"-"`
	StripeToken      string    `json:"-"`
	CardType         string    `json:"type"`
	CardColor        string    `gorm:"default:'bg-blue-500'" json:"card_color"`
	IsDefault        bool      `gorm:"default:false" json:"is_default"`
	IsDeleted        bool      `gorm:"default:false" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateCardInput is the add-card request payload.
type CreateCardInput struct {
	Name       string `json:"name"`
	CardNumber string `json:"card_number"`
	ExpireDate string `json:"expire_date"`
	CVC        string `json:"cvc"`
	Type       string `json:"type"`
	CardColor  string `json:"card_color"`
	IsDefault  bool   `json:"is_default"`
}

// CardToken is the result of tokenizing a card with the payment provider.
type CardToken struct {
	Token    string `json:"token"`
	CardType string `json:"card_type"`
	LastFour string `json:"last_four"`
}
