package models

import "time"

// Transaction types
const (
	TransactionTypeDeposit  = "deposit"
	TransactionTypeWithdraw = "withdraw"
	TransactionTypeTransfer = "transfer"
)

// Transaction statuses
const (
	TransactionStatusCompleted = "completed"
)

// Transaction is an immutable record of one money movement. Deposits and
// withdrawals have no counterparty, so SenderID stays nil for those;
// transfers carry both sides.
type Transaction struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Reference   string    `gorm:"uniqueIndex;not null" json:"reference"`
	SenderID    *uint     `gorm:"index" json:"sender_id"`
	RecipientID *uint     `gorm:"index" json:"recipient_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `json:"description"`
	CardID      *uint     `json:"card_id,omitempty"`
	Type        string    `gorm:"not null" json:"type"`
	Status      string    `gorm:"not null;default:'completed'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	Sender    *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}
