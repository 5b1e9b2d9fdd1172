package models

import "time"

// Wallet holds the balance for exactly one user. The balance is only
// mutated through the wallet service; direct writes bypass the
// conditional-update guard and must not happen.
type Wallet struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance   float64   `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
