package models

import "time"

// Verification code purposes
const (
	VerificationTypeEmail         = "email"
	VerificationTypePhone         = "phone"
	VerificationTypePasswordReset = "password_reset"
)

// VerificationCode is a short-lived 6-digit one-time code. Newer codes
// supersede older ones; superseded codes are kept, not deleted.
type VerificationCode struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Code      string    `gorm:"not null" json:"-"`
	Type      string    `gorm:"not null" json:"type"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the code can still be redeemed at t.
func (v *VerificationCode) Valid(t time.Time) bool {
	return !v.IsUsed && v.ExpiresAt.After(t)
}
