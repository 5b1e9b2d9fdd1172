package models

import "time"

// Notification types
const (
	NotificationTypeSystem   = "system"
	NotificationTypeTransfer = "transfer"
)

// Notification is a per-user message row. ExtraData optionally carries
// transaction linkage ({transactionId, amount}) as opaque JSON.
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null" json:"message"`
	Type      string    `gorm:"not null;default:'system'" json:"type"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	ExtraData JSON      `gorm:"type:jsonb" json:"extra_data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
