package models

import "time"

// RateLimitLog records one 429 emitted by the request limiter.
type RateLimitLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	IP         string    `gorm:"index;not null" json:"ip"`
	Path       string    `gorm:"not null" json:"path"`
	UserID     *uint     `json:"user_id,omitempty"`
	RetryAfter int       `json:"retry_after"`
	CreatedAt  time.Time `json:"created_at"`
}
