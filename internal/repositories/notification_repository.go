package repositories

import (
	"errors"

	"paylink/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines notification persistence operations.
// Reads and mutations are always scoped to the owning user.
type NotificationRepository interface {
	Create(n *models.Notification) error
	ListForUser(userID uint) ([]models.Notification, error)
	GetForUser(id, userID uint) (*models.Notification, error)
	MarkRead(id, userID uint) (*models.Notification, error)
	MarkAllRead(userID uint) (int64, error)
	Delete(id, userID uint) error
}
