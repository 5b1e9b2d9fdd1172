// Package notification persists user notifications and pushes them over
// live websocket connections, best effort.
package notification

import (
	"context"
	"fmt"

	"paylink/internal/logger"
	"paylink/internal/models"
	"paylink/internal/repositories"
)

// Publisher broadcasts pushes to the other replicas.
type Publisher interface {
	PublishNotification(ctx context.Context, payload interface{}) error
}

// Service creates notification rows and fans them out.
type Service interface {
	Notify(ctx context.Context, input NotifyInput) (*models.Notification, error)
	List(userID uint) ([]models.Notification, error)
	MarkRead(id, userID uint) (*models.Notification, error)
	MarkAllRead(userID uint) (int64, error)
	Delete(id, userID uint) error
	Registry() *Registry
}

// NotifyInput describes one notification to create.
type NotifyInput struct {
	UserID        uint
	Title         string
	Message       string
	Type          string
	TransactionID *uint
	Amount        *float64
}

type service struct {
	repo      repositories.NotificationRepository
	registry  *Registry
	publisher Publisher
}

// NewService creates a notification service. publisher may be nil for
// single-replica deployments.
func NewService(repo repositories.NotificationRepository, registry *Registry, publisher Publisher) Service {
	if repo == nil {
		panic("notification repo is required")
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &service{repo: repo, registry: registry, publisher: publisher}
}

func (s *service) Registry() *Registry {
	return s.registry
}

// Notify persists the notification and attempts an immediate push. Push
// failures are not errors; the row is already durable and the client
// picks it up on its next poll.
func (s *service) Notify(ctx context.Context, input NotifyInput) (*models.Notification, error) {
	if input.Type == "" {
		input.Type = models.NotificationTypeSystem
	}

	var extra models.JSON
	if input.TransactionID != nil || input.Amount != nil {
		extra = models.JSON{}
		if input.TransactionID != nil {
			extra["transactionId"] = *input.TransactionID
		}
		if input.Amount != nil {
			extra["amount"] = *input.Amount
		}
	}

	n := &models.Notification{
		UserID:    input.UserID,
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		ExtraData: extra,
	}
	if err := s.repo.Create(n); err != nil {
		return nil, fmt.Errorf("failed to persist notification: %w", err)
	}

	push := Push{Event: EventNewNotification, Data: n}
	delivered := s.registry.Send(input.UserID, push)

	if !delivered && s.publisher != nil {
		if err := s.publisher.PublishNotification(ctx, Envelope{UserID: input.UserID, Data: n}); err != nil {
			logger.Warnf("notification publish failed for user %d: %v", input.UserID, err)
		}
	}

	return n, nil
}

func (s *service) List(userID uint) ([]models.Notification, error) {
	return s.repo.ListForUser(userID)
}

func (s *service) MarkRead(id, userID uint) (*models.Notification, error) {
	return s.repo.MarkRead(id, userID)
}

func (s *service) MarkAllRead(userID uint) (int64, error) {
	return s.repo.MarkAllRead(userID)
}

func (s *service) Delete(id, userID uint) error {
	return s.repo.Delete(id, userID)
}
