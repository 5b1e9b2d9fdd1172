package transfer

import (
	"context"
	"fmt"

	"paylink/internal/logger"
	"paylink/internal/models"
	"paylink/internal/services/notification"
)

// Notification titles for the two sides of a transfer.
const (
	TitleMoneySent     = "Money Sent"
	TitleMoneyReceived = "You've Received Money"
)

// transferNotifier writes one notification per party and attempts a live
// push through the notification service.
type transferNotifier struct {
	notifications notification.Service
}

// NewNotifier adapts the notification service to the transfer package.
func NewNotifier(svc notification.Service) Notifier {
	return &transferNotifier{notifications: svc}
}

func (n *transferNotifier) NotifyTransfer(ctx context.Context, tx *models.Transaction, sender, recipient *models.User) {
	amount := tx.Amount

	_, err := n.notifications.Notify(ctx, notification.NotifyInput{
		UserID:        sender.ID,
		Title:         TitleMoneySent,
		Message:       fmt.Sprintf("You sent $%.2f to %s", amount, displayName(recipient)),
		Type:          models.NotificationTypeTransfer,
		TransactionID: &tx.ID,
		Amount:        &amount,
	})
	if err != nil {
		logger.Warnf("sender notification failed for transfer %s: %v", tx.Reference, err)
	}

	_, err = n.notifications.Notify(ctx, notification.NotifyInput{
		UserID:        recipient.ID,
		Title:         TitleMoneyReceived,
		Message:       fmt.Sprintf("You received $%.2f from %s", amount, displayName(sender)),
		Type:          models.NotificationTypeTransfer,
		TransactionID: &tx.ID,
		Amount:        &amount,
	})
	if err != nil {
		logger.Warnf("recipient notification failed for transfer %s: %v", tx.Reference, err)
	}
}

func displayName(u *models.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Email != nil {
		return *u.Email
	}
	return u.PhoneOrEmpty()
}
