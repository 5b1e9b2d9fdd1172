package notification

import (
	"context"
	"testing"

	"paylink/internal/models"
	"paylink/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	rows []*models.Notification
}

func (f *fakeNotificationRepo) Create(n *models.Notification) error {
	n.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, n)
	return nil
}

func (f *fakeNotificationRepo) ListForUser(userID uint) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].UserID == userID {
			out = append(out, *f.rows[i])
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) GetForUser(id, userID uint) (*models.Notification, error) {
	for _, n := range f.rows {
		if n.ID == id && n.UserID == userID {
			return n, nil
		}
	}
	return nil, repositories.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) MarkRead(id, userID uint) (*models.Notification, error) {
	n, err := f.GetForUser(id, userID)
	if err != nil {
		return nil, err
	}
	n.IsRead = true
	return n, nil
}

func (f *fakeNotificationRepo) MarkAllRead(userID uint) (int64, error) {
	var count int64
	for _, n := range f.rows {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) Delete(id, userID uint) error {
	for i, n := range f.rows {
		if n.ID == id && n.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

type fakePublisher struct {
	published []interface{}
}

func (f *fakePublisher) PublishNotification(_ context.Context, payload interface{}) error {
	f.published = append(f.published, payload)
	return nil
}

func TestNotifyPersistsAndPushesLocally(t *testing.T) {
	repo := &fakeNotificationRepo{}
	publisher := &fakePublisher{}
	svc := NewService(repo, NewRegistry(), publisher)

	conn := &fakeConn{}
	svc.Registry().Register(3, conn)

	txID := uint(9)
	amount := 42.5
	n, err := svc.Notify(context.Background(), NotifyInput{
		UserID:        3,
		Title:         "You've Received Money",
		Message:       "You received $42.50",
		Type:          models.NotificationTypeTransfer,
		TransactionID: &txID,
		Amount:        &amount,
	})
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, uint(9), n.ExtraData["transactionId"])
	assert.Equal(t, 42.5, n.ExtraData["amount"])

	require.Len(t, conn.written, 1)
	push, ok := conn.written[0].(Push)
	require.True(t, ok)
	assert.Equal(t, EventNewNotification, push.Event)

	assert.Empty(t, publisher.published, "no publish when delivered locally")
}

func TestNotifyPublishesWhenNoLocalSocket(t *testing.T) {
	repo := &fakeNotificationRepo{}
	publisher := &fakePublisher{}
	svc := NewService(repo, NewRegistry(), publisher)

	_, err := svc.Notify(context.Background(), NotifyInput{
		UserID:  5,
		Title:   "Money Sent",
		Message: "You sent $10.00",
	})
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	env, ok := publisher.published[0].(Envelope)
	require.True(t, ok)
	assert.Equal(t, uint(5), env.UserID)
}

func TestNotifyDefaultsToSystemType(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewService(repo, NewRegistry(), nil)

	n, err := svc.Notify(context.Background(), NotifyInput{UserID: 1, Title: "Welcome"})
	require.NoError(t, err)
	assert.Equal(t, models.NotificationTypeSystem, n.Type)
	assert.Nil(t, n.ExtraData)
}

func TestMarkAllReadCountsOnlyUnread(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewService(repo, NewRegistry(), nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Notify(context.Background(), NotifyInput{UserID: 1, Title: "n"})
		require.NoError(t, err)
	}
	_, err := svc.MarkRead(1, 1)
	require.NoError(t, err)

	count, err := svc.MarkAllRead(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestDeleteScopedToOwner(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewService(repo, NewRegistry(), nil)

	n, err := svc.Notify(context.Background(), NotifyInput{UserID: 1, Title: "mine"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(n.ID, 2), repositories.ErrNotificationNotFound)
	assert.NoError(t, svc.Delete(n.ID, 1))
}
