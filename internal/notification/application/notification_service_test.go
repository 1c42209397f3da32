package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/eshop/internal/notification/domain"
)

type fakeNotificationRepo struct {
	saved []*domain.Notification
}

func (f *fakeNotificationRepo) Save(_ context.Context, n *domain.Notification) error {
	f.saved = append(f.saved, n)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID uint) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range f.saved {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeSender struct {
	err   error
	calls int
}

func (f *fakeSender) Send(_ context.Context, _ *domain.Notification) error {
	f.calls++
	return f.err
}

func TestNotify_RecordsSent(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, &fakeSender{})

	err := svc.Notify(context.Background(), 1, domain.NotificationTypeEmail, "Order confirmed", "body", "jane@example.com")

	require.NoError(t, err)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, domain.NotificationStatusSent, repo.saved[0].Status)
	assert.NotNil(t, repo.saved[0].SentAt)
}

func TestNotify_DeliveryFailureRecordedNotPropagated(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, &fakeSender{err: errors.New("smtp down")})

	err := svc.Notify(context.Background(), 1, domain.NotificationTypeEmail, "Order confirmed", "body", "jane@example.com")

	require.NoError(t, err)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, domain.NotificationStatusFailed, repo.saved[0].Status)
	assert.Equal(t, "smtp down", repo.saved[0].ErrorMessage)
	assert.Nil(t, repo.saved[0].SentAt)
}
