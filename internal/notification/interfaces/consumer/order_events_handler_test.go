package consumer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/eshop/internal/notification/application"
	"github.com/wyfcoding/eshop/internal/notification/domain"
	order "github.com/wyfcoding/eshop/internal/order/domain"
)

type fakeNotificationRepo struct {
	saved []*domain.Notification
}

func (f *fakeNotificationRepo) Save(ctx context.Context, n *domain.Notification) error {
	f.saved = append(f.saved, n)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID uint) ([]*domain.Notification, error) {
	return nil, nil
}

type fakeSender struct {
	sent []*domain.Notification
}

func (f *fakeSender) Send(ctx context.Context, n *domain.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

func handlerFixture() (*OrderEventsHandler, *fakeNotificationRepo, *fakeSender) {
	repo := &fakeNotificationRepo{}
	sender := &fakeSender{}
	svc := application.NewNotificationService(repo, sender)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrderEventsHandler(svc, logger), repo, sender
}

func TestHandle_OrderCreatedTargetsBuyerEmail(t *testing.T) {
	h, repo, sender := handlerFixture()

	payload, err := json.Marshal(order.OrderCreatedEvent{
		OrderID:     7,
		OrderNumber: "ORD-7",
		UserID:      3,
		Email:       "jane@example.com",
		TotalPrice:  decimal.RequireFromString("32.97"),
	})
	require.NoError(t, err)

	err = h.Handle(context.Background(), kafka.Message{
		Topic: order.OrderCreatedEventType,
		Value: payload,
	})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	saved := repo.saved[0]
	assert.Equal(t, "jane@example.com", saved.Target)
	assert.Equal(t, uint(3), saved.UserID)
	assert.Equal(t, domain.NotificationTypeEmail, saved.Type)
	assert.Equal(t, "Order ORD-7 confirmed", saved.Subject)
	assert.Contains(t, saved.Content, "32.97")
	assert.Equal(t, domain.NotificationStatusSent, saved.Status)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "jane@example.com", sender.sent[0].Target)
}

func TestHandle_OrderStatusChangedTargetsBuyerEmail(t *testing.T) {
	h, repo, _ := handlerFixture()

	payload, err := json.Marshal(order.OrderStatusChangedEvent{
		OrderID:     7,
		OrderNumber: "ORD-7",
		UserID:      3,
		Email:       "jane@example.com",
		OldStatus:   order.OrderStatusPending,
		NewStatus:   order.OrderStatusShipped,
	})
	require.NoError(t, err)

	err = h.Handle(context.Background(), kafka.Message{
		Topic: order.OrderStatusChangedEventType,
		Value: payload,
	})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "jane@example.com", repo.saved[0].Target)
	assert.Equal(t, "Order ORD-7 is now SHIPPED", repo.saved[0].Subject)
}

func TestHandle_UnknownTopicIgnored(t *testing.T) {
	h, repo, _ := handlerFixture()

	err := h.Handle(context.Background(), kafka.Message{Topic: "order.refunded", Value: []byte("{}")})
	require.NoError(t, err)
	assert.Empty(t, repo.saved)
}

func TestHandle_MalformedPayloadRejected(t *testing.T) {
	h, repo, _ := handlerFixture()

	err := h.Handle(context.Background(), kafka.Message{
		Topic: order.OrderCreatedEventType,
		Value: []byte("not json"),
	})
	assert.Error(t, err)
	assert.Empty(t, repo.saved)
}
