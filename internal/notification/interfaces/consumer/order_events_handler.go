package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	notification "github.com/wyfcoding/eshop/internal/notification/application"
	notificationdomain "github.com/wyfcoding/eshop/internal/notification/domain"
	order "github.com/wyfcoding/eshop/internal/order/domain"
)

// OrderEventsHandler turns order lifecycle events into user notifications.
type OrderEventsHandler struct {
	notifications *notification.NotificationService
	logger        *slog.Logger
}

func NewOrderEventsHandler(notifications *notification.NotificationService, logger *slog.Logger) *OrderEventsHandler {
	return &OrderEventsHandler{notifications: notifications, logger: logger}
}

func (h *OrderEventsHandler) Handle(ctx context.Context, msg kafka.Message) error {
	switch msg.Topic {
	case order.OrderCreatedEventType:
		var event order.OrderCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal order created event", "error", err)
			return err
		}
		subject := fmt.Sprintf("Order %s confirmed", event.OrderNumber)
		content := fmt.Sprintf("Your order %s has been placed. Total: %s.", event.OrderNumber, event.TotalPrice.StringFixed(2))
		return h.notifications.Notify(ctx, event.UserID, notificationdomain.NotificationTypeEmail, subject, content, event.Email)
	case order.OrderStatusChangedEventType:
		var event order.OrderStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.logger.ErrorContext(ctx, "failed to unmarshal order status event", "error", err)
			return err
		}
		subject := fmt.Sprintf("Order %s is now %s", event.OrderNumber, event.NewStatus)
		content := fmt.Sprintf("Your order %s moved from %s to %s.", event.OrderNumber, event.OldStatus, event.NewStatus)
		return h.notifications.Notify(ctx, event.UserID, notificationdomain.NotificationTypeEmail, subject, content, event.Email)
	default:
		h.logger.WarnContext(ctx, "unknown order event topic", "topic", msg.Topic)
		return nil
	}
}
