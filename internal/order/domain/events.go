package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderCreatedEventType       = "order.created"
	OrderStatusChangedEventType = "order.status_changed"
)

type OrderCreatedEvent struct {
	OrderID     uint                    `json:"order_id"`
	OrderNumber string                  `json:"order_number"`
	UserID      uint                    `json:"user_id"`
	Email       string                  `json:"email"`
	TotalPrice  decimal.Decimal         `json:"total_price"`
	Items       []OrderCreatedEventItem `json:"items"`
	CreatedAt   time.Time               `json:"created_at"`
}

type OrderCreatedEventItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type OrderStatusChangedEvent struct {
	OrderID     uint        `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	UserID      uint        `json:"user_id"`
	Email       string      `json:"email"`
	OldStatus   OrderStatus `json:"old_status"`
	NewStatus   OrderStatus `json:"new_status"`
	ChangedAt   time.Time   `json:"changed_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, event any) error
	PublishInTx(ctx context.Context, tx any, eventType string, key string, event any) error
}
