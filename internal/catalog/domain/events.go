package domain

import (
	"context"
	"time"
)

const (
	ProductCreatedEventType      = "catalog.product.created"
	ProductUpdatedEventType      = "catalog.product.updated"
	ProductStockChangedEventType = "catalog.product.stock_changed"
)

type ProductCreatedEvent struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Stock     *int      `json:"stock"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

type ProductUpdatedEvent struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Stock     *int      `json:"stock"`
	Category  string    `json:"category"`
	Active    bool      `json:"active"`
	Timestamp time.Time `json:"timestamp"`
}

type ProductStockChangedEvent struct {
	ProductID uint      `json:"product_id"`
	OldStock  *int      `json:"old_stock"`
	NewStock  *int      `json:"new_stock"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher publishes catalog events, transactionally when tx is given.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
	PublishInTx(ctx context.Context, tx any, topic string, key string, event any) error
}
