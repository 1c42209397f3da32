package domain

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the closed fulfillment vocabulary. PENDING is the only
// status reachable at creation; no transition graph is enforced beyond that.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ParseOrderStatus matches a status string case-insensitively against the
// known values.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(strings.ToUpper(s)) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(strings.ToUpper(s)), true
	}
	return "", false
}

// Order is the immutable record of a completed purchase. Item prices are
// frozen at checkout and never re-derived from the catalog.
type Order struct {
	gorm.Model
	OrderNumber     string          `gorm:"column:order_number;type:varchar(32);uniqueIndex;not null" json:"order_number"`
	UserID          uint            `gorm:"column:user_id;index;not null" json:"user_id"`
	Status          OrderStatus     `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	TotalPrice      decimal.Decimal `gorm:"column:total_price;type:decimal(10,2);not null" json:"total_price"`
	ShippingAddress string          `gorm:"column:shipping_address;type:varchar(512);not null" json:"shipping_address"`
	BillingAddress  string          `gorm:"column:billing_address;type:varchar(512);not null" json:"billing_address"`
	Phone           string          `gorm:"column:phone;type:varchar(20);not null" json:"phone"`
	Email           string          `gorm:"column:email;type:varchar(255)" json:"email"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	gorm.Model
	OrderID     uint            `gorm:"column:order_id;index;not null" json:"order_id"`
	ProductID   uint            `gorm:"column:product_id;not null" json:"product_id"`
	ProductName string          `gorm:"column:product_name;type:varchar(255);not null" json:"product_name"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"column:total_price;type:decimal(10,2);not null" json:"total_price"`
}

func (OrderItem) TableName() string { return "order_items" }

type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	Save(ctx context.Context, order *Order) error
	// GetByID eager-loads items; returns (nil, nil) when absent.
	GetByID(ctx context.Context, id uint) (*Order, error)
	// ListByUser returns the user's orders newest first, items loaded.
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	UpdateStatus(ctx context.Context, id uint, status OrderStatus) error
}
