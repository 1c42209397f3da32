package domain

import (
	"context"

	"github.com/shopspring/decimal"
	catalog "github.com/wyfcoding/eshop/internal/catalog/domain"
	"gorm.io/gorm"
)

// Cart is a user's mutable pre-purchase selection. One cart per user; created
// lazily on the first add and destroyed by a successful checkout.
type Cart struct {
	gorm.Model
	UserID uint       `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

func (Cart) TableName() string { return "carts" }

type CartItem struct {
	gorm.Model
	CartID    uint             `gorm:"column:cart_id;uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uint             `gorm:"column:product_id;uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  int              `gorm:"column:quantity;not null" json:"quantity"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string { return "cart_items" }

// Total is the live cart value: quantities priced at the current product
// price, never a stored snapshot.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		if c.Items[i].Product == nil {
			continue
		}
		line := c.Items[i].Product.Price.Mul(decimal.NewFromInt(int64(c.Items[i].Quantity)))
		total = total.Add(line)
	}
	return total
}

// ItemOfProduct returns the cart line holding productID, nil when absent.
func (c *Cart) ItemOfProduct(productID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// ItemByID returns the cart line with the given item id, nil when absent.
func (c *Cart) ItemByID(itemID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

type CartRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	// GetByUserID eager-loads items and their products in insertion order;
	// returns (nil, nil) when the user has no cart.
	GetByUserID(ctx context.Context, userID uint) (*Cart, error)
	Create(ctx context.Context, cart *Cart) error
	SaveItem(ctx context.Context, item *CartItem) error
	DeleteItem(ctx context.Context, itemID uint) error
	DeleteItems(ctx context.Context, cartID uint) error
	GetItemByID(ctx context.Context, itemID uint) (*CartItem, error)
	// Delete removes the cart row and all of its items.
	Delete(ctx context.Context, cart *Cart) error
}
