package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the catalog entry the cart and checkout validate against.
// A nil Stock means unlimited availability.
type Product struct {
	gorm.Model
	Name        string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string          `gorm:"column:description;type:text" json:"description"`
	Category    string          `gorm:"column:category;type:varchar(100);index" json:"category"`
	Brand       string          `gorm:"column:brand;type:varchar(100)" json:"brand"`
	ImageURL    string          `gorm:"column:image_url;type:varchar(512)" json:"image_url"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Stock       *int            `gorm:"column:stock" json:"stock"`
	Active      bool            `gorm:"column:active;not null;default:true" json:"active"`
}

func (Product) TableName() string { return "products" }

// HasStock reports whether the product can cover qty more units.
func (p *Product) HasStock(qty int) bool {
	return p.Stock == nil || *p.Stock >= qty
}

// DecrementStock reduces stock by qty; unlimited stock is left untouched.
func (p *Product) DecrementStock(qty int) {
	if p.Stock != nil {
		left := *p.Stock - qty
		p.Stock = &left
	}
}

type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	// GetByID returns (nil, nil) when no such product exists.
	GetByID(ctx context.Context, id uint) (*Product, error)
	// GetForUpdate reads the product under a row lock; callers must hold an
	// open transaction in ctx.
	GetForUpdate(ctx context.Context, id uint) (*Product, error)
	FindActive(ctx context.Context) ([]*Product, error)
	FindActiveByCategory(ctx context.Context, category string) ([]*Product, error)
	SearchActive(ctx context.Context, keyword string) ([]*Product, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
}
