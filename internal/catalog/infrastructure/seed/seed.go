// Package seed loads a sample catalog into an empty dev database.
package seed

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wyfcoding/eshop/internal/catalog/domain"
	"github.com/wyfcoding/pkg/logging"
)

// Products inserts the sample catalog when the products table is empty.
// Idempotent across restarts.
func Products(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := sampleProducts()
	if err := db.WithContext(ctx).Create(&products).Error; err != nil {
		return err
	}
	logging.Info(ctx, "sample catalog seeded", "products", len(products))
	return nil
}

func sampleProducts() []domain.Product {
	stock := func(n int) *int { return &n }
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	img := "https://via.placeholder.com/300"

	return []domain.Product{
		{Name: "Whole milk", Description: "Pasteurized whole milk 1L", Price: price("1.99"), Stock: stock(100), Category: "Dairy", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Sandwich bread", Description: "Whole wheat sandwich bread 500g", Price: price("2.49"), Stock: stock(50), Category: "Bakery", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Golden apples", Description: "Golden apples 1kg", Price: price("3.99"), Stock: stock(75), Category: "Fruits", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Plain yogurt", Description: "Organic plain yogurt x8", Price: price("4.99"), Stock: stock(60), Category: "Dairy", Brand: "HouseBrand Bio", ImageURL: img, Active: true},
		{Name: "Spaghetti", Description: "Spaghetti pasta 500g", Price: price("1.29"), Stock: stock(120), Category: "Pasta", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Tomato sauce", Description: "Tomato basil sauce 500g", Price: price("2.19"), Stock: stock(80), Category: "Sauces", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Roast chicken", Description: "Roast chicken 1.2kg", Price: price("8.99"), Stock: stock(20), Category: "Meat", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Fresh salmon", Description: "Salmon fillet 300g", Price: price("12.99"), Stock: stock(15), Category: "Fish", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Basmati rice", Description: "Basmati rice 1kg", Price: price("3.49"), Stock: stock(90), Category: "Rice", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Olive oil", Description: "Extra virgin olive oil 750ml", Price: price("6.99"), Stock: stock(40), Category: "Oils", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Mineral water", Description: "Natural mineral water 6x1.5L", Price: price("4.99"), Stock: stock(100), Category: "Beverages", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Ground coffee", Description: "Ground arabica coffee 250g", Price: price("5.99"), Stock: stock(55), Category: "Beverages", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Dark chocolate", Description: "Dark chocolate 70% bar 200g", Price: price("3.79"), Stock: stock(70), Category: "Sweets", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Goat cheese", Description: "Fresh goat cheese 200g", Price: price("4.49"), Stock: stock(35), Category: "Dairy", Brand: "HouseBrand", ImageURL: img, Active: true},
		{Name: "Orange juice", Description: "Fresh orange juice 1L", Price: price("2.99"), Stock: stock(65), Category: "Beverages", Brand: "HouseBrand", ImageURL: img, Active: true},
	}
}
