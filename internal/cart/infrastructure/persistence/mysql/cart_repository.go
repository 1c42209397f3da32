package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/eshop/internal/cart/domain"
	"github.com/wyfcoding/pkg/contextx"
	"gorm.io/gorm"
)

type cartRepository struct{ db *gorm.DB }

func NewCartRepository(db *gorm.DB) domain.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(contextx.WithTx(ctx, tx))
	})
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.getDB(ctx).WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id") }).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	return r.getDB(ctx).WithContext(ctx).Create(cart).Error
}

func (r *cartRepository) SaveItem(ctx context.Context, item *domain.CartItem) error {
	// Save without the association so a stale preloaded product is never
	// written back to the catalog.
	return r.getDB(ctx).WithContext(ctx).Omit("Product").Save(item).Error
}

func (r *cartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	return r.getDB(ctx).WithContext(ctx).
		Unscoped().
		Delete(&domain.CartItem{}, itemID).Error
}

func (r *cartRepository) DeleteItems(ctx context.Context, cartID uint) error {
	return r.getDB(ctx).WithContext(ctx).
		Unscoped().
		Where("cart_id = ?", cartID).
		Delete(&domain.CartItem{}).Error
}

func (r *cartRepository) GetItemByID(ctx context.Context, itemID uint) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.getDB(ctx).WithContext(ctx).First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) Delete(ctx context.Context, cart *domain.Cart) error {
	db := r.getDB(ctx)
	if err := db.WithContext(ctx).
		Unscoped().
		Where("cart_id = ?", cart.ID).
		Delete(&domain.CartItem{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Unscoped().Delete(&domain.Cart{}, cart.ID).Error
}

func (r *cartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
