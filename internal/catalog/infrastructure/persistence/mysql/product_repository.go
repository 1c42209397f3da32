package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/eshop/internal/catalog/domain"
	"github.com/wyfcoding/pkg/contextx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.getDB(ctx).WithContext(ctx).Save(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.getDB(ctx).WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetForUpdate(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.getDB(ctx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindActive(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.getDB(ctx).WithContext(ctx).
		Where("active = ?", true).
		Order("id").
		Find(&products).Error
	return products, err
}

func (r *productRepository) FindActiveByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.getDB(ctx).WithContext(ctx).
		Where("active = ? AND category = ?", true, category).
		Order("id").
		Find(&products).Error
	return products, err
}

func (r *productRepository) SearchActive(ctx context.Context, keyword string) ([]*domain.Product, error) {
	var products []*domain.Product
	pattern := "%" + keyword + "%"
	err := r.getDB(ctx).WithContext(ctx).
		Where("active = ? AND (name LIKE ? OR description LIKE ? OR category LIKE ?)",
			true, pattern, pattern, pattern).
		Order("id").
		Find(&products).Error
	return products, err
}

func (r *productRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.getDB(ctx).WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *productRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
