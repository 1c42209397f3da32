package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/eshop/internal/catalog/domain"
	"github.com/wyfcoding/eshop/pkg/errs"
	"github.com/wyfcoding/pkg/logging"
)

type CreateProductCommand struct {
	Name        string
	Description string
	Category    string
	Brand       string
	ImageURL    string
	Price       decimal.Decimal
	Stock       *int
	Active      bool
}

type UpdateProductCommand struct {
	ProductID   uint
	Name        string
	Description string
	Category    string
	Brand       string
	ImageURL    string
	Price       decimal.Decimal
	Stock       *int
	Active      bool
}

// CatalogCommandService is the catalog management write side. Checkout does
// not go through it; stock decrement at checkout lives in the order module's
// transaction.
type CatalogCommandService struct {
	repo      domain.ProductRepository
	cache     ProductCache
	publisher domain.EventPublisher
}

func NewCatalogCommandService(repo domain.ProductRepository, cache ProductCache, publisher domain.EventPublisher) *CatalogCommandService {
	return &CatalogCommandService{repo: repo, cache: cache, publisher: publisher}
}

func (s *CatalogCommandService) CreateProduct(ctx context.Context, cmd CreateProductCommand) (uint, error) {
	product := &domain.Product{
		Name:        cmd.Name,
		Description: cmd.Description,
		Category:    cmd.Category,
		Brand:       cmd.Brand,
		ImageURL:    cmd.ImageURL,
		Price:       cmd.Price,
		Stock:       cmd.Stock,
		Active:      cmd.Active,
	}
	if err := s.repo.Save(ctx, product); err != nil {
		return 0, err
	}

	if s.publisher != nil {
		event := domain.ProductCreatedEvent{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price.String(),
			Stock:     product.Stock,
			Category:  product.Category,
			Timestamp: time.Now(),
		}
		if err := s.publisher.Publish(ctx, domain.ProductCreatedEventType, product.Name, event); err != nil {
			logging.Error(ctx, "failed to publish product created event", "product_id", product.ID, "error", err)
		}
	}
	return product.ID, nil
}

func (s *CatalogCommandService) UpdateProduct(ctx context.Context, cmd UpdateProductCommand) error {
	product, err := s.repo.GetByID(ctx, cmd.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return errs.NotFound(errs.CodeProductNotFoundByID, "Product not found with id: %d", cmd.ProductID)
	}

	oldStock := product.Stock
	product.Name = cmd.Name
	product.Description = cmd.Description
	product.Category = cmd.Category
	product.Brand = cmd.Brand
	product.ImageURL = cmd.ImageURL
	product.Price = cmd.Price
	product.Stock = cmd.Stock
	product.Active = cmd.Active

	if err := s.repo.Save(ctx, product); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, product.ID); err != nil {
			logging.Warn(ctx, "product cache invalidation failed", "product_id", product.ID, "error", err)
		}
	}

	if s.publisher != nil {
		event := domain.ProductUpdatedEvent{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price.String(),
			Stock:     product.Stock,
			Category:  product.Category,
			Active:    product.Active,
			Timestamp: time.Now(),
		}
		if err := s.publisher.Publish(ctx, domain.ProductUpdatedEventType, product.Name, event); err != nil {
			logging.Error(ctx, "failed to publish product updated event", "product_id", product.ID, "error", err)
		}
		if !stockEqual(oldStock, product.Stock) {
			stockEvent := domain.ProductStockChangedEvent{
				ProductID: product.ID,
				OldStock:  oldStock,
				NewStock:  product.Stock,
				Timestamp: time.Now(),
			}
			if err := s.publisher.Publish(ctx, domain.ProductStockChangedEventType, product.Name, stockEvent); err != nil {
				logging.Error(ctx, "failed to publish stock changed event", "product_id", product.ID, "error", err)
			}
		}
	}
	return nil
}

func stockEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
