package application

import (
	"context"

	"github.com/wyfcoding/eshop/internal/catalog/domain"
	"github.com/wyfcoding/eshop/pkg/errs"
	"github.com/wyfcoding/pkg/logging"
)

// ProductCache is the read-through cache the query side consults before the
// repository. Implementations return (nil, nil) on a miss.
type ProductCache interface {
	Get(ctx context.Context, id uint) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
	Invalidate(ctx context.Context, id uint) error
}

type CatalogQueryService struct {
	repo  domain.ProductRepository
	cache ProductCache
}

// NewCatalogQueryService creates the catalog read side; cache may be nil.
func NewCatalogQueryService(repo domain.ProductRepository, cache ProductCache) *CatalogQueryService {
	return &CatalogQueryService{repo: repo, cache: cache}
}

// GetProduct returns an active product by id; inactive products are treated
// as absent, matching the public catalog surface.
func (s *CatalogQueryService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			logging.Warn(ctx, "product cache read failed", "product_id", id, "error", err)
		} else if cached != nil {
			if !cached.Active {
				return nil, errs.NotFound(errs.CodeProductNotFoundByID, "Product not found with id: %d", id)
			}
			return cached, nil
		}
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, errs.NotFound(errs.CodeProductNotFoundByID, "Product not found with id: %d", id)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			logging.Warn(ctx, "product cache write failed", "product_id", id, "error", err)
		}
	}
	return product, nil
}

func (s *CatalogQueryService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.FindActive(ctx)
}

func (s *CatalogQueryService) ListProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.repo.FindActiveByCategory(ctx, category)
}

func (s *CatalogQueryService) SearchProducts(ctx context.Context, keyword string) ([]*domain.Product, error) {
	return s.repo.SearchActive(ctx, keyword)
}
