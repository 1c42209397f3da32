package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/eshop/internal/catalog/domain"
)

// ProductCache is a read-through cache for catalog reads. Cart and checkout
// never read it; they need repository-authoritative stock and price.
type ProductCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewProductCache(client redis.UniversalClient, ttl time.Duration) *ProductCache {
	return &ProductCache{
		client: client,
		prefix: "catalog:product:",
		ttl:    ttl,
	}
}

// Get returns (nil, nil) on a cache miss.
func (c *ProductCache) Get(ctx context.Context, id uint) (*domain.Product, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *ProductCache) Set(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(product.ID), data, c.ttl).Err()
}

func (c *ProductCache) Invalidate(ctx context.Context, id uint) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *ProductCache) key(id uint) string {
	return fmt.Sprintf("%s%d", c.prefix, id)
}
