package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dowusu/shop-backoffice/internal/catalog/domain"
	"github.com/dowusu/shop-backoffice/pkg/logger"
)

const (
	listCacheKeyPrefix = "catalog:products:"
	listCacheTTL       = 5 * time.Minute
)

// CachedProductRepository decorates a ProductRepository with a Redis
// cache-aside layer over the product listing. Writes invalidate the
// cached pages; cache failures fall through to the database.
type CachedProductRepository struct {
	domain.ProductRepository
	client *redis.Client
}

// NewCachedProductRepository wraps repo with the Redis cache layer
func NewCachedProductRepository(repo domain.ProductRepository, client *redis.Client) *CachedProductRepository {
	return &CachedProductRepository{ProductRepository: repo, client: client}
}

func listCacheKey(limit, offset int) string {
	return fmt.Sprintf("%s%d:%d", listCacheKeyPrefix, limit, offset)
}

func (r *CachedProductRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	if r.client == nil {
		return r.ProductRepository.FindAll(ctx, limit, offset)
	}

	key := listCacheKey(limit, offset)
	data, err := r.client.Get(ctx, key).Bytes()
	if err == nil && len(data) > 0 {
		var products []domain.Product
		if err := json.Unmarshal(data, &products); err == nil {
			logger.Logger.Debug().Str("cache_key", key).Msg("Product list cache hit")
			return products, nil
		}
	} else if err != nil && err != redis.Nil {
		logger.Logger.Warn().Err(err).Str("cache_key", key).Msg("Product cache read failed")
	}

	products, err := r.ProductRepository.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		if err := r.client.Set(ctx, key, data, listCacheTTL).Err(); err != nil {
			logger.Logger.Warn().Err(err).Str("cache_key", key).Msg("Product cache write failed")
		}
	}

	return products, nil
}

func (r *CachedProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.ProductRepository.Create(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := r.ProductRepository.Update(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProductRepository) UpdateWithStock(ctx context.Context, product *domain.Product, stockQuantity *int) error {
	if err := r.ProductRepository.UpdateWithStock(ctx, product, stockQuantity); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.ProductRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProductRepository) SetStockQuantity(ctx context.Context, productID string, quantity int) error {
	if err := r.ProductRepository.SetStockQuantity(ctx, productID, quantity); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProductRepository) invalidate(ctx context.Context) {
	if r.client == nil {
		return
	}

	iter := r.client.Scan(ctx, 0, listCacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Logger.Warn().Err(err).Str("cache_key", iter.Val()).Msg("Product cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		logger.Logger.Warn().Err(err).Msg("Product cache scan failed")
	}
}
