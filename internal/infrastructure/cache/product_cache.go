package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mobelhaus/storefront/internal/domain/catalog"
	"github.com/mobelhaus/storefront/internal/infrastructure/config"
)

const productKeyPrefix = "storefront:product:slug:"

// RedisProductCache caches products by slug in Redis. All failures degrade
// to a cache miss; the caller falls through to the database.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisProductCache creates a product cache backed by Redis
func NewRedisProductCache(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) *RedisProductCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisProductCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetBySlug returns the cached product for a slug, if present
func (c *RedisProductCache) GetBySlug(ctx context.Context, slug string) (*catalog.Product, bool) {
	data, err := c.client.Get(ctx, productKeyPrefix+slug).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("product cache read failed", zap.String("slug", slug), zap.Error(err))
		}
		return nil, false
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		c.logger.Warn("product cache entry corrupt", zap.String("slug", slug), zap.Error(err))
		return nil, false
	}
	return &product, true
}

// SetBySlug stores a product under its slug
func (c *RedisProductCache) SetBySlug(ctx context.Context, product *catalog.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		c.logger.Warn("product cache encode failed", zap.String("slug", product.Slug), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, productKeyPrefix+product.Slug, data, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed", zap.String("slug", product.Slug), zap.Error(err))
	}
}

// Invalidate removes a slug from the cache
func (c *RedisProductCache) Invalidate(ctx context.Context, slug string) {
	if err := c.client.Del(ctx, productKeyPrefix+slug).Err(); err != nil {
		c.logger.Warn("product cache invalidation failed", zap.String("slug", slug), zap.Error(err))
	}
}

// Ping checks the Redis connection
func (c *RedisProductCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}
