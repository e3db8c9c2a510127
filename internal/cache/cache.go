// Package cache keeps serialized product listings in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"barwy-shop/internal/domain"
	"barwy-shop/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	keyPrefix   = "catalog:products:"
	allKey      = keyPrefix + "all"
	categoryKey = keyPrefix + "category:"
	// generationKey is bumped by every invalidation. It lives outside keyPrefix so
	// InvalidateAll never deletes it.
	generationKey = "catalog:generation:products"
)

// Loader produces a product listing on a cache miss
type Loader func(ctx context.Context) ([]models.ProductVM, error)

// ProductListCache is a cache-aside store for product listings
type ProductListCache interface {
	GetAll(ctx context.Context, load Loader) ([]models.ProductVM, error)
	GetByCategory(ctx context.Context, category string, load Loader) ([]models.ProductVM, error)
	// InvalidateAll drops every cached listing
	InvalidateAll(ctx context.Context) error
}

// CategoryKey returns the Redis key of a category listing
func CategoryKey(category string) string {
	return categoryKey + domain.NormalizeName(category)
}

type redisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
	group  singleflight.Group
}

// NewRedisProductCache creates a ProductListCache backed by Redis
func NewRedisProductCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) ProductListCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisProductCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisProductCache) GetAll(ctx context.Context, load Loader) ([]models.ProductVM, error) {
	return c.get(ctx, allKey, load)
}

func (c *redisProductCache) GetByCategory(ctx context.Context, category string, load Loader) ([]models.ProductVM, error) {
	return c.get(ctx, CategoryKey(category), load)
}

// get reads key and falls back to load. Concurrent misses on the same key share one load,
// which runs detached from the first caller's cancellation.
// A loaded listing is stored only if no invalidation happened since the load started.
// Redis failures are logged and never fail the call.
func (c *redisProductCache) get(ctx context.Context, key string, load Loader) ([]models.ProductVM, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var products []models.ProductVM
		if err := json.Unmarshal(raw, &products); err == nil {
			return products, nil
		}
		c.logger.Warn("Discarding malformed cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		ctx := context.WithoutCancel(ctx)

		generation, genErr := c.generation(ctx)
		if genErr != nil {
			c.logger.Warn("Cache generation read failed", zap.Error(genErr))
		}

		products, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if genErr == nil {
			c.store(ctx, key, generation, products)
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]models.ProductVM), nil
}

func (c *redisProductCache) generation(ctx context.Context) (int64, error) {
	generation, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

// store writes the listing unless the generation moved past the one seen before loading
func (c *redisProductCache) store(ctx context.Context, key string, generation int64, products []models.ProductVM) {
	payload, err := json.Marshal(products)
	if err != nil {
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			c.logger.Debug("Skipping stale cache write", zap.String("key", key))
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, c.ttl)
			return nil
		})
		return err
	}, generationKey)

	switch {
	case errors.Is(err, redis.TxFailedErr):
		c.logger.Debug("Skipping cache write raced by invalidation", zap.String("key", key))
	case err != nil:
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateAll bumps the generation, so in-flight loads are not stored, then drops every listing
func (c *redisProductCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}

	var keys []string
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to drop cache keys: %w", err)
	}
	return nil
}

type noopCache struct{}

// NewNoopCache returns a ProductListCache that always loads
func NewNoopCache() ProductListCache {
	return noopCache{}
}

func (noopCache) GetAll(ctx context.Context, load Loader) ([]models.ProductVM, error) {
	return load(ctx)
}

func (noopCache) GetByCategory(ctx context.Context, _ string, load Loader) ([]models.ProductVM, error) {
	return load(ctx)
}

func (noopCache) InvalidateAll(context.Context) error {
	return nil
}
