// Package cache provides Redis-backed caches for read-side views.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"posadmin/internal/core/id"
	"posadmin/internal/domain/catalog/gateway"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient creates a Redis client and verifies connectivity.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// StockSummaryCache caches product stock summaries in Redis.
type StockSummaryCache struct {
	client *redis.Client
}

// NewStockSummaryCache creates a Redis-backed summary cache.
func NewStockSummaryCache(client *redis.Client) *StockSummaryCache {
	return &StockSummaryCache{client: client}
}

func summaryKey(productID id.ID) string {
	return "stock:summary:" + productID.String()
}

// Get returns the cached summary, or (nil, nil) on miss.
func (c *StockSummaryCache) Get(ctx context.Context, productID id.ID) (*gateway.ProductSummary, error) {
	data, err := c.client.Get(ctx, summaryKey(productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}

	var summary gateway.ProductSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &summary, nil
}

// Set stores the summary with a TTL.
func (c *StockSummaryCache) Set(ctx context.Context, summary gateway.ProductSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey(summary.ProductID), data, ttl).Err(); err != nil {
		return fmt.Errorf("set summary: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary.
func (c *StockSummaryCache) Invalidate(ctx context.Context, productID id.ID) error {
	if err := c.client.Del(ctx, summaryKey(productID)).Err(); err != nil {
		return fmt.Errorf("invalidate summary: %w", err)
	}
	return nil
}

// NoopSummaryCache disables caching (tests, single-process deployments
// without Redis).
type NoopSummaryCache struct{}

func (NoopSummaryCache) Get(context.Context, id.ID) (*gateway.ProductSummary, error) {
	return nil, nil
}

func (NoopSummaryCache) Set(context.Context, gateway.ProductSummary, time.Duration) error {
	return nil
}

func (NoopSummaryCache) Invalidate(context.Context, id.ID) error {
	return nil
}

// Ensure interface compliance.
var (
	_ gateway.SummaryCache = (*StockSummaryCache)(nil)
	_ gateway.SummaryCache = NoopSummaryCache{}
)
