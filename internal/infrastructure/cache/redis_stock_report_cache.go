package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appinventory "github.com/shopbooks/backend/internal/application/inventory"
	"github.com/shopbooks/backend/internal/domain/shared"
)

const defaultStockReportPrefix = "stock:report:"

// RedisStockReportCache implements appinventory.StockReportCache using Redis.
// Suitable for distributed deployments where multiple instances share the
// computed report pages.
//
// Invalidation uses a version counter rather than key scans: every cached
// page is stored under the current version, and Invalidate bumps the counter
// so stale pages simply stop being addressable and expire via TTL.
type RedisStockReportCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisStockReportCache creates a Redis-backed stock report cache
func NewRedisStockReportCache(cfg RedisConfig, ttl time.Duration) (*RedisStockReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStockReportCacheWithClient(client, defaultStockReportPrefix, ttl), nil
}

// NewRedisStockReportCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisStockReportCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStockReportCache {
	if keyPrefix == "" {
		keyPrefix = defaultStockReportPrefix
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisStockReportCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get returns the cached page for the key, or nil on a miss
func (c *RedisStockReportCache) Get(ctx context.Context, key string) (*shared.Paginated[appinventory.StockReportRow], error) {
	versioned, err := c.versionedKey(ctx, key)
	if err != nil {
		return nil, err
	}

	payload, err := c.client.Get(ctx, versioned).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stock report page: %w", err)
	}

	var page shared.Paginated[appinventory.StockReportRow]
	if err := json.Unmarshal(payload, &page); err != nil {
		return nil, fmt.Errorf("failed to decode stock report page: %w", err)
	}
	return &page, nil
}

// Set stores a computed page under the key with the configured TTL
func (c *RedisStockReportCache) Set(ctx context.Context, key string, page *shared.Paginated[appinventory.StockReportRow]) error {
	versioned, err := c.versionedKey(ctx, key)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to encode stock report page: %w", err)
	}

	if err := c.client.Set(ctx, versioned, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store stock report page: %w", err)
	}
	return nil
}

// Invalidate drops every cached page by bumping the version counter
func (c *RedisStockReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stock report cache: %w", err)
	}
	return nil
}

func (c *RedisStockReportCache) versionKey() string {
	return c.keyPrefix + "version"
}

func (c *RedisStockReportCache) versionedKey(ctx context.Context, key string) (string, error) {
	version, err := c.client.Get(ctx, c.versionKey()).Result()
	if errors.Is(err, redis.Nil) {
		version = "0"
	} else if err != nil {
		return "", fmt.Errorf("failed to read stock report cache version: %w", err)
	}
	return fmt.Sprintf("%sv%s:%s", c.keyPrefix, version, key), nil
}
