package cache

import (
	"fmt"

	"go.uber.org/zap"

	appinventory "github.com/shopbooks/backend/internal/application/inventory"
	"github.com/shopbooks/backend/internal/infrastructure/config"
)

// StockReportCacheFactory creates stock report caches based on configuration
type StockReportCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StockReportCacheFactoryOption is a functional option for configuring the factory
type StockReportCacheFactoryOption func(*StockReportCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StockReportCacheFactoryOption {
	return func(f *StockReportCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) StockReportCacheFactoryOption {
	return func(f *StockReportCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStockReportCacheFactory creates a new factory
func NewStockReportCacheFactory(cfg config.RedisConfig, opts ...StockReportCacheFactoryOption) *StockReportCacheFactory {
	f := &StockReportCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache creates a Redis-backed stock report cache
func (f *StockReportCacheFactory) CreateRedisCache() (appinventory.StockReportCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisStockReportCache(redisCfg, f.redisConfig.ReportTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis stock report cache: %w", err)
	}
	return cache, nil
}

// CreateInMemoryCache creates a process-local stock report cache
func (f *StockReportCacheFactory) CreateInMemoryCache() appinventory.StockReportCache {
	return NewInMemoryStockReportCache()
}

// CreateCache creates a stock report cache based on availability. It tries
// Redis first and falls back to the in-memory cache when Redis is not
// reachable and fallback is allowed.
func (f *StockReportCacheFactory) CreateCache() (appinventory.StockReportCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis stock report cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for stock report cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory stock report cache. "+
		"Cached pages will not be shared across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
