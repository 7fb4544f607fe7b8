package cache

import (
	"context"
	"sync"

	appinventory "github.com/shopbooks/backend/internal/application/inventory"
	"github.com/shopbooks/backend/internal/domain/shared"
)

// InMemoryStockReportCache implements appinventory.StockReportCache with a
// process-local map. Suitable for single-instance deployments and testing.
// State is not shared across instances, so a distributed deployment should
// use the Redis cache instead.
type InMemoryStockReportCache struct {
	mu    sync.RWMutex
	pages map[string]*shared.Paginated[appinventory.StockReportRow]
}

// NewInMemoryStockReportCache creates an empty in-memory cache
func NewInMemoryStockReportCache() *InMemoryStockReportCache {
	return &InMemoryStockReportCache{
		pages: make(map[string]*shared.Paginated[appinventory.StockReportRow]),
	}
}

// Get returns the cached page for the key, or nil on a miss
func (c *InMemoryStockReportCache) Get(ctx context.Context, key string) (*shared.Paginated[appinventory.StockReportRow], error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pages[key], nil
}

// Set stores a computed page under the key
func (c *InMemoryStockReportCache) Set(ctx context.Context, key string, page *shared.Paginated[appinventory.StockReportRow]) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[key] = page
	return nil
}

// Invalidate drops every cached page
func (c *InMemoryStockReportCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = make(map[string]*shared.Paginated[appinventory.StockReportRow])
	return nil
}
