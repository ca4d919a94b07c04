package cache

import (
	"context"
	"maps"
	"sync"

	"github.com/xavierca1/shopper-funnel/internal/entity"
)

// MemoryFunnelCache is a process-local FunnelCache for single instance deployments
// and tests. Stored maps are copied in and out so callers cannot mutate entries.
type MemoryFunnelCache struct {
	mu      sync.RWMutex
	entries map[string]entity.WeeklyStats
}

func NewMemoryFunnelCache() *MemoryFunnelCache {
	return &MemoryFunnelCache{entries: make(map[string]entity.WeeklyStats)}
}

func (c *MemoryFunnelCache) Get(_ context.Context, key string) (entity.WeeklyStats, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return maps.Clone(stats), true, nil
}

func (c *MemoryFunnelCache) Set(_ context.Context, key string, stats entity.WeeklyStats) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = maps.Clone(stats)
	return nil
}

func (c *MemoryFunnelCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

func (c *MemoryFunnelCache) Health(context.Context) error {
	return nil
}

func (c *MemoryFunnelCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
