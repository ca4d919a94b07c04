package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/xavierca1/shopper-funnel/internal/entity"
)

// RedisFunnelCache keeps weekly stats in Redis as msgpack maps under
// "<prefix>:<week key>". Keys are written without expiry.
type RedisFunnelCache struct {
	rdb    *redis.Client
	prefix string
}

type RedisFunnelCacheOption func(*RedisFunnelCache)

func WithPrefix(prefix string) RedisFunnelCacheOption {
	return func(c *RedisFunnelCache) {
		c.prefix = strings.Trim(prefix, ":")
	}
}

func NewRedisFunnelCache(rdb *redis.Client, opts ...RedisFunnelCacheOption) *RedisFunnelCache {
	c := &RedisFunnelCache{
		rdb:    rdb,
		prefix: "funnel",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisFunnelCache) key(weekKey string) string {
	if c.prefix == "" {
		return weekKey
	}
	return c.prefix + ":" + weekKey
}

func (c *RedisFunnelCache) Get(ctx context.Context, weekKey string) (entity.WeeklyStats, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(weekKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var stats entity.WeeklyStats
	if err := msgpack.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("decode cached stats: %w", err)
	}
	return stats, true, nil
}

func (c *RedisFunnelCache) Set(ctx context.Context, weekKey string, stats entity.WeeklyStats) error {
	raw, err := msgpack.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key(weekKey), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisFunnelCache) Delete(ctx context.Context, weekKey string) error {
	if err := c.rdb.Del(ctx, c.key(weekKey)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *RedisFunnelCache) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
