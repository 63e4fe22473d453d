package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vmakarenko/storefront-api/internal/logging"
)

const (
	KeySummary     = "analytics:summary"
	KeyBestSelling = "analytics:best_selling"
	KeySalesReport = "analytics:sales_report:%s:%s"
	KeyUserStats   = "analytics:user_stats"
	KeyOrderStatus = "analytics:order_status"
)

// DefaultTTL keeps dashboard reads fresh enough without hammering the store.
const DefaultTTL = 5 * time.Minute

// Cache is a JSON cache-aside wrapper. A nil *Cache (or nil client) is a
// no-op, so callers never branch on whether redis is configured.
type Cache struct {
	R   *redis.Client
	TTL time.Duration
}

func New(addr string) *Cache {
	if addr == "" {
		return nil
	}
	r := redis.NewClient(&redis.Options{Addr: addr})
	return &Cache{R: r, TTL: DefaultTTL}
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.R == nil {
		return false
	}
	raw, err := c.R.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logging.FromContext(ctx).Warn("cache decode failed", "key", key, "error", err)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil || c.R == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.R.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		logging.FromContext(ctx).Warn("cache set failed", "key", key, "error", err)
	}
}

func (c *Cache) Close() error {
	if c == nil || c.R == nil {
		return nil
	}
	return c.R.Close()
}
