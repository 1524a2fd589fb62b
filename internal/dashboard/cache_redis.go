package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"log/slog"

	"github.com/ana-yet/soulmate-server-side-code/internal/platform/redis"
)

const countersKey = "soulmate:public-counters"

// RedisCounterCache keeps the public counters in Redis for a TTL. Cache
// failures degrade to recomputation; they are logged, never surfaced.
type RedisCounterCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisCounterCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCounterCache {
	return &RedisCounterCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCounterCache) Get(ctx context.Context) (*PublicCounters, bool) {
	payload, err := c.client.Get(ctx, countersKey).Bytes()
	if err != nil {
		return nil, false
	}
	var counters PublicCounters
	if err := json.Unmarshal(payload, &counters); err != nil {
		c.logger.WarnContext(ctx, "corrupt counters cache entry", "error", err)
		return nil, false
	}
	return &counters, true
}

func (c *RedisCounterCache) Set(ctx context.Context, counters *PublicCounters) {
	payload, err := json.Marshal(counters)
	if err != nil {
		c.logger.WarnContext(ctx, "encode counters cache entry", "error", err)
		return
	}
	if err := c.client.Set(ctx, countersKey, payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "write counters cache entry", "error", err)
	}
}
