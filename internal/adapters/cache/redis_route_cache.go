package cache

import (
	"context"
	"cylinder-route-service/internal/domain"
	"cylinder-route-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRouteCache stores external route data as JSON with a TTL.
// Route data goes stale as road conditions change, so entries always expire.
type RedisRouteCache struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

func NewRedisRouteCache(client redis.Cmdable, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &RedisRouteCache{client: client, ttl: ttl, prefix: "cylroute:"}
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ *domain.ExternalRouteData, err error) {
	defer obs.Time(ctx, "route.cache.redis.Get")(&err)

	if c.client == nil {
		return nil, errors.New("route cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("get route cache: key must not be empty")
	}

	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route cache key=%q: %w", key, err)
	}

	var data domain.ExternalRouteData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("get route cache key=%q: decode: %w", key, err)
	}

	return &data, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, data *domain.ExternalRouteData) error {
	if c.client == nil {
		return errors.New("route cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("put route cache: key must not be empty")
	}
	if data == nil {
		return nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("put route cache key=%q: encode: %w", key, err)
	}

	if err := c.client.Set(ctx, c.prefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache key=%q: %w", key, err)
	}

	return nil
}
