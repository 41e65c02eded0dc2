package cache

import (
	"context"
	"cylinder-route-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRoute = &domain.ExternalRouteData{
	Distance: 12.5,
	Duration: 30,
	WaypointData: []domain.Segment{
		{Distance: 5, Duration: 10},
		{Distance: 7.5, Duration: 20},
	},
	TrafficConditions: domain.TrafficModerate,
}

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisRouteCache(client, ttl), mr
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Hour)
	ctx := context.Background()

	got, err := c.Get(ctx, "route:abc")
	require.NoError(t, err)
	assert.Nil(t, got, "miss should return nil data")

	require.NoError(t, c.Put(ctx, "route:abc", sampleRoute))
	assert.True(t, mr.Exists("cylroute:route:abc"))

	got, err = c.Get(ctx, "route:abc")
	require.NoError(t, err)
	assert.Equal(t, sampleRoute, got)
}

func TestRedisRouteCacheExpires(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "route:ttl", sampleRoute))
	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "route:ttl")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisRouteCacheCorruptPayload(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Hour)
	require.NoError(t, mr.Set("cylroute:route:bad", "{not json"))

	_, err := c.Get(context.Background(), "route:bad")
	assert.Error(t, err)
}

func TestRedisRouteCacheRejectsEmptyKey(t *testing.T) {
	c, _ := newTestRedisCache(t, time.Hour)

	_, err := c.Get(context.Background(), " ")
	assert.Error(t, err)
	assert.Error(t, c.Put(context.Background(), "", sampleRoute))
}
