// internal/common/cache/redis_test.go
package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookup-relay/internal/common/config"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestRedisCache_SetGet(t *testing.T) {
	_, c := setupRedis(t)
	ctx := context.Background()
	key := Key("email_lookup", "jane@example.com")

	_, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, key, map[string]interface{}{"breaches": float64(2)}))

	payload, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]interface{}{"breaches": float64(2)}, payload)
}

func TestRedisCache_Expires(t *testing.T) {
	mr, c := setupRedis(t)
	ctx := context.Background()
	key := Key("ip_lookup", "8.8.8.8")

	require.NoError(t, c.Set(ctx, key, "cached"))
	mr.FastForward(2 * time.Minute)

	_, found, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_CorruptValue(t *testing.T) {
	mr, c := setupRedis(t)
	key := Key("domain_lookup", "example.com")
	require.NoError(t, mr.Set(key, "{not json"))

	_, found, err := c.Get(context.Background(), key)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestRedisCache_Ping(t *testing.T) {
	mr, c := setupRedis(t)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestNewRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	c := NewRedis(config.CacheConfig{Enabled: true, Address: mr.Addr(), TTL: 1000})
	defer c.Close()
	assert.Equal(t, time.Second, c.ttl)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestKey(t *testing.T) {
	k1 := Key("email_lookup", "jane@example.com")
	k2 := Key("email_lookup", "john@example.com")
	k3 := Key("ssn_lookup", "john", "doe", "01-01-2000")

	assert.True(t, strings.HasPrefix(k1, "lookup:email_lookup:"))
	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, Key("email_lookup", "jane@example.com"))
	assert.NotContains(t, k3, "john")
	assert.NotEqual(t, Key("ssn_lookup", "ab", "c"), Key("ssn_lookup", "a", "bc"))
}
