// internal/common/cache/redis.go
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"lookup-relay/internal/common/config"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lookup:"

// LookupCache stores decoded upstream payloads keyed by command and arguments.
type LookupCache interface {
	Get(ctx context.Context, key string) (interface{}, bool, error)
	Set(ctx context.Context, key string, payload interface{}) error
}

// RedisCache wraps the Redis client
type RedisCache struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed cache.
func NewRedis(cfg config.CacheConfig) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return NewRedisWithClient(rdb, config.GetDuration(cfg.TTL))
}

func NewRedisWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, ttl: ttl}
}

// Ping tests the Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// Get returns the cached payload. A miss is (nil, false, nil).
func (c *RedisCache) Get(ctx context.Context, key string) (interface{}, bool, error) {
	val, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var payload interface{}
	if err := json.Unmarshal(val, &payload); err != nil {
		return nil, false, fmt.Errorf("decode cached payload: %w", err)
	}
	return payload, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return c.Client.Set(ctx, key, data, c.ttl).Err()
}

// Key hashes the command and its arguments so lookup subjects (emails, names) are not stored
// in clear text as Redis keys.
func Key(command string, args ...string) string {
	sum := sha256.Sum256([]byte(command + "\x00" + strings.Join(args, "\x00")))
	return keyPrefix + command + ":" + hex.EncodeToString(sum[:])
}
