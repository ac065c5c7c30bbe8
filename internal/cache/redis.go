package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PratikDhanave/enrichment-analytics-service/internal/analytics"
)

// DefaultTTL matches how long the dashboard keeps a fetched snapshot.
const DefaultTTL = 10 * time.Second

// RedisCache stores analytics snapshots in Redis with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ analytics.Cache = (*RedisCache)(nil)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Prefix   string
}

// NewRedisCache connects and pings Redis.
func NewRedisCache(ctx context.Context, opts Options) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newRedisCache(client, opts), nil
}

func newRedisCache(client *redis.Client, opts Options) *RedisCache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "enrichment-analytics:"
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

// Get returns ok=false on a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get from cache: %w", err)
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in cache: %w", err)
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
