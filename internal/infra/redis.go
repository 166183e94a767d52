package infra

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis creates and validates a go-redis client connection. An empty URL
// means the deployment runs without Redis and yields a nil client.
func NewRedis(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// RedisCache stores report snapshots as JSON under a common key prefix.
// Every Redis call goes through a circuit breaker.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
	cb     *CircuitBreaker
}

func NewRedisCache(rdb *redis.Client, prefix string, cb *CircuitBreaker) *RedisCache {
	if cb == nil {
		cb = NewCircuitBreaker(DefaultCBConfig())
	}
	return &RedisCache{rdb: rdb, prefix: prefix, cb: cb}
}

// State exposes the breaker state for the health endpoint.
func (c *RedisCache) State() CBState { return c.cb.State() }

// Get decodes the cached value into dest. A miss returns false with no error.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	var raw []byte
	err := c.cb.Execute(func() error {
		var err error
		raw, err = c.rdb.Get(ctx, c.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	})
	if err != nil || raw == nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.cb.Execute(func() error {
		return c.rdb.Set(ctx, c.prefix+key, raw, ttl).Err()
	})
}

// Invalidate drops every key under the prefix. Called after writes that
// change report figures.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.cb.Execute(func() error {
		iter := c.rdb.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return err
		}
		if len(keys) == 0 {
			return nil
		}
		return c.rdb.Del(ctx, keys...).Err()
	})
}
