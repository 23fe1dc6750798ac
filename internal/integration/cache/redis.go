// Package cache implements the cache adapter on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spendlens/backend/internal/application/adapter"
)

// redisCache implements the adapter.Cache interface with JSON-encoded values.
type redisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new cache backed by the given Redis client.
func NewRedisCache(client *redis.Client) adapter.Cache {
	return &redisCache{
		client: client,
	}
}

// Get unmarshals the cached value into dest. A missing key is (false, nil).
func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a JSON-encoded value with a TTL.
func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

// Del removes a key. Missing keys are not an error.
func (c *redisCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
