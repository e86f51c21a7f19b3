package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores JSON values in Redis with per-key TTLs.
type RedisCache struct {
	rc *redis.Client
}

// NewRedis opens a Redis client against addr. Timeouts bound every call so a
// slow cache degrades instead of hanging requests.
func NewRedis(addr, pass string, timeout time.Duration) *RedisCache {
	rc := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     pass,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
	return &RedisCache{rc: rc}
}

// Ping verifies connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rc.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string, value any) (bool, error) {
	s, err := c.rc.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(s), value); err != nil {
		return false, fmt.Errorf("redis get %s: decode: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis set %s: encode: %w", key, err)
	}
	if err := c.rc.Set(ctx, key, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.rc.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// DeletePrefix scans for prefix* and deletes matches in batches.
func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	for {
		keys, next, err := c.rc.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("redis scan %s*: %w", prefix, err)
		}
		if len(keys) > 0 {
			if err := c.rc.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del %s*: %w", prefix, err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.rc.Close()
}
