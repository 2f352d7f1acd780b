package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SharedCache implements ports.Cache on Redis. Keys are namespaced under
// prefix so several deployments can share one database.
type SharedCache struct {
	r      redis.Cmdable
	prefix string
}

func NewSharedCache(r redis.Cmdable, prefix string) *SharedCache {
	return &SharedCache{r: r, prefix: prefix}
}

func (c *SharedCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

// Get returns ok=false without error when the key is absent.
func (c *SharedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.r.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (c *SharedCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.r.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *SharedCache) Delete(ctx context.Context, key string) error {
	if err := c.r.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
