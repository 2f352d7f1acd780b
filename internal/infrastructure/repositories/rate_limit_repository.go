package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
)

// RateLimitRedisRepository stores fixed-window request counters in Redis.
type RateLimitRedisRepository struct {
	r     redis.Cmdable
	clock clockwork.Clock
}

func NewRateLimitRedisRepository(r redis.Cmdable, clock clockwork.Clock) *RateLimitRedisRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RateLimitRedisRepository{r: r, clock: clock}
}

// IncrementWindow increments the counter of clientKey for the window that
// contains now.
func (repo *RateLimitRedisRepository) IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	windowStart := repo.clock.Now().Truncate(window)
	key := fmt.Sprintf("%s:%s:%d", keyPrefix, clientKey, windowStart.Unix())
	pipe := repo.r.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, windowStart, fmt.Errorf("rate limit counter %s: %w", key, err)
	}
	return int(incr.Val()), windowStart, nil
}
