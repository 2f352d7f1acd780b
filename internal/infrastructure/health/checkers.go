package health

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/vjiki/music-ui/internal/core/ports"
)

// Pinger is anything that can report backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// upstreamHealthChecker probes one music backend.
type upstreamHealthChecker struct {
	name string
	p    Pinger
}

func (u *upstreamHealthChecker) Name() string                    { return u.name }
func (u *upstreamHealthChecker) Check(ctx context.Context) error { return u.p.Ping(ctx) }

// redisHealthChecker wraps the redis client for health checks.
type redisHealthChecker struct{ client redis.Cmdable }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// NewUpstreamHealthChecker creates a health checker for a backend API.
func NewUpstreamHealthChecker(name string, p Pinger) ports.HealthChecker {
	return &upstreamHealthChecker{name: name, p: p}
}

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client redis.Cmdable) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}
