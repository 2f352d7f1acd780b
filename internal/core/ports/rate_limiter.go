package ports

import (
	"context"
	"time"
)

// RateLimitRepository provides the atomic fixed-window counter behind rate
// limiting. Implementations must be safe for concurrent use.
type RateLimitRepository interface {
	// IncrementWindow increments the counter for clientKey in the current
	// window and makes it expire after ttl. It returns the updated count and
	// the start of the window.
	IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (count int, windowStart time.Time, err error)
}

// RateLimiterService limits requests per client (remote IP).
type RateLimiterService interface {
	// Allow consumes one request unit for clientKey. remaining is the number
	// of further requests permitted in the window; reset is when it ends.
	Allow(ctx context.Context, clientKey string) (allowed bool, remaining int, limit int, reset time.Time, err error)
}
