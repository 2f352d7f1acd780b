package ports

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store used as the shared tier behind
// the in-process caches. Implementations report failures as errors so
// callers can fall back to the backend.
type Cache interface {
	// Get returns the raw bytes for key. ok=false if not found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key with TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key; absence is not an error.
	Delete(ctx context.Context, key string) error
}

// CacheAdmin exposes inspection and purge of one in-process cache.
type CacheAdmin interface {
	Name() string
	Len() int
	Purge()
}
