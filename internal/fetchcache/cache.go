// Package fetchcache coalesces concurrent reads of the same backend resource
// into one call and keeps each successful result for a fixed time window.
//
// A Cache is built per resource kind. Within one Cache a key is either
// served from a fresh stored result, joined to the call already in flight,
// or fetched. Failures are never stored.
package fetchcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/vjiki/music-ui/internal/core/ports"
)

var (
	// ErrEmptyKey is returned when a parameter set maps to an empty key.
	ErrEmptyKey = errors.New("fetchcache: empty key")
	// ErrFetchPanicked wraps a panic raised by a Fetcher. The panic is
	// reported to every waiter of the call instead of crashing the process.
	ErrFetchPanicked = errors.New("fetchcache: fetcher panicked")
)

// sharedEntry is the shared-tier payload. StoredAt is the time of the
// backend call, so a replica reading it keeps the original expiry.
type sharedEntry[T any] struct {
	Value    T         `json:"value"`
	StoredAt time.Time `json:"storedAt"`
}

// Fetcher performs the backend call for one parameter set.
type Fetcher[P, T any] func(ctx context.Context, params P) (T, error)

// Options tunes a Cache. The zero value is usable: real clock, no metrics,
// no logging, unbounded in-memory store and no shared tier.
type Options struct {
	Clock clockwork.Clock

	// MaxEntries caps stored results per Cache; 0 means unbounded.
	MaxEntries int

	Metrics Metrics
	Logger  *logrus.Logger

	// Shared is an optional second tier consulted on a local miss and
	// filled after a successful fetch. Errors from it are logged and ignored.
	Shared ports.Cache
}

// Cache is a keyed, coalescing, time-bounded result cache over one Fetcher.
type Cache[P, T any] struct {
	name    string
	ttl     time.Duration
	keyOf   func(P) string
	fetch   Fetcher[P, T]
	clock   clockwork.Clock
	metrics Metrics
	logger  *logrus.Logger
	shared  ports.Cache

	group singleflight.Group

	mu      sync.Mutex
	results resultStore[T]
	flights map[string]*flight
}

// flight tracks the backend call currently registered for a key. A flight
// marked stale still answers its waiters but never stores its result.
type flight struct {
	stale bool
}

// New builds a Cache. name labels logs and metrics; keyOf maps parameters
// to the cache key and must be deterministic.
func New[P, T any](name string, ttl time.Duration, keyOf func(P) string, fetch Fetcher[P, T], opts Options) (*Cache[P, T], error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("fetchcache %s: ttl must be positive, got %s", name, ttl)
	}
	if keyOf == nil || fetch == nil {
		return nil, fmt.Errorf("fetchcache %s: key builder and fetcher are required", name)
	}
	c := &Cache[P, T]{
		name:    name,
		ttl:     ttl,
		keyOf:   keyOf,
		fetch:   fetch,
		clock:   opts.Clock,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		shared:  opts.Shared,
		flights: make(map[string]*flight),
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.metrics == nil {
		c.metrics = NoopMetrics{}
	}
	if opts.MaxEntries > 0 {
		s, err := newLRUStore[T](opts.MaxEntries)
		if err != nil {
			return nil, fmt.Errorf("fetchcache %s: %w", name, err)
		}
		c.results = s
	} else {
		c.results = newMapStore[T]()
	}
	return c, nil
}

// Name returns the resource label of the cache.
func (c *Cache[P, T]) Name() string { return c.name }

// TTL returns the freshness window of stored results.
func (c *Cache[P, T]) TTL() time.Duration { return c.ttl }

// Get returns the result for params. A fresh stored result is returned
// without a backend call; otherwise the caller shares the single call in
// flight for the key. ctx bounds only this caller's wait: the shared call
// keeps running for the other waiters.
func (c *Cache[P, T]) Get(ctx context.Context, params P) (T, error) {
	var zero T
	key := c.keyOf(params)
	if key == "" {
		return zero, ErrEmptyKey
	}

	c.mu.Lock()
	v, ok := c.lookupLocked(key)
	c.mu.Unlock()
	if ok {
		c.metrics.Hit(c.name)
		return v, nil
	}

	led := false
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		led = true
		return c.load(fetchCtx, key, params)
	})

	select {
	case res := <-ch:
		if !led {
			c.metrics.Coalesced(c.name)
		}
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// load runs once per flight. It re-checks the store because a previous
// flight may have completed between the caller's lookup and this call.
func (c *Cache[P, T]) load(ctx context.Context, key string, params P) (T, error) {
	var zero T

	c.mu.Lock()
	if v, ok := c.lookupLocked(key); ok {
		c.mu.Unlock()
		c.metrics.Hit(c.name)
		return v, nil
	}
	f := &flight{}
	c.flights[key] = f
	c.mu.Unlock()

	if v, storedAt, ok := c.sharedGet(ctx, key); ok {
		c.settle(key, f, v, storedAt)
		c.metrics.SharedHit(c.name)
		return v, nil
	}

	start := c.clock.Now()
	v, err := c.callFetch(ctx, params)
	c.metrics.ObserveUpstream(c.name, c.clock.Since(start))
	if err != nil {
		c.mu.Lock()
		if c.flights[key] == f {
			delete(c.flights, key)
		}
		c.mu.Unlock()
		c.metrics.Error(c.name)
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{
				"resource": c.name,
				"key":      key,
			}).WithError(err).Warn("Backend fetch failed")
		}
		return zero, err
	}

	if storedAt, ok := c.settle(key, f, v, c.clock.Now()); ok {
		c.sharedSet(ctx, key, v, storedAt)
	}
	c.metrics.Miss(c.name)
	return v, nil
}

// callFetch turns a Fetcher panic into an error so the flight settles like
// any other failure.
func (c *Cache[P, T]) callFetch(ctx context.Context, params P) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFetchPanicked, r)
		}
	}()
	return c.fetch(ctx, params)
}

// settle stores v as fetched at storedAt unless the flight was invalidated
// while running, then releases the flight registration. It reports the
// stored timestamp and whether v was stored.
func (c *Cache[P, T]) settle(key string, f *flight, v T, storedAt time.Time) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := false
	if !f.stale {
		c.storeLocked(key, v, storedAt)
		stored = true
	}
	if c.flights[key] == f {
		delete(c.flights, key)
	}
	return storedAt, stored
}

func (c *Cache[P, T]) lookupLocked(key string) (T, bool) {
	var zero T
	e, ok := c.results.get(key)
	if !ok {
		return zero, false
	}
	if c.clock.Since(e.storedAt) >= c.ttl {
		c.results.remove(key)
		return zero, false
	}
	return e.value, true
}

// storeLocked keeps v until storedAt+ttl. storedAt is earlier than now when
// the value came from the shared tier.
func (c *Cache[P, T]) storeLocked(key string, v T, storedAt time.Time) {
	e := &entry[T]{value: v, storedAt: storedAt}
	if c.results.add(key, e) {
		c.metrics.Eviction(c.name)
	}
	e.timer = c.clock.AfterFunc(c.ttl-c.clock.Since(storedAt), func() { c.expire(key, e) })
}

// expire drops key only if it still holds the entry the timer was armed
// for; a newer result for the same key keeps its own timer.
func (c *Cache[P, T]) expire(key string, e *entry[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.results.get(key); ok && cur == e {
		c.results.remove(key)
	}
}

// Invalidate removes any stored result for params and detaches the call in
// flight, so the next Get issues a fresh backend call. Callers already
// waiting on the detached call still receive its result.
func (c *Cache[P, T]) Invalidate(ctx context.Context, params P) {
	key := c.keyOf(params)
	if key == "" {
		return
	}
	c.mu.Lock()
	c.results.remove(key)
	if f, ok := c.flights[key]; ok {
		f.stale = true
		delete(c.flights, key)
	}
	c.mu.Unlock()
	c.group.Forget(key)
	c.metrics.Invalidation(c.name)

	if c.shared != nil {
		if err := c.shared.Delete(ctx, c.sharedKey(key)); err != nil && c.logger != nil {
			c.logger.WithFields(logrus.Fields{
				"resource": c.name,
				"key":      key,
			}).WithError(err).Warn("Shared cache delete failed")
		}
	}
}

// Purge drops every stored result and detaches every call in flight. The
// shared tier is left to expire on its own.
func (c *Cache[P, T]) Purge() {
	c.mu.Lock()
	c.results.purge()
	detached := make([]string, 0, len(c.flights))
	for k, f := range c.flights {
		f.stale = true
		detached = append(detached, k)
	}
	c.flights = make(map[string]*flight)
	c.mu.Unlock()
	for _, k := range detached {
		c.group.Forget(k)
	}
}

// Len returns the number of stored results, fresh or not yet cleaned up.
func (c *Cache[P, T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results.len()
}

func (c *Cache[P, T]) sharedKey(key string) string {
	return c.name + ":" + key
}

// sharedGet returns a shared-tier value that is still fresh under this
// cache's TTL, measured from the original backend call.
func (c *Cache[P, T]) sharedGet(ctx context.Context, key string) (T, time.Time, bool) {
	var zero T
	if c.shared == nil {
		return zero, time.Time{}, false
	}
	b, ok, err := c.shared.Get(ctx, c.sharedKey(key))
	if err != nil {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{
				"resource": c.name,
				"key":      key,
			}).WithError(err).Warn("Shared cache read failed")
		}
		return zero, time.Time{}, false
	}
	if !ok {
		return zero, time.Time{}, false
	}
	var se sharedEntry[T]
	if err := json.Unmarshal(b, &se); err != nil || se.StoredAt.IsZero() {
		return zero, time.Time{}, false
	}
	if c.clock.Since(se.StoredAt) >= c.ttl {
		return zero, time.Time{}, false
	}
	return se.Value, se.StoredAt, true
}

// sharedSet writes v with the time left in its window, so the shared entry
// never outlives the local one.
func (c *Cache[P, T]) sharedSet(ctx context.Context, key string, v T, storedAt time.Time) {
	if c.shared == nil {
		return
	}
	remaining := c.ttl - c.clock.Since(storedAt)
	if remaining <= 0 {
		return
	}
	b, err := json.Marshal(sharedEntry[T]{Value: v, StoredAt: storedAt})
	if err != nil {
		return
	}
	if err := c.shared.Set(ctx, c.sharedKey(key), b, remaining); err != nil && c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"resource": c.name,
			"key":      key,
		}).WithError(err).Warn("Shared cache write failed")
	}
}
