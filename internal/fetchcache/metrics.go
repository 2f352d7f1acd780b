package fetchcache

import "time"

// Metrics receives one event per cache decision. Implementations must be
// safe for concurrent use; the resource argument is the cache name.
type Metrics interface {
	// Hit is a fresh result served from memory.
	Hit(resource string)

	// Coalesced is a caller that waited on another caller's backend call.
	Coalesced(resource string)

	// Miss is a backend call that succeeded and was cached.
	Miss(resource string)

	// SharedHit is a miss answered by the shared second-tier cache.
	SharedHit(resource string)

	// Error is a backend call that failed.
	Error(resource string)

	Invalidation(resource string)
	Eviction(resource string)

	// ObserveUpstream records how long a backend call took.
	ObserveUpstream(resource string, d time.Duration)
}

// NoopMetrics discards every event. It is the default when no Metrics is
// configured so call sites never check for nil.
type NoopMetrics struct{}

func (NoopMetrics) Hit(string)                            {}
func (NoopMetrics) Coalesced(string)                      {}
func (NoopMetrics) Miss(string)                           {}
func (NoopMetrics) SharedHit(string)                      {}
func (NoopMetrics) Error(string)                          {}
func (NoopMetrics) Invalidation(string)                   {}
func (NoopMetrics) Eviction(string)                       {}
func (NoopMetrics) ObserveUpstream(string, time.Duration) {}
