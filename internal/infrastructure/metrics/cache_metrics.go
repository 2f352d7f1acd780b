package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Cache request outcomes.
const (
	OutcomeHit       = "hit"
	OutcomeCoalesced = "coalesced"
	OutcomeMiss      = "miss"
	OutcomeSharedHit = "shared_hit"
	OutcomeError     = "error"
)

// CacheMetrics exports fetchcache events to Prometheus.
type CacheMetrics struct {
	requests        *prometheus.CounterVec
	invalidations   *prometheus.CounterVec
	evictions       *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
}

// NewCacheMetrics creates the collectors and registers them on reg.
func NewCacheMetrics(reg prometheus.Registerer) (*CacheMetrics, error) {
	m := &CacheMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "musicui_fetchcache_requests_total",
				Help: "Cache lookups by resource and outcome",
			},
			[]string{"resource", "outcome"},
		),
		invalidations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "musicui_fetchcache_invalidations_total",
				Help: "Explicit cache invalidations by resource",
			},
			[]string{"resource"},
		),
		evictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "musicui_fetchcache_evictions_total",
				Help: "Results evicted by the entry cap, by resource",
			},
			[]string{"resource"},
		),
		upstreamLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "musicui_upstream_request_duration_seconds",
				Help:    "Backend call latency in seconds, by resource",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resource"},
		),
	}
	for _, c := range []prometheus.Collector{m.requests, m.invalidations, m.evictions, m.upstreamLatency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *CacheMetrics) Hit(resource string) {
	m.requests.WithLabelValues(resource, OutcomeHit).Inc()
}

func (m *CacheMetrics) Coalesced(resource string) {
	m.requests.WithLabelValues(resource, OutcomeCoalesced).Inc()
}

func (m *CacheMetrics) Miss(resource string) {
	m.requests.WithLabelValues(resource, OutcomeMiss).Inc()
}

func (m *CacheMetrics) SharedHit(resource string) {
	m.requests.WithLabelValues(resource, OutcomeSharedHit).Inc()
}

func (m *CacheMetrics) Error(resource string) {
	m.requests.WithLabelValues(resource, OutcomeError).Inc()
}

func (m *CacheMetrics) Invalidation(resource string) {
	m.invalidations.WithLabelValues(resource).Inc()
}

func (m *CacheMetrics) Eviction(resource string) {
	m.evictions.WithLabelValues(resource).Inc()
}

func (m *CacheMetrics) ObserveUpstream(resource string, d time.Duration) {
	m.upstreamLatency.WithLabelValues(resource).Observe(d.Seconds())
}
