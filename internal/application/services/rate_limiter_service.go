package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/core/ports"
)

// RateLimiterService applies one fixed-window policy to every client.
type RateLimiterService struct {
	repo            ports.RateLimitRepository
	limit           int
	burstMultiplier float64
	window          time.Duration
	keyPrefix       string
	logger          *logrus.Logger
}

// RateLimiterConfig groups configuration parameters for the rate limiter.
type RateLimiterConfig struct {
	DefaultRequestsPerMinute int
	BurstMultiplier          float64
	Window                   time.Duration
	KeyPrefix                string
}

func NewRateLimiterService(repo ports.RateLimitRepository, cfg *RateLimiterConfig, logger *logrus.Logger) *RateLimiterService {
	s := &RateLimiterService{
		repo:            repo,
		limit:           600,
		burstMultiplier: 2.0,
		window:          time.Minute,
		keyPrefix:       "ratelimit:client",
		logger:          logger,
	}
	if cfg != nil {
		if cfg.DefaultRequestsPerMinute > 0 {
			s.limit = cfg.DefaultRequestsPerMinute
		}
		if cfg.BurstMultiplier > 0 {
			s.burstMultiplier = cfg.BurstMultiplier
		}
		if cfg.Window > 0 {
			s.window = cfg.Window
		}
		if cfg.KeyPrefix != "" {
			s.keyPrefix = cfg.KeyPrefix
		}
	}
	return s
}

// Allow fails open: a storage error admits the request and is returned for
// logging.
func (s *RateLimiterService) Allow(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
	ttl := s.window * 2 // retain overlap window
	count, windowStart, err := s.repo.IncrementWindow(ctx, clientKey, s.window, s.keyPrefix, ttl)
	reset := windowStart.Add(s.window)
	burst := int(float64(s.limit) * s.burstMultiplier)
	if err != nil {
		if s.logger != nil {
			s.logger.WithField("client", clientKey).WithError(err).Error("rate limiter: failed to increment window")
		}
		return true, burst, s.limit, reset, err
	}
	if count > burst {
		return false, 0, s.limit, reset, nil
	}
	return true, burst - count, s.limit, reset, nil
}
