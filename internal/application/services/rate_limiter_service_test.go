package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vjiki/music-ui/internal/application/services"
	tmocks "github.com/vjiki/music-ui/test/mocks"
)

func TestRateLimiterService_AllowsUntilBurst(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	count := 0
	repo := &tmocks.RateLimitRepositoryMock{IncrementWindowFn: func(_ context.Context, key string, window time.Duration, prefix string, ttl time.Duration) (int, time.Time, error) {
		require.Equal(t, "10.0.0.1", key)
		require.Equal(t, "rl", prefix)
		require.Equal(t, 2*window, ttl)
		count++
		return count, start, nil
	}}
	svc := services.NewRateLimiterService(repo, &services.RateLimiterConfig{
		DefaultRequestsPerMinute: 2,
		BurstMultiplier:          1.5,
		Window:                   time.Minute,
		KeyPrefix:                "rl",
	}, nil)
	ctx := context.Background()

	allowed, remaining, limit, reset, err := svc.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.True(t, allowed)
	require.Equal(t, 2, remaining)
	require.Equal(t, 2, limit)
	require.Equal(t, start.Add(time.Minute), reset)

	for i := 0; i < 2; i++ {
		allowed, _, _, _, err = svc.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
	}
	require.True(t, allowed)

	allowed, remaining, _, _, err = svc.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, allowed)
	require.Zero(t, remaining)
}

func TestRateLimiterService_FailsOpen(t *testing.T) {
	repo := &tmocks.RateLimitRepositoryMock{IncrementWindowFn: func(context.Context, string, time.Duration, string, time.Duration) (int, time.Time, error) {
		return 0, time.Time{}, errors.New("redis down")
	}}
	svc := services.NewRateLimiterService(repo, nil, nil)

	allowed, remaining, limit, _, err := svc.Allow(context.Background(), "10.0.0.1")
	require.Error(t, err)
	require.True(t, allowed)
	require.Equal(t, 600, limit)
	require.Equal(t, 1200, remaining)
}
