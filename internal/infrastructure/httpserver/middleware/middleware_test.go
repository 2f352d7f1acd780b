package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vjiki/music-ui/internal/infrastructure/httpserver/helpers"
	"github.com/vjiki/music-ui/internal/infrastructure/httpserver/middleware"
	tmocks "github.com/vjiki/music-ui/test/mocks"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRateLimit_FailsOpenOnLimiterError(t *testing.T) {
	e := echo.New()
	limiter := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
		return false, 0, 0, time.Time{}, errors.New("redis down")
	}}
	h := middleware.NewRateLimitMiddleware(limiter, quietLogger()).Handler()(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/songs/u1", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_KeysByClientIP(t *testing.T) {
	e := echo.New()
	var keys []string
	limiter := &tmocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
		keys = append(keys, clientKey)
		return true, 9, 10, time.Now().Add(time.Minute), nil
	}}
	h := middleware.NewRateLimitMiddleware(limiter, quietLogger()).Handler()(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/songs/u1", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	require.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))

	rec = httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/metrics", nil), rec)))

	require.Equal(t, []string{"203.0.113.7"}, keys)
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	e := echo.New()
	h := middleware.NewRateLimitMiddleware(nil, nil).Handler()(okHandler)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/songs/u1", nil), rec)))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogging_StoresRequestID(t *testing.T) {
	e := echo.New()
	var seen string
	h := middleware.NewLoggingMiddleware(quietLogger()).RequestLogging()(func(c echo.Context) error {
		seen = helpers.GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/songs/u1", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))
	require.Equal(t, "abc", seen)
	id, ok := helpers.GetRequestIDRaw(c)
	require.True(t, ok)
	require.Equal(t, "abc", id)
}

func TestCollectHTTPMetrics_LabelsByRouteAndHTTPErrorCode(t *testing.T) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "t_requests_total"}, []string{"method", "endpoint", "status"})
	dur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "t_duration_seconds"}, []string{"method", "endpoint"})
	e := echo.New()
	h := middleware.NewMetricsMiddleware(total, dur).CollectHTTPMetrics()(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTooManyRequests, "slow down")
	})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/songs/u1", nil), httptest.NewRecorder())
	c.SetPath("/api/v1/songs/:userId")
	require.Error(t, h(c))

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/nowhere", nil), httptest.NewRecorder())
	require.Error(t, h(c))

	require.Equal(t, 1.0, testutil.ToFloat64(total.WithLabelValues("GET", "/api/v1/songs/:userId", "429")))
	require.Equal(t, 1.0, testutil.ToFloat64(total.WithLabelValues("GET", "unmatched", "429")))
}

func TestRequireAdminToken(t *testing.T) {
	cases := []struct {
		name       string
		configured string
		header     string
		wantCode   int
	}{
		{"valid token", "admin-secret", "Bearer admin-secret", http.StatusOK},
		{"missing header", "admin-secret", "", http.StatusUnauthorized},
		{"wrong token", "admin-secret", "Bearer admin-secre", http.StatusUnauthorized},
		{"basic scheme", "admin-secret", "Basic admin-secret", http.StatusUnauthorized},
		{"not configured", "", "Bearer anything", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			reached := false
			h := middleware.NewAdminMiddleware(tc.configured, quietLogger()).RequireAdminToken()(func(c echo.Context) error {
				reached = true
				return c.NoContent(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/cache", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			err := h(e.NewContext(req, rec))

			if tc.wantCode == http.StatusOK {
				require.NoError(t, err)
				require.True(t, reached)
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			require.Equal(t, tc.wantCode, he.Code)
			require.False(t, reached)
		})
	}
}
