package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	serviceName    = "music-ui-gateway"
	serviceVersion = "1.0.0"
	healthTimeout  = 2 * time.Second
)

// healthCheck reports 200 only when every dependency answers, and 503 with
// status "degraded" otherwise.
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	deps := make(map[string]string)
	overall := "healthy"
	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		if err := hc.Check(ctx); err != nil {
			deps[hc.Name()] = "unhealthy"
			overall = "degraded"
			if s.logger != nil {
				s.logger.WithError(err).WithField("dependency", hc.Name()).Warn("Health check failed")
			}
		} else {
			deps[hc.Name()] = "healthy"
		}
	}

	cached := 0
	for _, ca := range s.caches {
		cached += ca.Len()
	}

	health := map[string]interface{}{
		"status":         overall,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"version":        serviceVersion,
		"service":        serviceName,
		"dependencies":   deps,
		"cached_entries": cached,
	}
	code := http.StatusOK
	if overall != "healthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, health)
}
