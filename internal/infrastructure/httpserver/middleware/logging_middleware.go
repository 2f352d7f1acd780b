package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/infrastructure/apiclient"
	"github.com/vjiki/music-ui/internal/infrastructure/httpserver/helpers"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// RequestLogging logs each request on completion and hands its request id to
// the request context so backend calls made on its behalf carry the same id.
// It must run after echo's RequestID middleware.
func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			reqID := helpers.GetRequestID(c)
			if reqID != "" {
				helpers.SetRequestID(c, reqID)
				req := c.Request()
				c.SetRequest(req.WithContext(apiclient.WithRequestID(req.Context(), reqID)))
			}

			err := next(c)

			if m.logger != nil {
				status := c.Response().Status
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
				entry := m.logger.WithFields(logrus.Fields{
					"method":     c.Request().Method,
					"path":       c.Path(),
					"status":     status,
					"latency_ms": time.Since(start).Milliseconds(),
					"request_id": reqID,
					"client":     c.RealIP(),
				})
				if status >= 500 {
					entry.WithError(err).Warn("request failed")
				} else {
					entry.Debug("request served")
				}
			}
			return err
		}
	}
}
