package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/application/services"
	"github.com/vjiki/music-ui/internal/fetchcache"
	"github.com/vjiki/music-ui/internal/infrastructure/apiclient"
)

// toHTTPError maps service and backend failures to gateway responses.
// Backend details stay in the log.
func (s *Server) toHTTPError(c echo.Context, err error) error {
	var code int
	var msg string
	var se *apiclient.StatusError
	switch {
	case errors.Is(err, services.ErrInvalidArgument), errors.Is(err, fetchcache.ErrEmptyKey):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apiclient.IsNotFound(err):
		code, msg = http.StatusNotFound, "not found"
	case errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized:
		code, msg = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, context.DeadlineExceeded):
		code, msg = http.StatusGatewayTimeout, "backend timed out"
	case errors.Is(err, context.Canceled):
		code, msg = http.StatusServiceUnavailable, "request cancelled"
	default:
		code, msg = http.StatusBadGateway, "backend request failed"
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"path":   c.Path(),
			"status": code,
		}).WithError(err).Warn("Backend call failed")
	}
	return echo.NewHTTPError(code, msg)
}
