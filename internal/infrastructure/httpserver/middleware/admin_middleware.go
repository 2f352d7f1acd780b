package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/infrastructure/httpserver/helpers"
)

// AdminMiddleware guards operational endpoints with a static bearer token.
type AdminMiddleware struct {
	token  string
	logger *logrus.Logger
}

func NewAdminMiddleware(token string, logger *logrus.Logger) *AdminMiddleware {
	return &AdminMiddleware{token: token, logger: logger}
}

// RequireAdminToken answers 403 when no admin token is configured and 401
// when the request does not carry it.
func (m *AdminMiddleware) RequireAdminToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.token == "" {
				return echo.NewHTTPError(http.StatusForbidden, "admin endpoints are disabled")
			}
			token, err := helpers.GetBearerToken(c)
			if err != nil {
				return err
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(m.token)) != 1 {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{
						"path":   c.Request().URL.Path,
						"client": c.RealIP(),
					}).Warn("Rejected admin request")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid admin token")
			}
			return next(c)
		}
	}
}
