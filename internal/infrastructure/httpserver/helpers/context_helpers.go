package helpers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// GetRequestID returns the correlation id of the current request: the one
// stored on the context, else the id echo's RequestID middleware put on the
// response, else whatever the caller sent.
func GetRequestID(c echo.Context) string {
	if id, ok := GetRequestIDRaw(c); ok {
		return id
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// GetClientKey identifies the caller for rate limiting.
func GetClientKey(c echo.Context) string {
	if key, ok := GetClientKeyRaw(c); ok {
		return key
	}
	return c.RealIP()
}

// RequiredParam returns a trimmed path parameter or a 400.
func RequiredParam(c echo.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Param(name))
	if v == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, name+" is required")
	}
	return v, nil
}

// GetBearerToken extracts the token of an "Authorization: Bearer" header.
func GetBearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "empty token")
	}
	return token, nil
}
