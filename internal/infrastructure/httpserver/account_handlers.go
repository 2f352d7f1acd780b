package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vjiki/music-ui/internal/core/domain/user"
	"github.com/vjiki/music-ui/internal/infrastructure/httpserver/helpers"
)

// authenticate answers 200 for both accepted and rejected credentials; the
// body's authenticated flag tells them apart.
func (s *Server) authenticate(c echo.Context) error {
	var req user.AuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	resp, err := s.accounts.Authenticate(c.Request().Context(), req)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getUser(c echo.Context) error {
	userID, err := helpers.RequiredParam(c, "userId")
	if err != nil {
		return err
	}
	u, err := s.accounts.Profile(c.Request().Context(), userID)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
