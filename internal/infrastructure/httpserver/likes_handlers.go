package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vjiki/music-ui/internal/core/domain/song"
	"github.com/vjiki/music-ui/internal/infrastructure/httpserver/helpers"
)

func (s *Server) getLikeStatus(c echo.Context) error {
	songID, err := helpers.RequiredParam(c, "songId")
	if err != nil {
		return err
	}
	userID, err := helpers.RequiredParam(c, "userId")
	if err != nil {
		return err
	}
	status, err := s.likes.Status(c.Request().Context(), songID, userID)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

func (s *Server) likeSong(c echo.Context) error {
	return s.react(c, song.ReactionLike)
}

func (s *Server) dislikeSong(c echo.Context) error {
	return s.react(c, song.ReactionDislike)
}

func (s *Server) react(c echo.Context, reaction song.Reaction) error {
	var req song.LikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := s.likes.React(c.Request().Context(), reaction, req); err != nil {
		return s.toHTTPError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
