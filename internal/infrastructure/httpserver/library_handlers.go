package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vjiki/music-ui/internal/infrastructure/httpserver/helpers"
)

// Library handlers. Every read goes through the caching service, so
// concurrent clients asking for the same resource share one backend call.

func (s *Server) listSongs(c echo.Context) error {
	userID, err := helpers.RequiredParam(c, "userId")
	if err != nil {
		return err
	}
	songs, err := s.library.Songs(c.Request().Context(), userID)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, songs)
}

func (s *Server) listShorts(c echo.Context) error {
	userID, err := helpers.RequiredParam(c, "userId")
	if err != nil {
		return err
	}
	shorts, err := s.library.Shorts(c.Request().Context(), userID)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, shorts)
}

func (s *Server) listPlaylists(c echo.Context) error {
	userID, err := helpers.RequiredParam(c, "userId")
	if err != nil {
		return err
	}
	playlists, err := s.library.Playlists(c.Request().Context(), userID)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, playlists)
}

func (s *Server) getPlaylist(c echo.Context) error {
	playlistID, err := helpers.RequiredParam(c, "playlistId")
	if err != nil {
		return err
	}
	p, err := s.library.Playlist(c.Request().Context(), playlistID)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) listStories(c echo.Context) error {
	userID, err := helpers.RequiredParam(c, "userId")
	if err != nil {
		return err
	}
	stories, err := s.library.Stories(c.Request().Context(), userID)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, stories)
}

func (s *Server) listFollowers(c echo.Context) error {
	userID, err := helpers.RequiredParam(c, "userId")
	if err != nil {
		return err
	}
	followers, err := s.library.Followers(c.Request().Context(), userID)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, followers)
}

func (s *Server) listChats(c echo.Context) error {
	userID, err := helpers.RequiredParam(c, "userId")
	if err != nil {
		return err
	}
	chats, err := s.library.Chats(c.Request().Context(), userID)
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, chats)
}

// listMessages takes the two participants as userId1 and userId2 query
// parameters; their order does not matter.
func (s *Server) listMessages(c echo.Context) error {
	chatID, err := helpers.RequiredParam(c, "chatId")
	if err != nil {
		return err
	}
	messages, err := s.library.Messages(c.Request().Context(), chatID, c.QueryParam("userId1"), c.QueryParam("userId2"))
	if err != nil {
		return s.toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, messages)
}
