package repositories

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/core/domain/playlist"
	"github.com/vjiki/music-ui/internal/core/domain/song"
	"github.com/vjiki/music-ui/internal/core/ports"
)

type PlaylistRepository struct {
	api    ports.APIClient
	logger *logrus.Logger
}

func NewPlaylistRepository(api ports.APIClient, logger *logrus.Logger) *PlaylistRepository {
	return &PlaylistRepository{api: api, logger: logger}
}

func (r *PlaylistRepository) ListByUser(ctx context.Context, userID string) ([]playlist.Playlist, error) {
	var out []playlist.Playlist
	if err := r.api.GetJSON(ctx, "/api/v1/playlists/user/"+url.PathEscape(userID), nil, &out); err != nil {
		if r.logger != nil {
			r.logger.WithField("user_id", userID).WithError(err).Error("api: failed to list playlists")
		}
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	if out == nil {
		out = []playlist.Playlist{}
	}
	return out, nil
}

func (r *PlaylistRepository) GetWithSongs(ctx context.Context, playlistID string) (*playlist.WithSongs, error) {
	var out playlist.WithSongs
	if err := r.api.GetJSON(ctx, "/api/v1/playlists/"+url.PathEscape(playlistID), nil, &out); err != nil {
		if r.logger != nil {
			r.logger.WithField("playlist_id", playlistID).WithError(err).Error("api: failed to get playlist")
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	if out.Songs == nil {
		out.Songs = []song.Song{}
	}
	return &out, nil
}
