package repositories

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/core/domain/song"
	"github.com/vjiki/music-ui/internal/core/ports"
)

// SongRepository reads a user's songs from the primary backend.
type SongRepository struct {
	api    ports.APIClient
	logger *logrus.Logger
}

func NewSongRepository(api ports.APIClient, logger *logrus.Logger) *SongRepository {
	return &SongRepository{api: api, logger: logger}
}

func (r *SongRepository) ListByUser(ctx context.Context, userID string) ([]song.Song, error) {
	var out []song.Song
	if err := r.api.GetJSON(ctx, "/api/v1/songs/"+url.PathEscape(userID), nil, &out); err != nil {
		if r.logger != nil {
			r.logger.WithField("user_id", userID).WithError(err).Error("api: failed to list songs")
		}
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	if out == nil {
		out = []song.Song{}
	}
	return out, nil
}

// ShortRepository reads a user's shorts from the social backend.
type ShortRepository struct {
	api    ports.APIClient
	logger *logrus.Logger
}

func NewShortRepository(api ports.APIClient, logger *logrus.Logger) *ShortRepository {
	return &ShortRepository{api: api, logger: logger}
}

func (r *ShortRepository) ListByUser(ctx context.Context, userID string) ([]song.Short, error) {
	var out []song.Short
	if err := r.api.GetJSON(ctx, "/api/v1/shorts/"+url.PathEscape(userID), nil, &out); err != nil {
		if r.logger != nil {
			r.logger.WithField("user_id", userID).WithError(err).Error("api: failed to list shorts")
		}
		return nil, fmt.Errorf("failed to list shorts: %w", err)
	}
	if out == nil {
		out = []song.Short{}
	}
	return out, nil
}

// SongLikeRepository reads and writes song reactions on the social backend.
type SongLikeRepository struct {
	api    ports.APIClient
	logger *logrus.Logger
}

func NewSongLikeRepository(api ports.APIClient, logger *logrus.Logger) *SongLikeRepository {
	return &SongLikeRepository{api: api, logger: logger}
}

func (r *SongLikeRepository) Status(ctx context.Context, songID, userID string) (*song.LikeStatus, error) {
	var out song.LikeStatus
	path := fmt.Sprintf("/api/v1/song-likes/song/%s/user/%s", url.PathEscape(songID), url.PathEscape(userID))
	if err := r.api.GetJSON(ctx, path, nil, &out); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"song_id": songID, "user_id": userID}).WithError(err).Error("api: failed to get like status")
		}
		return nil, fmt.Errorf("failed to get like status: %w", err)
	}
	if out.SongID == "" {
		out.SongID = songID
	}
	if out.UserID == "" {
		out.UserID = userID
	}
	return &out, nil
}

func (r *SongLikeRepository) Like(ctx context.Context, req song.LikeRequest) error {
	return r.react(ctx, song.ReactionLike, req)
}

func (r *SongLikeRepository) Dislike(ctx context.Context, req song.LikeRequest) error {
	return r.react(ctx, song.ReactionDislike, req)
}

func (r *SongLikeRepository) react(ctx context.Context, reaction song.Reaction, req song.LikeRequest) error {
	if err := r.api.PostJSON(ctx, "/api/v1/song-likes/"+string(reaction), req, nil); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{
				"song_id":  req.SongID,
				"user_id":  req.UserID,
				"reaction": reaction,
			}).WithError(err).Error("api: failed to record reaction")
		}
		return fmt.Errorf("failed to %s song: %w", reaction, err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{
			"song_id":  req.SongID,
			"user_id":  req.UserID,
			"reaction": reaction,
		}).Info("api: reaction recorded")
	}
	return nil
}
