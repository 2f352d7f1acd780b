package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/core/domain/song"
	"github.com/vjiki/music-ui/internal/core/domain/user"
	"github.com/vjiki/music-ui/internal/core/ports"
)

type LikeService struct {
	repo   ports.SongLikeRepository
	logger *logrus.Logger
}

func NewLikeService(repo ports.SongLikeRepository, logger *logrus.Logger) *LikeService {
	return &LikeService{repo: repo, logger: logger}
}

// Status returns the like status; guests see an unreacted song.
func (s *LikeService) Status(ctx context.Context, songID, userID string) (*song.LikeStatus, error) {
	if songID == "" {
		return nil, fmt.Errorf("%w: song id is required", ErrInvalidArgument)
	}
	if user.IsGuest(userID) {
		return &song.LikeStatus{SongID: songID, UserID: userID}, nil
	}
	return s.repo.Status(ctx, songID, userID)
}

// React records a like or dislike. Guests cannot react.
func (s *LikeService) React(ctx context.Context, reaction song.Reaction, req song.LikeRequest) error {
	if !reaction.IsValid() {
		return fmt.Errorf("%w: unknown reaction %q", ErrInvalidArgument, reaction)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if user.IsGuest(req.UserID) {
		return fmt.Errorf("%w: guests cannot %s songs", ErrInvalidArgument, reaction)
	}

	var err error
	switch reaction {
	case song.ReactionLike:
		err = s.repo.Like(ctx, req)
	case song.ReactionDislike:
		err = s.repo.Dislike(ctx, req)
	}
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"song_id":  req.SongID,
			"user_id":  req.UserID,
			"reaction": reaction,
		}).Info("Song reaction recorded")
	}
	return nil
}
