package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/core/domain/chat"
	"github.com/vjiki/music-ui/internal/core/domain/playlist"
	"github.com/vjiki/music-ui/internal/core/domain/song"
	"github.com/vjiki/music-ui/internal/core/domain/story"
	"github.com/vjiki/music-ui/internal/core/domain/user"
	"github.com/vjiki/music-ui/internal/core/ports"
)

// LibraryRepositories groups the read repositories behind LibraryService.
type LibraryRepositories struct {
	Songs     ports.SongRepository
	Shorts    ports.ShortRepository
	Playlists ports.PlaylistRepository
	Stories   ports.StoryRepository
	Followers ports.FollowerRepository
	Chats     ports.ChatRepository
	Messages  ports.MessageRepository
}

// LibraryService answers the read side of the client. Signed-out users get
// empty results without a repository call.
type LibraryService struct {
	repos  LibraryRepositories
	logger *logrus.Logger
}

func NewLibraryService(repos LibraryRepositories, logger *logrus.Logger) *LibraryService {
	return &LibraryService{repos: repos, logger: logger}
}

func (s *LibraryService) Songs(ctx context.Context, userID string) ([]song.Song, error) {
	if user.IsGuest(userID) {
		return []song.Song{}, nil
	}
	return s.repos.Songs.ListByUser(ctx, userID)
}

func (s *LibraryService) Shorts(ctx context.Context, userID string) ([]song.Short, error) {
	if user.IsGuest(userID) {
		return []song.Short{}, nil
	}
	return s.repos.Shorts.ListByUser(ctx, userID)
}

func (s *LibraryService) Playlists(ctx context.Context, userID string) ([]playlist.Playlist, error) {
	if user.IsGuest(userID) {
		return []playlist.Playlist{}, nil
	}
	return s.repos.Playlists.ListByUser(ctx, userID)
}

// Playlist returns one playlist with its songs. An empty id is rejected.
func (s *LibraryService) Playlist(ctx context.Context, playlistID string) (*playlist.WithSongs, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: playlist id is required", ErrInvalidArgument)
	}
	return s.repos.Playlists.GetWithSongs(ctx, playlistID)
}

func (s *LibraryService) Stories(ctx context.Context, userID string) ([]story.Story, error) {
	if user.IsGuest(userID) {
		return []story.Story{}, nil
	}
	return s.repos.Stories.ListByUser(ctx, userID)
}

func (s *LibraryService) Followers(ctx context.Context, userID string) ([]user.Follower, error) {
	if user.IsGuest(userID) {
		return []user.Follower{}, nil
	}
	return s.repos.Followers.ListByUser(ctx, userID)
}

func (s *LibraryService) Chats(ctx context.Context, userID string) ([]chat.ListItem, error) {
	if user.IsGuest(userID) {
		return []chat.ListItem{}, nil
	}
	return s.repos.Chats.ListByUser(ctx, userID)
}

// Messages needs a chat and both participants; a guest participant or a
// missing chat id yields no messages.
func (s *LibraryService) Messages(ctx context.Context, chatID, userID1, userID2 string) ([]chat.Message, error) {
	if chatID == "" || user.IsGuest(userID1) || user.IsGuest(userID2) {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"chat_id":  chatID,
				"user_id1": userID1,
				"user_id2": userID2,
			}).Debug("Skipping message lookup for incomplete chat parameters")
		}
		return []chat.Message{}, nil
	}
	return s.repos.Messages.ListByChat(ctx, chatID, userID1, userID2)
}
