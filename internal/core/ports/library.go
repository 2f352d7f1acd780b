package ports

import (
	"context"

	"github.com/vjiki/music-ui/internal/core/domain/chat"
	"github.com/vjiki/music-ui/internal/core/domain/playlist"
	"github.com/vjiki/music-ui/internal/core/domain/song"
	"github.com/vjiki/music-ui/internal/core/domain/story"
	"github.com/vjiki/music-ui/internal/core/domain/user"
)

// Repositories return shared values when cached; callers must not mutate
// returned slices or structs.

type SongRepository interface {
	ListByUser(ctx context.Context, userID string) ([]song.Song, error)
}

type ShortRepository interface {
	ListByUser(ctx context.Context, userID string) ([]song.Short, error)
}

type PlaylistRepository interface {
	ListByUser(ctx context.Context, userID string) ([]playlist.Playlist, error)
	GetWithSongs(ctx context.Context, playlistID string) (*playlist.WithSongs, error)
}

type StoryRepository interface {
	ListByUser(ctx context.Context, userID string) ([]story.Story, error)
}

type FollowerRepository interface {
	ListByUser(ctx context.Context, userID string) ([]user.Follower, error)
}

type ChatRepository interface {
	ListByUser(ctx context.Context, userID string) ([]chat.ListItem, error)
}

// MessageRepository lists the non-deleted messages of a chat between two
// participants.
type MessageRepository interface {
	ListByChat(ctx context.Context, chatID, userID1, userID2 string) ([]chat.Message, error)
}

// SongLikeRepository reads like status and performs the like/dislike
// writes. Writes are never cached.
type SongLikeRepository interface {
	Status(ctx context.Context, songID, userID string) (*song.LikeStatus, error)
	Like(ctx context.Context, req song.LikeRequest) error
	Dislike(ctx context.Context, req song.LikeRequest) error
}

type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*user.User, error)
	Authenticate(ctx context.Context, req user.AuthRequest) (*user.AuthResponse, error)
}

// LibraryService serves the read side of the client. Guest or empty ids
// yield empty results without reaching a repository.
type LibraryService interface {
	Songs(ctx context.Context, userID string) ([]song.Song, error)
	Shorts(ctx context.Context, userID string) ([]song.Short, error)
	Playlists(ctx context.Context, userID string) ([]playlist.Playlist, error)
	Playlist(ctx context.Context, playlistID string) (*playlist.WithSongs, error)
	Stories(ctx context.Context, userID string) ([]story.Story, error)
	Followers(ctx context.Context, userID string) ([]user.Follower, error)
	Chats(ctx context.Context, userID string) ([]chat.ListItem, error)
	Messages(ctx context.Context, chatID, userID1, userID2 string) ([]chat.Message, error)
}

type LikeService interface {
	Status(ctx context.Context, songID, userID string) (*song.LikeStatus, error)
	React(ctx context.Context, reaction song.Reaction, req song.LikeRequest) error
}

type AccountService interface {
	Authenticate(ctx context.Context, req user.AuthRequest) (*user.AuthResponse, error)
	Profile(ctx context.Context, userID string) (*user.User, error)
}
