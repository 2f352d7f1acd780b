package mocks

import (
	"context"
	"time"

	"github.com/vjiki/music-ui/internal/core/domain/chat"
	"github.com/vjiki/music-ui/internal/core/domain/playlist"
	"github.com/vjiki/music-ui/internal/core/domain/song"
	"github.com/vjiki/music-ui/internal/core/domain/story"
	"github.com/vjiki/music-ui/internal/core/domain/user"
	"github.com/vjiki/music-ui/internal/core/ports"
)

// SongRepositoryMock is a lightweight mock for SongRepository
type SongRepositoryMock struct {
	ListByUserFn func(ctx context.Context, userID string) ([]song.Song, error)
}

func (m *SongRepositoryMock) ListByUser(ctx context.Context, userID string) ([]song.Song, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

type ShortRepositoryMock struct {
	ListByUserFn func(ctx context.Context, userID string) ([]song.Short, error)
}

func (m *ShortRepositoryMock) ListByUser(ctx context.Context, userID string) ([]song.Short, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

type PlaylistRepositoryMock struct {
	ListByUserFn   func(ctx context.Context, userID string) ([]playlist.Playlist, error)
	GetWithSongsFn func(ctx context.Context, playlistID string) (*playlist.WithSongs, error)
}

func (m *PlaylistRepositoryMock) ListByUser(ctx context.Context, userID string) ([]playlist.Playlist, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}
func (m *PlaylistRepositoryMock) GetWithSongs(ctx context.Context, playlistID string) (*playlist.WithSongs, error) {
	if m.GetWithSongsFn != nil {
		return m.GetWithSongsFn(ctx, playlistID)
	}
	return nil, nil
}

type StoryRepositoryMock struct {
	ListByUserFn func(ctx context.Context, userID string) ([]story.Story, error)
}

func (m *StoryRepositoryMock) ListByUser(ctx context.Context, userID string) ([]story.Story, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

type FollowerRepositoryMock struct {
	ListByUserFn func(ctx context.Context, userID string) ([]user.Follower, error)
}

func (m *FollowerRepositoryMock) ListByUser(ctx context.Context, userID string) ([]user.Follower, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

type ChatRepositoryMock struct {
	ListByUserFn func(ctx context.Context, userID string) ([]chat.ListItem, error)
}

func (m *ChatRepositoryMock) ListByUser(ctx context.Context, userID string) ([]chat.ListItem, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

type MessageRepositoryMock struct {
	ListByChatFn func(ctx context.Context, chatID, userID1, userID2 string) ([]chat.Message, error)
}

func (m *MessageRepositoryMock) ListByChat(ctx context.Context, chatID, userID1, userID2 string) ([]chat.Message, error) {
	if m.ListByChatFn != nil {
		return m.ListByChatFn(ctx, chatID, userID1, userID2)
	}
	return nil, nil
}

type SongLikeRepositoryMock struct {
	StatusFn  func(ctx context.Context, songID, userID string) (*song.LikeStatus, error)
	LikeFn    func(ctx context.Context, req song.LikeRequest) error
	DislikeFn func(ctx context.Context, req song.LikeRequest) error
}

func (m *SongLikeRepositoryMock) Status(ctx context.Context, songID, userID string) (*song.LikeStatus, error) {
	if m.StatusFn != nil {
		return m.StatusFn(ctx, songID, userID)
	}
	return &song.LikeStatus{SongID: songID, UserID: userID}, nil
}
func (m *SongLikeRepositoryMock) Like(ctx context.Context, req song.LikeRequest) error {
	if m.LikeFn != nil {
		return m.LikeFn(ctx, req)
	}
	return nil
}
func (m *SongLikeRepositoryMock) Dislike(ctx context.Context, req song.LikeRequest) error {
	if m.DislikeFn != nil {
		return m.DislikeFn(ctx, req)
	}
	return nil
}

type UserRepositoryMock struct {
	GetByIDFn      func(ctx context.Context, userID string) (*user.User, error)
	AuthenticateFn func(ctx context.Context, req user.AuthRequest) (*user.AuthResponse, error)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, userID string) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, userID)
	}
	return &user.User{ID: userID}, nil
}
func (m *UserRepositoryMock) Authenticate(ctx context.Context, req user.AuthRequest) (*user.AuthResponse, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, req)
	}
	return &user.AuthResponse{}, nil
}

// LibraryServiceMock is a lightweight mock for LibraryService
type LibraryServiceMock struct {
	SongsFn     func(ctx context.Context, userID string) ([]song.Song, error)
	ShortsFn    func(ctx context.Context, userID string) ([]song.Short, error)
	PlaylistsFn func(ctx context.Context, userID string) ([]playlist.Playlist, error)
	PlaylistFn  func(ctx context.Context, playlistID string) (*playlist.WithSongs, error)
	StoriesFn   func(ctx context.Context, userID string) ([]story.Story, error)
	FollowersFn func(ctx context.Context, userID string) ([]user.Follower, error)
	ChatsFn     func(ctx context.Context, userID string) ([]chat.ListItem, error)
	MessagesFn  func(ctx context.Context, chatID, userID1, userID2 string) ([]chat.Message, error)
}

func (m *LibraryServiceMock) Songs(ctx context.Context, userID string) ([]song.Song, error) {
	if m.SongsFn != nil {
		return m.SongsFn(ctx, userID)
	}
	return []song.Song{}, nil
}
func (m *LibraryServiceMock) Shorts(ctx context.Context, userID string) ([]song.Short, error) {
	if m.ShortsFn != nil {
		return m.ShortsFn(ctx, userID)
	}
	return []song.Short{}, nil
}
func (m *LibraryServiceMock) Playlists(ctx context.Context, userID string) ([]playlist.Playlist, error) {
	if m.PlaylistsFn != nil {
		return m.PlaylistsFn(ctx, userID)
	}
	return []playlist.Playlist{}, nil
}
func (m *LibraryServiceMock) Playlist(ctx context.Context, playlistID string) (*playlist.WithSongs, error) {
	if m.PlaylistFn != nil {
		return m.PlaylistFn(ctx, playlistID)
	}
	return &playlist.WithSongs{}, nil
}
func (m *LibraryServiceMock) Stories(ctx context.Context, userID string) ([]story.Story, error) {
	if m.StoriesFn != nil {
		return m.StoriesFn(ctx, userID)
	}
	return []story.Story{}, nil
}
func (m *LibraryServiceMock) Followers(ctx context.Context, userID string) ([]user.Follower, error) {
	if m.FollowersFn != nil {
		return m.FollowersFn(ctx, userID)
	}
	return []user.Follower{}, nil
}
func (m *LibraryServiceMock) Chats(ctx context.Context, userID string) ([]chat.ListItem, error) {
	if m.ChatsFn != nil {
		return m.ChatsFn(ctx, userID)
	}
	return []chat.ListItem{}, nil
}
func (m *LibraryServiceMock) Messages(ctx context.Context, chatID, userID1, userID2 string) ([]chat.Message, error) {
	if m.MessagesFn != nil {
		return m.MessagesFn(ctx, chatID, userID1, userID2)
	}
	return []chat.Message{}, nil
}

type LikeServiceMock struct {
	StatusFn func(ctx context.Context, songID, userID string) (*song.LikeStatus, error)
	ReactFn  func(ctx context.Context, reaction song.Reaction, req song.LikeRequest) error
}

func (m *LikeServiceMock) Status(ctx context.Context, songID, userID string) (*song.LikeStatus, error) {
	if m.StatusFn != nil {
		return m.StatusFn(ctx, songID, userID)
	}
	return &song.LikeStatus{SongID: songID, UserID: userID}, nil
}
func (m *LikeServiceMock) React(ctx context.Context, reaction song.Reaction, req song.LikeRequest) error {
	if m.ReactFn != nil {
		return m.ReactFn(ctx, reaction, req)
	}
	return nil
}

type AccountServiceMock struct {
	AuthenticateFn func(ctx context.Context, req user.AuthRequest) (*user.AuthResponse, error)
	ProfileFn      func(ctx context.Context, userID string) (*user.User, error)
}

func (m *AccountServiceMock) Authenticate(ctx context.Context, req user.AuthRequest) (*user.AuthResponse, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, req)
	}
	return &user.AuthResponse{}, nil
}
func (m *AccountServiceMock) Profile(ctx context.Context, userID string) (*user.User, error) {
	if m.ProfileFn != nil {
		return m.ProfileFn(ctx, userID)
	}
	return &user.User{ID: userID}, nil
}

type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, clientKey, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, clientKey)
	}
	return true, 1, 1, time.Now().Add(time.Minute), nil
}

type HealthCheckerMock struct {
	NameValue string
	CheckFn   func(ctx context.Context) error
}

func (m *HealthCheckerMock) Name() string { return m.NameValue }
func (m *HealthCheckerMock) Check(ctx context.Context) error {
	if m.CheckFn != nil {
		return m.CheckFn(ctx)
	}
	return nil
}

// CacheAdminMock records purges.
type CacheAdminMock struct {
	NameValue string
	Entries   int
	Purged    int
}

func (m *CacheAdminMock) Name() string { return m.NameValue }
func (m *CacheAdminMock) Len() int     { return m.Entries }
func (m *CacheAdminMock) Purge() {
	m.Purged++
	m.Entries = 0
}

var (
	_ ports.SongRepository      = (*SongRepositoryMock)(nil)
	_ ports.ShortRepository     = (*ShortRepositoryMock)(nil)
	_ ports.PlaylistRepository  = (*PlaylistRepositoryMock)(nil)
	_ ports.StoryRepository     = (*StoryRepositoryMock)(nil)
	_ ports.FollowerRepository  = (*FollowerRepositoryMock)(nil)
	_ ports.ChatRepository      = (*ChatRepositoryMock)(nil)
	_ ports.MessageRepository   = (*MessageRepositoryMock)(nil)
	_ ports.SongLikeRepository  = (*SongLikeRepositoryMock)(nil)
	_ ports.UserRepository      = (*UserRepositoryMock)(nil)
	_ ports.LibraryService      = (*LibraryServiceMock)(nil)
	_ ports.LikeService         = (*LikeServiceMock)(nil)
	_ ports.AccountService      = (*AccountServiceMock)(nil)
	_ ports.RateLimitRepository = (*RateLimitRepositoryMock)(nil)
	_ ports.RateLimiterService  = (*RateLimiterServiceMock)(nil)
	_ ports.HealthChecker       = (*HealthCheckerMock)(nil)
	_ ports.CacheAdmin          = (*CacheAdminMock)(nil)
)
