package repositories

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/core/domain/chat"
	"github.com/vjiki/music-ui/internal/core/domain/playlist"
	"github.com/vjiki/music-ui/internal/core/domain/song"
	"github.com/vjiki/music-ui/internal/core/domain/story"
	"github.com/vjiki/music-ui/internal/core/domain/user"
	"github.com/vjiki/music-ui/internal/core/ports"
	"github.com/vjiki/music-ui/internal/fetchcache"
)

// Cache names, used as metric labels and shared-tier key prefixes.
const (
	CacheSongs          = "songs"
	CacheShorts         = "shorts"
	CachePlaylists      = "playlists"
	CachePlaylistDetail = "playlist_detail"
	CacheStories        = "stories"
	CacheChats          = "chats"
	CacheMessages       = "messages"
	CacheFollowers      = "followers"
	CacheLikeStatus     = "like_status"
	CacheUsers          = "users"
)

// newUserKeyed builds a cache whose only parameter is a single id.
func newUserKeyed[T any](name string, ttl time.Duration, fetch fetchcache.Fetcher[string, T], opts fetchcache.Options) (*fetchcache.Cache[string, T], error) {
	return fetchcache.New(name, ttl, fetchcache.SingleKey, fetch, opts)
}

// CachingSongRepository decorates a SongRepository with a coalescing cache.
type CachingSongRepository struct {
	cache *fetchcache.Cache[string, []song.Song]
}

func NewCachingSongRepository(inner ports.SongRepository, ttl time.Duration, opts fetchcache.Options) (*CachingSongRepository, error) {
	c, err := newUserKeyed(CacheSongs, ttl, inner.ListByUser, opts)
	if err != nil {
		return nil, err
	}
	return &CachingSongRepository{cache: c}, nil
}

func (c *CachingSongRepository) ListByUser(ctx context.Context, userID string) ([]song.Song, error) {
	return c.cache.Get(ctx, userID)
}

func (c *CachingSongRepository) Caches() []ports.CacheAdmin {
	return []ports.CacheAdmin{c.cache}
}

// CachingShortRepository never fails for backend errors: the error is
// logged and an empty list returned, and nothing is cached so the next call
// retries.
type CachingShortRepository struct {
	cache  *fetchcache.Cache[string, []song.Short]
	logger *logrus.Logger
}

func NewCachingShortRepository(inner ports.ShortRepository, ttl time.Duration, opts fetchcache.Options) (*CachingShortRepository, error) {
	c, err := newUserKeyed(CacheShorts, ttl, inner.ListByUser, opts)
	if err != nil {
		return nil, err
	}
	return &CachingShortRepository{cache: c, logger: opts.Logger}, nil
}

func (c *CachingShortRepository) ListByUser(ctx context.Context, userID string) ([]song.Short, error) {
	shorts, err := c.cache.Get(ctx, userID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if c.logger != nil {
			c.logger.WithField("user_id", userID).WithError(err).Warn("Shorts unavailable, serving empty list")
		}
		return []song.Short{}, nil
	}
	return shorts, nil
}

func (c *CachingShortRepository) Caches() []ports.CacheAdmin {
	return []ports.CacheAdmin{c.cache}
}

// CachingPlaylistRepository caches user playlist lists and playlist details
// in two independent caches.
type CachingPlaylistRepository struct {
	lists   *fetchcache.Cache[string, []playlist.Playlist]
	details *fetchcache.Cache[string, *playlist.WithSongs]
}

func NewCachingPlaylistRepository(inner ports.PlaylistRepository, listTTL, detailTTL time.Duration, opts fetchcache.Options) (*CachingPlaylistRepository, error) {
	lists, err := newUserKeyed(CachePlaylists, listTTL, inner.ListByUser, opts)
	if err != nil {
		return nil, err
	}
	details, err := newUserKeyed(CachePlaylistDetail, detailTTL, inner.GetWithSongs, opts)
	if err != nil {
		return nil, err
	}
	return &CachingPlaylistRepository{lists: lists, details: details}, nil
}

func (c *CachingPlaylistRepository) ListByUser(ctx context.Context, userID string) ([]playlist.Playlist, error) {
	return c.lists.Get(ctx, userID)
}

func (c *CachingPlaylistRepository) GetWithSongs(ctx context.Context, playlistID string) (*playlist.WithSongs, error) {
	return c.details.Get(ctx, playlistID)
}

func (c *CachingPlaylistRepository) Caches() []ports.CacheAdmin {
	return []ports.CacheAdmin{c.lists, c.details}
}

type CachingStoryRepository struct {
	cache *fetchcache.Cache[string, []story.Story]
}

func NewCachingStoryRepository(inner ports.StoryRepository, ttl time.Duration, opts fetchcache.Options) (*CachingStoryRepository, error) {
	c, err := newUserKeyed(CacheStories, ttl, inner.ListByUser, opts)
	if err != nil {
		return nil, err
	}
	return &CachingStoryRepository{cache: c}, nil
}

func (c *CachingStoryRepository) ListByUser(ctx context.Context, userID string) ([]story.Story, error) {
	return c.cache.Get(ctx, userID)
}

func (c *CachingStoryRepository) Caches() []ports.CacheAdmin {
	return []ports.CacheAdmin{c.cache}
}

type CachingFollowerRepository struct {
	cache *fetchcache.Cache[string, []user.Follower]
}

func NewCachingFollowerRepository(inner ports.FollowerRepository, ttl time.Duration, opts fetchcache.Options) (*CachingFollowerRepository, error) {
	c, err := newUserKeyed(CacheFollowers, ttl, inner.ListByUser, opts)
	if err != nil {
		return nil, err
	}
	return &CachingFollowerRepository{cache: c}, nil
}

func (c *CachingFollowerRepository) ListByUser(ctx context.Context, userID string) ([]user.Follower, error) {
	return c.cache.Get(ctx, userID)
}

func (c *CachingFollowerRepository) Caches() []ports.CacheAdmin {
	return []ports.CacheAdmin{c.cache}
}

type CachingChatRepository struct {
	cache *fetchcache.Cache[string, []chat.ListItem]
}

func NewCachingChatRepository(inner ports.ChatRepository, ttl time.Duration, opts fetchcache.Options) (*CachingChatRepository, error) {
	c, err := newUserKeyed(CacheChats, ttl, inner.ListByUser, opts)
	if err != nil {
		return nil, err
	}
	return &CachingChatRepository{cache: c}, nil
}

func (c *CachingChatRepository) ListByUser(ctx context.Context, userID string) ([]chat.ListItem, error) {
	return c.cache.Get(ctx, userID)
}

func (c *CachingChatRepository) Caches() []ports.CacheAdmin {
	return []ports.CacheAdmin{c.cache}
}

// CachingMessageRepository shares one entry between both orderings of the
// participant pair.
type CachingMessageRepository struct {
	cache *fetchcache.Cache[fetchcache.ChatPair, []chat.Message]
}

func NewCachingMessageRepository(inner ports.MessageRepository, ttl time.Duration, opts fetchcache.Options) (*CachingMessageRepository, error) {
	fetch := func(ctx context.Context, p fetchcache.ChatPair) ([]chat.Message, error) {
		return inner.ListByChat(ctx, p.ChatID, p.UserA, p.UserB)
	}
	c, err := fetchcache.New(CacheMessages, ttl, fetchcache.ChatPairKey, fetch, opts)
	if err != nil {
		return nil, err
	}
	return &CachingMessageRepository{cache: c}, nil
}

func (c *CachingMessageRepository) ListByChat(ctx context.Context, chatID, userID1, userID2 string) ([]chat.Message, error) {
	return c.cache.Get(ctx, fetchcache.ChatPair{ChatID: chatID, UserA: userID1, UserB: userID2})
}

func (c *CachingMessageRepository) Caches() []ports.CacheAdmin {
	return []ports.CacheAdmin{c.cache}
}

// CachingSongLikeRepository caches like status and invalidates it around
// every like or dislike write.
type CachingSongLikeRepository struct {
	inner  ports.SongLikeRepository
	status *fetchcache.Cache[fetchcache.SongUser, *song.LikeStatus]
	logger *logrus.Logger
}

func NewCachingSongLikeRepository(inner ports.SongLikeRepository, ttl time.Duration, opts fetchcache.Options) (*CachingSongLikeRepository, error) {
	fetch := func(ctx context.Context, p fetchcache.SongUser) (*song.LikeStatus, error) {
		return inner.Status(ctx, p.SongID, p.UserID)
	}
	c, err := fetchcache.New(CacheLikeStatus, ttl, fetchcache.SongUserKey, fetch, opts)
	if err != nil {
		return nil, err
	}
	return &CachingSongLikeRepository{inner: inner, status: c, logger: opts.Logger}, nil
}

func (c *CachingSongLikeRepository) Status(ctx context.Context, songID, userID string) (*song.LikeStatus, error) {
	return c.status.Get(ctx, fetchcache.SongUser{SongID: songID, UserID: userID})
}

func (c *CachingSongLikeRepository) Like(ctx context.Context, req song.LikeRequest) error {
	return c.write(ctx, req, c.inner.Like)
}

func (c *CachingSongLikeRepository) Dislike(ctx context.Context, req song.LikeRequest) error {
	return c.write(ctx, req, c.inner.Dislike)
}

// write drops the status entry before the write so no new read is served
// stale data, and again afterwards so a read that started while the write
// was in progress cannot keep pre-write data. The second invalidation runs
// whether or not the write succeeded.
func (c *CachingSongLikeRepository) write(ctx context.Context, req song.LikeRequest, do func(context.Context, song.LikeRequest) error) error {
	key := fetchcache.SongUser{SongID: req.SongID, UserID: req.UserID}
	c.status.Invalidate(ctx, key)
	err := do(ctx, req)
	c.status.Invalidate(ctx, key)
	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"song_id": req.SongID,
			"user_id": req.UserID,
		}).Debug("Like status invalidated")
	}
	return err
}

func (c *CachingSongLikeRepository) Caches() []ports.CacheAdmin {
	return []ports.CacheAdmin{c.status}
}

// CachingUserRepository caches profile reads. Authentication always goes to
// the backend.
type CachingUserRepository struct {
	inner    ports.UserRepository
	profiles *fetchcache.Cache[string, *user.User]
}

func NewCachingUserRepository(inner ports.UserRepository, ttl time.Duration, opts fetchcache.Options) (*CachingUserRepository, error) {
	c, err := newUserKeyed(CacheUsers, ttl, inner.GetByID, opts)
	if err != nil {
		return nil, err
	}
	return &CachingUserRepository{inner: inner, profiles: c}, nil
}

func (c *CachingUserRepository) GetByID(ctx context.Context, userID string) (*user.User, error) {
	return c.profiles.Get(ctx, userID)
}

func (c *CachingUserRepository) Authenticate(ctx context.Context, req user.AuthRequest) (*user.AuthResponse, error) {
	return c.inner.Authenticate(ctx, req)
}

func (c *CachingUserRepository) Caches() []ports.CacheAdmin {
	return []ports.CacheAdmin{c.profiles}
}
