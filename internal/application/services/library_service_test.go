package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vjiki/music-ui/internal/application/services"
	"github.com/vjiki/music-ui/internal/core/domain/chat"
	"github.com/vjiki/music-ui/internal/core/domain/playlist"
	"github.com/vjiki/music-ui/internal/core/domain/song"
	"github.com/vjiki/music-ui/internal/core/domain/story"
	"github.com/vjiki/music-ui/internal/core/domain/user"
	tmocks "github.com/vjiki/music-ui/test/mocks"
)

func failingRepos(t *testing.T) services.LibraryRepositories {
	t.Helper()
	fail := func() { t.Fatalf("repository must not be called for guests") }
	return services.LibraryRepositories{
		Songs:     &tmocks.SongRepositoryMock{ListByUserFn: func(context.Context, string) ([]song.Song, error) { fail(); return nil, nil }},
		Shorts:    &tmocks.ShortRepositoryMock{ListByUserFn: func(context.Context, string) ([]song.Short, error) { fail(); return nil, nil }},
		Playlists: &tmocks.PlaylistRepositoryMock{ListByUserFn: func(context.Context, string) ([]playlist.Playlist, error) { fail(); return nil, nil }},
		Stories:   &tmocks.StoryRepositoryMock{ListByUserFn: func(context.Context, string) ([]story.Story, error) { fail(); return nil, nil }},
		Followers: &tmocks.FollowerRepositoryMock{ListByUserFn: func(context.Context, string) ([]user.Follower, error) { fail(); return nil, nil }},
		Chats:     &tmocks.ChatRepositoryMock{ListByUserFn: func(context.Context, string) ([]chat.ListItem, error) { fail(); return nil, nil }},
		Messages: &tmocks.MessageRepositoryMock{ListByChatFn: func(context.Context, string, string, string) ([]chat.Message, error) {
			fail()
			return nil, nil
		}},
	}
}

func TestLibraryService_GuestShortCircuits(t *testing.T) {
	svc := services.NewLibraryService(failingRepos(t), nil)
	ctx := context.Background()

	for _, id := range []string{"", user.GuestID} {
		songs, err := svc.Songs(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, songs)
		require.Empty(t, songs)

		shorts, err := svc.Shorts(ctx, id)
		require.NoError(t, err)
		require.Empty(t, shorts)

		pls, err := svc.Playlists(ctx, id)
		require.NoError(t, err)
		require.Empty(t, pls)

		stories, err := svc.Stories(ctx, id)
		require.NoError(t, err)
		require.Empty(t, stories)

		followers, err := svc.Followers(ctx, id)
		require.NoError(t, err)
		require.Empty(t, followers)

		chats, err := svc.Chats(ctx, id)
		require.NoError(t, err)
		require.Empty(t, chats)

		msgs, err := svc.Messages(ctx, "c1", "u1", id)
		require.NoError(t, err)
		require.Empty(t, msgs)
	}

	msgs, err := svc.Messages(ctx, "", "u1", "u2")
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestLibraryService_DelegatesForSignedInUser(t *testing.T) {
	repos := services.LibraryRepositories{
		Songs: &tmocks.SongRepositoryMock{ListByUserFn: func(_ context.Context, id string) ([]song.Song, error) {
			return []song.Song{{ID: "s-" + id}}, nil
		}},
		Messages: &tmocks.MessageRepositoryMock{ListByChatFn: func(_ context.Context, chatID, a, b string) ([]chat.Message, error) {
			return []chat.Message{{ID: "m1", ChatID: chatID, SenderID: a}}, nil
		}},
	}
	svc := services.NewLibraryService(repos, nil)
	ctx := context.Background()

	songs, err := svc.Songs(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "s-u1", songs[0].ID)

	msgs, err := svc.Messages(ctx, "c1", "u1", "u2")
	require.NoError(t, err)
	require.Equal(t, "c1", msgs[0].ChatID)
}

func TestLibraryService_PlaylistRequiresID(t *testing.T) {
	called := false
	svc := services.NewLibraryService(services.LibraryRepositories{
		Playlists: &tmocks.PlaylistRepositoryMock{GetWithSongsFn: func(_ context.Context, id string) (*playlist.WithSongs, error) {
			called = true
			return &playlist.WithSongs{Playlist: playlist.Playlist{ID: id}}, nil
		}},
	}, nil)

	_, err := svc.Playlist(context.Background(), "")
	require.ErrorIs(t, err, services.ErrInvalidArgument)
	require.False(t, called)

	p, err := svc.Playlist(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "p1", p.ID)
}

func TestLibraryService_PropagatesRepositoryError(t *testing.T) {
	boom := errors.New("backend down")
	svc := services.NewLibraryService(services.LibraryRepositories{
		Stories: &tmocks.StoryRepositoryMock{ListByUserFn: func(context.Context, string) ([]story.Story, error) { return nil, boom }},
	}, nil)

	_, err := svc.Stories(context.Background(), "u1")
	require.ErrorIs(t, err, boom)
}
