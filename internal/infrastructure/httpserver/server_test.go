package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/vjiki/music-ui/internal/application/services"
	"github.com/vjiki/music-ui/internal/core/domain/chat"
	"github.com/vjiki/music-ui/internal/core/domain/song"
	"github.com/vjiki/music-ui/internal/core/domain/story"
	"github.com/vjiki/music-ui/internal/core/domain/user"
	"github.com/vjiki/music-ui/internal/core/ports"
	"github.com/vjiki/music-ui/internal/infrastructure/apiclient"
	"github.com/vjiki/music-ui/internal/infrastructure/httpserver"
	tmocks "github.com/vjiki/music-ui/test/mocks"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

const adminToken = "admin-secret"

var adminHeader = map[string]string{"Authorization": "Bearer " + adminToken}

func newTestServer(t *testing.T, deps httpserver.ServerDeps) *httptest.Server {
	t.Helper()
	if deps.LibraryService == nil {
		deps.LibraryService = &tmocks.LibraryServiceMock{}
	}
	if deps.LikeService == nil {
		deps.LikeService = &tmocks.LikeServiceMock{}
	}
	if deps.AccountService == nil {
		deps.AccountService = &tmocks.AccountServiceMock{}
	}
	return newTestServerWithConfig(t, &httpserver.ServerConfig{
		Host:           "127.0.0.1",
		Port:           "0",
		AllowedOrigins: []string{"https://app.test"},
		AdminToken:     adminToken,
	}, deps)
}

func newTestServerWithConfig(t *testing.T, cfg *httpserver.ServerConfig, deps httpserver.ServerDeps) *httptest.Server {
	t.Helper()
	srv := httpserver.NewServer(cfg, quietLogger(), deps)
	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path string, body any, header map[string]string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestLibraryRoutes_ServeServiceResults(t *testing.T) {
	var gotUser string
	lib := &tmocks.LibraryServiceMock{
		SongsFn: func(ctx context.Context, userID string) ([]song.Song, error) {
			gotUser = userID
			return []song.Song{{ID: "s1", Title: "One"}}, nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{LibraryService: lib})

	resp, body := do(t, ts, http.MethodGet, "/api/v1/songs/u1", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "u1", gotUser)

	var songs []song.Song
	require.NoError(t, json.Unmarshal(body, &songs))
	require.Len(t, songs, 1)
	require.Equal(t, "s1", songs[0].ID)

	for _, path := range []string{
		"/api/v1/shorts/u1",
		"/api/v1/playlists/user/u1",
		"/api/v1/playlists/p1",
		"/api/v1/stories/user/u1",
		"/api/v1/chats/user/u1",
		"/api/v1/followers/u1",
	} {
		resp, _ := do(t, ts, http.MethodGet, path, nil, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestListMessages_PassesParticipantsFromQuery(t *testing.T) {
	var got []string
	lib := &tmocks.LibraryServiceMock{
		MessagesFn: func(ctx context.Context, chatID, userID1, userID2 string) ([]chat.Message, error) {
			got = []string{chatID, userID1, userID2}
			return []chat.Message{{ID: "m1"}}, nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{LibraryService: lib})

	resp, _ := do(t, ts, http.MethodGet, "/api/v1/messages/chat/c1?userId1=b&userId2=a", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []string{"c1", "b", "a"}, got)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "invalid argument", err: fmt.Errorf("%w: playlist id is required", services.ErrInvalidArgument), code: http.StatusBadRequest},
		{name: "backend not found", err: fmt.Errorf("failed to fetch: %w", &apiclient.StatusError{StatusCode: http.StatusNotFound}), code: http.StatusNotFound},
		{name: "backend unauthorized", err: &apiclient.StatusError{StatusCode: http.StatusUnauthorized}, code: http.StatusUnauthorized},
		{name: "backend timeout", err: fmt.Errorf("failed to fetch: %w", context.DeadlineExceeded), code: http.StatusGatewayTimeout},
		{name: "backend down", err: errors.New("connection refused"), code: http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := &tmocks.LibraryServiceMock{
				StoriesFn: func(ctx context.Context, userID string) ([]story.Story, error) { return nil, tt.err },
			}
			ts := newTestServer(t, httpserver.ServerDeps{LibraryService: lib})
			resp, _ := do(t, ts, http.MethodGet, "/api/v1/stories/user/u1", nil, nil)
			require.Equal(t, tt.code, resp.StatusCode)
		})
	}
}

func TestReactRoutes(t *testing.T) {
	type call struct {
		reaction song.Reaction
		req      song.LikeRequest
	}
	var calls []call
	likes := &tmocks.LikeServiceMock{
		ReactFn: func(ctx context.Context, reaction song.Reaction, req song.LikeRequest) error {
			calls = append(calls, call{reaction, req})
			if req.UserID == "guest" {
				return fmt.Errorf("%w: guests cannot react", services.ErrInvalidArgument)
			}
			return nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{LikeService: likes})

	resp, _ := do(t, ts, http.MethodPost, "/api/v1/song-likes/like", song.LikeRequest{UserID: "u1", SongID: "s1"}, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, ts, http.MethodPost, "/api/v1/song-likes/dislike", song.LikeRequest{UserID: "u1", SongID: "s2"}, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, []call{
		{song.ReactionLike, song.LikeRequest{UserID: "u1", SongID: "s1"}},
		{song.ReactionDislike, song.LikeRequest{UserID: "u1", SongID: "s2"}},
	}, calls)

	resp, _ = do(t, ts, http.MethodPost, "/api/v1/song-likes/like", song.LikeRequest{UserID: "guest", SongID: "s1"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodPost, "/api/v1/song-likes/like", "not-json", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLikeStatusRoute(t *testing.T) {
	ts := newTestServer(t, httpserver.ServerDeps{LikeService: &tmocks.LikeServiceMock{
		StatusFn: func(ctx context.Context, songID, userID string) (*song.LikeStatus, error) {
			return &song.LikeStatus{SongID: songID, UserID: userID, IsLiked: true, LikesCount: 3}, nil
		},
	}})

	resp, body := do(t, ts, http.MethodGet, "/api/v1/song-likes/song/s1/user/u1", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st song.LikeStatus
	require.NoError(t, json.Unmarshal(body, &st))
	require.Equal(t, song.LikeStatus{SongID: "s1", UserID: "u1", IsLiked: true, LikesCount: 3}, st)
}

func TestAccountRoutes(t *testing.T) {
	accounts := &tmocks.AccountServiceMock{
		AuthenticateFn: func(ctx context.Context, req user.AuthRequest) (*user.AuthResponse, error) {
			ok := req.Password == "secret"
			return &user.AuthResponse{Authenticated: ok, UserID: "u1"}, nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{AccountService: accounts})

	resp, body := do(t, ts, http.MethodPost, "/api/v1/auth/authenticate", user.AuthRequest{Email: "a@b.c", Password: "wrong"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ar user.AuthResponse
	require.NoError(t, json.Unmarshal(body, &ar))
	require.False(t, ar.Authenticated)

	resp, body = do(t, ts, http.MethodGet, "/api/v1/users/u7", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var u user.User
	require.NoError(t, json.Unmarshal(body, &u))
	require.Equal(t, "u7", u.ID)
}

func TestCacheRoutes_StatsAndPurge(t *testing.T) {
	songs := &tmocks.CacheAdminMock{NameValue: "songs", Entries: 3}
	stories := &tmocks.CacheAdminMock{NameValue: "stories", Entries: 2}
	ts := newTestServer(t, httpserver.ServerDeps{Caches: []ports.CacheAdmin{songs, stories}})

	resp, body := do(t, ts, http.MethodGet, "/api/v1/cache", nil, adminHeader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"caches":[{"name":"songs","entries":3},{"name":"stories","entries":2}],"total":5}`, string(body))

	resp, body = do(t, ts, http.MethodDelete, "/api/v1/cache", nil, adminHeader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"purged":5}`, string(body))
	require.Equal(t, 1, songs.Purged)
	require.Equal(t, 1, stories.Purged)
	require.Zero(t, songs.Len())
}

func TestCacheRoutes_RejectUnauthenticatedPurge(t *testing.T) {
	songs := &tmocks.CacheAdminMock{NameValue: "songs", Entries: 3}
	ts := newTestServer(t, httpserver.ServerDeps{Caches: []ports.CacheAdmin{songs}})

	cases := []struct {
		name   string
		header map[string]string
	}{
		{"no header", nil},
		{"wrong token", map[string]string{"Authorization": "Bearer guess"}},
		{"not bearer", map[string]string{"Authorization": "Basic " + adminToken}},
		{"empty bearer", map[string]string{"Authorization": "Bearer "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := do(t, ts, http.MethodDelete, "/api/v1/cache", nil, tc.header)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			resp, _ = do(t, ts, http.MethodGet, "/api/v1/cache", nil, tc.header)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
	require.Zero(t, songs.Purged)
	require.Equal(t, 3, songs.Len())
}

func TestCacheRoutes_DisabledWithoutAdminToken(t *testing.T) {
	songs := &tmocks.CacheAdminMock{NameValue: "songs", Entries: 3}
	ts := newTestServerWithConfig(t, &httpserver.ServerConfig{Host: "127.0.0.1", Port: "0"},
		httpserver.ServerDeps{
			LibraryService: &tmocks.LibraryServiceMock{},
			LikeService:    &tmocks.LikeServiceMock{},
			AccountService: &tmocks.AccountServiceMock{},
			Caches:         []ports.CacheAdmin{songs},
		})

	resp, _ := do(t, ts, http.MethodDelete, "/api/v1/cache", nil, map[string]string{"Authorization": "Bearer "})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = do(t, ts, http.MethodDelete, "/api/v1/cache", nil, adminHeader)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Zero(t, songs.Purged)
}

func TestLogMetricsInitialization_StructuredFields(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	srv := httpserver.NewServer(&httpserver.ServerConfig{Host: "127.0.0.1", Port: "0"}, logger, httpserver.ServerDeps{
		LibraryService: &tmocks.LibraryServiceMock{},
		LikeService:    &tmocks.LikeServiceMock{},
		AccountService: &tmocks.AccountServiceMock{},
	})
	hook.Reset()

	srv.LogMetricsInitialization()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "Prometheus metrics registered", entry.Message)
	require.Equal(t, "/metrics", entry.Data["metrics_endpoint"])
	require.Contains(t, entry.Data["http_metrics"], "musicui_http_requests_total")
	require.Contains(t, entry.Data["cache_metrics"], "musicui_fetchcache_requests_total")
}

func TestHealth(t *testing.T) {
	up := &tmocks.HealthCheckerMock{NameValue: "music-api"}
	ts := newTestServer(t, httpserver.ServerDeps{HealthCheckers: []ports.HealthChecker{up}})

	resp, body := do(t, ts, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var h map[string]any
	require.NoError(t, json.Unmarshal(body, &h))
	require.Equal(t, "healthy", h["status"])
	require.Equal(t, "music-ui-gateway", h["service"])

	down := &tmocks.HealthCheckerMock{NameValue: "redis", CheckFn: func(ctx context.Context) error { return errors.New("dial tcp: refused") }}
	ts = newTestServer(t, httpserver.ServerDeps{HealthCheckers: []ports.HealthChecker{up, down}})
	resp, body = do(t, ts, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &h))
	require.Equal(t, "degraded", h["status"])
	require.Equal(t, map[string]any{"music-api": "healthy", "redis": "unhealthy"}, h["dependencies"])
}

func TestRateLimit_AppliesToAPIOnly(t *testing.T) {
	limiter := &tmocks.RateLimiterServiceMock{
		AllowFn: func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
			return false, 0, 10, time.Unix(1700000000, 0), nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{RateLimiterService: limiter})

	resp, _ := do(t, ts, http.MethodGet, "/api/v1/songs/u1", nil, nil)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, "10", resp.Header.Get("X-RateLimit-Limit"))
	require.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	require.Equal(t, "1700000000", resp.Header.Get("X-RateLimit-Reset"))

	resp, _ = do(t, ts, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestID_ReachesBackendCalls(t *testing.T) {
	seen := make(chan string, 1)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(apiclient.RequestIDHeader)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer backend.Close()
	client, err := apiclient.New(apiclient.Config{BaseURL: backend.URL}, backend.Client(), nil)
	require.NoError(t, err)

	lib := &tmocks.LibraryServiceMock{
		SongsFn: func(ctx context.Context, userID string) ([]song.Song, error) {
			var out []song.Song
			err := client.GetJSON(ctx, "/api/v1/songs/"+userID, nil, &out)
			return out, err
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{LibraryService: lib})

	resp, _ := do(t, ts, http.MethodGet, "/api/v1/songs/u1", nil, map[string]string{echo.HeaderXRequestID: "req-42"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "req-42", resp.Header.Get(echo.HeaderXRequestID))
	require.Equal(t, "req-42", <-seen)
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	ts := newTestServer(t, httpserver.ServerDeps{})

	resp, _ := do(t, ts, http.MethodGet, "/api/v1/songs/u1", nil, map[string]string{echo.HeaderOrigin: "https://app.test"})
	require.Equal(t, "https://app.test", resp.Header.Get(echo.HeaderAccessControlAllowOrigin))

	resp, _ = do(t, ts, http.MethodGet, "/api/v1/songs/u1", nil, map[string]string{echo.HeaderOrigin: "https://evil.test"})
	require.Empty(t, resp.Header.Get(echo.HeaderAccessControlAllowOrigin))
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, httpserver.ServerDeps{})

	resp, _ := do(t, ts, http.MethodGet, "/api/v1/songs/u1", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body := do(t, ts, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `musicui_http_requests_total{endpoint="/api/v1/songs/:userId",method="GET",status="200"}`)
}
