package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	config "github.com/vjiki/music-ui/configs"
	"github.com/vjiki/music-ui/internal/application/services"
	"github.com/vjiki/music-ui/internal/core/ports"
	"github.com/vjiki/music-ui/internal/fetchcache"
	"github.com/vjiki/music-ui/internal/infrastructure/apiclient"
	"github.com/vjiki/music-ui/internal/infrastructure/health"
	"github.com/vjiki/music-ui/internal/infrastructure/httpserver"
	"github.com/vjiki/music-ui/internal/infrastructure/metrics"
	"github.com/vjiki/music-ui/internal/infrastructure/redis"
	"github.com/vjiki/music-ui/internal/infrastructure/repositories"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := newLogger(cfg.Log)
	logger.Info("Starting music UI gateway...")

	clock := clockwork.NewRealClock()

	primaryAPI, err := apiclient.New(apiclient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
	}, nil, logger)
	if err != nil {
		logger.Fatal("Failed to configure music API client:", err)
	}
	socialAPI, err := apiclient.New(apiclient.Config{
		BaseURL:   cfg.API.SocialBaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
	}, nil, logger)
	if err != nil {
		logger.Fatal("Failed to configure social API client:", err)
	}

	hcSlice := []ports.HealthChecker{
		health.NewUpstreamHealthChecker("music-api", primaryAPI),
		health.NewUpstreamHealthChecker("social-api", socialAPI),
	}

	cacheMetrics, err := metrics.NewCacheMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("Failed to register cache metrics:", err)
	}
	cacheOpts := fetchcache.Options{
		Clock:      clock,
		MaxEntries: cfg.Cache.MaxEntries,
		Metrics:    cacheMetrics,
		Logger:     logger,
	}

	var rateLimiterService ports.RateLimiterService
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis:", err)
		}
		defer redisClient.Close()
		logger.Info("Connected to Redis successfully")

		hcSlice = append(hcSlice, health.NewRedisHealthChecker(redisClient))

		if cfg.Cache.SharedEnabled {
			cacheOpts.Shared = redis.NewSharedCache(redisClient, cfg.Cache.SharedPrefix)
			logger.WithField("prefix", cfg.Cache.SharedPrefix).Info("Shared cache tier enabled")
		}

		rateLimiterService = services.NewRateLimiterService(
			repositories.NewRateLimitRedisRepository(redisClient, clock),
			&services.RateLimiterConfig{
				DefaultRequestsPerMinute: cfg.RateLimit.DefaultRequestsPerMinute,
				BurstMultiplier:          cfg.RateLimit.BurstMultiplier,
				Window:                   cfg.RateLimit.Window,
				KeyPrefix:                cfg.RateLimit.KeyPrefix,
			},
			logger,
		)
	} else {
		logger.Info("Redis disabled; rate limiting and shared cache are off")
	}

	ttl := cfg.Cache.TTL
	var caches []ports.CacheAdmin
	mustCache := func(name string, err error) {
		if err != nil {
			logger.WithField("cache", name).Fatal("Failed to build cache:", err)
		}
	}

	// Shorts, chats and reactions live on the social backend; everything
	// else on the primary one.
	songRepo, err := repositories.NewCachingSongRepository(repositories.NewSongRepository(primaryAPI, logger), ttl.Songs, cacheOpts)
	mustCache(repositories.CacheSongs, err)
	shortRepo, err := repositories.NewCachingShortRepository(repositories.NewShortRepository(socialAPI, logger), ttl.Shorts, cacheOpts)
	mustCache(repositories.CacheShorts, err)
	playlistRepo, err := repositories.NewCachingPlaylistRepository(repositories.NewPlaylistRepository(primaryAPI, logger), ttl.Playlists, ttl.PlaylistDetail, cacheOpts)
	mustCache(repositories.CachePlaylists, err)
	storyRepo, err := repositories.NewCachingStoryRepository(repositories.NewStoryRepository(primaryAPI, logger), ttl.Stories, cacheOpts)
	mustCache(repositories.CacheStories, err)
	followerRepo, err := repositories.NewCachingFollowerRepository(repositories.NewFollowerRepository(primaryAPI, logger), ttl.Followers, cacheOpts)
	mustCache(repositories.CacheFollowers, err)
	chatRepo, err := repositories.NewCachingChatRepository(repositories.NewChatRepository(socialAPI, logger), ttl.Chats, cacheOpts)
	mustCache(repositories.CacheChats, err)
	messageRepo, err := repositories.NewCachingMessageRepository(repositories.NewMessageRepository(primaryAPI, logger), ttl.Messages, cacheOpts)
	mustCache(repositories.CacheMessages, err)
	likeRepo, err := repositories.NewCachingSongLikeRepository(repositories.NewSongLikeRepository(socialAPI, logger), ttl.LikeStatus, cacheOpts)
	mustCache(repositories.CacheLikeStatus, err)
	userRepo, err := repositories.NewCachingUserRepository(repositories.NewUserRepository(primaryAPI, logger), ttl.Users, cacheOpts)
	mustCache(repositories.CacheUsers, err)

	for _, r := range []interface{ Caches() []ports.CacheAdmin }{
		songRepo, shortRepo, playlistRepo, storyRepo, followerRepo, chatRepo, messageRepo, likeRepo, userRepo,
	} {
		caches = append(caches, r.Caches()...)
	}

	libraryService := services.NewLibraryService(services.LibraryRepositories{
		Songs:     songRepo,
		Shorts:    shortRepo,
		Playlists: playlistRepo,
		Stories:   storyRepo,
		Followers: followerRepo,
		Chats:     chatRepo,
		Messages:  messageRepo,
	}, logger)
	likeService := services.NewLikeService(likeRepo, logger)
	accountService := services.NewAccountService(userRepo, logger)

	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
		AdminToken:     cfg.Server.AdminToken,
	}

	deps := httpserver.ServerDeps{
		LibraryService:     libraryService,
		LikeService:        likeService,
		AccountService:     accountService,
		RateLimiterService: rateLimiterService,
		HealthCheckers:     hcSlice,
		Caches:             caches,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	go func() {
		if err := server.Start(); err != nil {
			logger.Info("Server stopped: ", err)
		}
	}()

	logger.WithFields(logrus.Fields{
		"addr":   cfg.Server.Host + ":" + cfg.Server.Port,
		"caches": len(caches),
	}).Info("Gateway started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown: ", err)
	}

	logger.Info("Server exited")
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}
	return logger
}
