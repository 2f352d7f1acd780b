package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vjiki/music-ui/internal/core/ports"
	customMiddleware "github.com/vjiki/music-ui/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
	AdminToken     string
}

type ServerDeps struct {
	LibraryService     ports.LibraryService
	LikeService        ports.LikeService
	AccountService     ports.AccountService
	RateLimiterService ports.RateLimiterService // optional
	HealthCheckers     []ports.HealthChecker
	Caches             []ports.CacheAdmin
}

// Server is the gateway in front of the music backends. UI clients reach the
// backends only through the process-wide caches held by its services.
type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	library        ports.LibraryService
	likes          ports.LikeService
	accounts       ports.AccountService
	caches         []ports.CacheAdmin
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		library:        deps.LibraryService,
		likes:          deps.LikeService,
		accounts:       deps.AccountService,
		caches:         deps.Caches,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.RateLimiterService,
			serverConfig.AdminToken,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
