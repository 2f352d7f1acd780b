package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	API       APIConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

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
	AdminToken     string // guards /api/v1/cache; empty disables it
}

// APIConfig points at the two music backends. The social backend serves
// shorts, chats and song reactions; everything else is on the primary.
type APIConfig struct {
	BaseURL       string
	SocialBaseURL string
	Timeout       time.Duration
	UserAgent     string
}

// CacheTTLs holds the freshness window of each cached resource.
type CacheTTLs struct {
	Songs          time.Duration
	Shorts         time.Duration
	Playlists      time.Duration
	PlaylistDetail time.Duration
	Stories        time.Duration
	Chats          time.Duration
	Messages       time.Duration
	Followers      time.Duration
	LikeStatus     time.Duration
	Users          time.Duration
}

type CacheConfig struct {
	TTL CacheTTLs
	// MaxEntries caps each in-process cache; 0 means unbounded.
	MaxEntries int
	// SharedEnabled adds Redis as a second tier shared by replicas.
	SharedEnabled bool
	SharedPrefix  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type RateLimitConfig struct {
	DefaultRequestsPerMinute int
	BurstMultiplier          float64
	Window                   time.Duration
	KeyPrefix                string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "8080"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			AllowedOrigins: getListEnv("ALLOWED_ORIGINS", []string{"*"}),
			Environment:    getEnv("ENVIRONMENT", "development"),
			AdminToken:     getEnv("ADMIN_TOKEN", ""),
		},
		API: APIConfig{
			BaseURL:       getEnv("API_BASE_URL", "https://music-back-g2u6.onrender.com"),
			SocialBaseURL: getEnv("SOCIAL_API_BASE_URL", "https://music-bird.up.railway.app"),
			Timeout:       getDurationEnv("API_TIMEOUT", 15*time.Second),
			UserAgent:     getEnv("API_USER_AGENT", "music-ui-gateway"),
		},
		Cache: CacheConfig{
			TTL: CacheTTLs{
				Songs:          getDurationEnv("CACHE_TTL_SONGS", 60*time.Second),
				Shorts:         getDurationEnv("CACHE_TTL_SHORTS", 60*time.Second),
				Playlists:      getDurationEnv("CACHE_TTL_PLAYLISTS", 60*time.Second),
				PlaylistDetail: getDurationEnv("CACHE_TTL_PLAYLIST_DETAIL", 60*time.Second),
				Stories:        getDurationEnv("CACHE_TTL_STORIES", 5*time.Second),
				Chats:          getDurationEnv("CACHE_TTL_CHATS", 60*time.Second),
				Messages:       getDurationEnv("CACHE_TTL_MESSAGES", 60*time.Second),
				Followers:      getDurationEnv("CACHE_TTL_FOLLOWERS", 5*time.Second),
				LikeStatus:     getDurationEnv("CACHE_TTL_LIKE_STATUS", 5*time.Second),
				Users:          getDurationEnv("CACHE_TTL_USERS", 60*time.Second),
			},
			MaxEntries:    getIntEnv("CACHE_MAX_ENTRIES", 0),
			SharedEnabled: getBoolEnv("CACHE_SHARED_ENABLED", false),
			SharedPrefix:  getEnv("CACHE_SHARED_PREFIX", "musicui"),
		},
		Redis: RedisConfig{
			Enabled:      getBoolEnv("REDIS_ENABLED", false),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			DefaultRequestsPerMinute: getIntEnv("RATE_LIMIT_RPM", 600),
			BurstMultiplier:          getFloatEnv("RATE_LIMIT_BURST", 2.0),
			Window:                   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			KeyPrefix:                getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit:client"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the caches cannot run with.
func (c *Config) Validate() error {
	ttls := map[string]time.Duration{
		"CACHE_TTL_SONGS":           c.Cache.TTL.Songs,
		"CACHE_TTL_SHORTS":          c.Cache.TTL.Shorts,
		"CACHE_TTL_PLAYLISTS":       c.Cache.TTL.Playlists,
		"CACHE_TTL_PLAYLIST_DETAIL": c.Cache.TTL.PlaylistDetail,
		"CACHE_TTL_STORIES":         c.Cache.TTL.Stories,
		"CACHE_TTL_CHATS":           c.Cache.TTL.Chats,
		"CACHE_TTL_MESSAGES":        c.Cache.TTL.Messages,
		"CACHE_TTL_FOLLOWERS":       c.Cache.TTL.Followers,
		"CACHE_TTL_LIKE_STATUS":     c.Cache.TTL.LikeStatus,
		"CACHE_TTL_USERS":           c.Cache.TTL.Users,
	}
	for name, ttl := range ttls {
		if ttl <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, ttl)
		}
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must not be negative, got %d", c.Cache.MaxEntries)
	}
	if c.API.BaseURL == "" || c.API.SocialBaseURL == "" {
		return fmt.Errorf("API_BASE_URL and SOCIAL_API_BASE_URL must be set")
	}
	if c.Cache.SharedEnabled && !c.Redis.Enabled {
		return fmt.Errorf("CACHE_SHARED_ENABLED requires REDIS_ENABLED")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getListEnv splits a comma-separated value, dropping empty items.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
