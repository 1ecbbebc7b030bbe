package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL is the base URL of the upstream movies API. Every outbound
	// request targets this URL; it is resolved once at startup and never
	// overridden per call site.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5000/api"`
	// ListenAddr is the address the gateway HTTP server binds to.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":3000"`
	// StateDir is the directory holding the gateway's durable client state
	// (the persisted session record, the optional sqlite state database).
	StateDir string `env:"STATE_DIR" envDefault:".anti-movies"`
	// SessionStore selects the session persistence backend: "file" keeps a
	// single JSON record on disk, "sqlite" keeps it in a local state database.
	SessionStore string `env:"SESSION_STORE" envDefault:"file"`
	// RequestTimeout bounds every upstream call issued by the gateway.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	// CacheTTL is how long catalog reads (list, trending, detail) are served
	// from the in-memory cache before the upstream is consulted again.
	// Set to 0 to disable caching.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	// HealthCheckInterval is how often the gateway pings the upstream to
	// decide readiness. Backends that fail 2 consecutive checks are reported
	// unavailable until they recover.
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL" envDefault:"30s"`
	// LoginMaxAttempts is the number of failed login attempts allowed per IP
	// within LoginWindow before the IP is temporarily blocked.
	LoginMaxAttempts int `env:"LOGIN_MAX_ATTEMPTS" envDefault:"10"`
	// LoginWindow is the sliding window duration for counting failed logins.
	LoginWindow time.Duration `env:"LOGIN_WINDOW" envDefault:"15m"`
	// LoginBanDuration is how long an IP is blocked after exceeding LoginMaxAttempts.
	LoginBanDuration time.Duration `env:"LOGIN_BAN_DURATION" envDefault:"15m"`
	// ShutdownTimeout is the maximum duration to wait for in-flight requests
	// to complete during graceful shutdown.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	// CORSOrigins is the set of origins (comma-separated) allowed to make
	// credentialed cross-origin requests against the gateway.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// Load parses configuration from environment variables. A .env file in the
// working directory is folded into the environment first when present,
// without overriding variables that are already set.
// Returns an error if a value cannot be parsed into the expected type.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.SessionStore != "file" && cfg.SessionStore != "sqlite" {
		return Config{}, fmt.Errorf("config: SESSION_STORE must be \"file\" or \"sqlite\", got %q", cfg.SessionStore)
	}
	return cfg, nil
}
