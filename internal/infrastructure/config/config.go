package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session store drivers.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

// Config is the portal configuration.
type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	// LoginRatePerMinute bounds POST /login and POST /register per client IP.
	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE, default=30"`
	// TrustProxy takes the client IP from X-Forwarded-For when the request
	// comes through a proxy on a loopback or private address.
	TrustProxy bool `env:"TRUST_PROXY, default=false"`

	Backend BackendConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	URL       string        `env:"BACKEND_URL,        default=http://localhost:8081"`
	LoginPath string        `env:"BACKEND_LOGIN_PATH, default=/login"`
	Timeout   time.Duration `env:"BACKEND_TIMEOUT,    default=10s"`
}

type SessionConfig struct {
	Store        string `env:"SESSION_STORE,         default=memory"`
	CacheSize    int    `env:"SESSION_CACHE_SIZE,    default=1024"`
	Cookie       string `env:"SESSION_COOKIE,        default=portal_ctx"`
	CookieSecure bool   `env:"SESSION_COOKIE_SECURE, default=false"`
	EventWorkers int    `env:"SESSION_EVENT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=library_portal"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR,       default=localhost:6379"`
	DB        int    `env:"REDIS_DB,         default=0"`
	Password  string `env:"REDIS_PASSWORD"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=portal"`
}

// DevBackendConfig configures the development library backend.
type DevBackendConfig struct {
	Port          string        `env:"DEVBACKEND_PORT,           default=8081"`
	LogLevel      string        `env:"LOG_LEVEL,                 default=info"`
	LogPretty     bool          `env:"LOG_PRETTY,                default=false"`
	JWTSecret     string        `env:"JWT_SECRET,                default=dev-secret"`
	TokenTTL      time.Duration `env:"TOKEN_TTL,                 default=24h"`
	Store         string        `env:"DEVBACKEND_STORE,          default=memory"`
	AdminUsername string        `env:"DEVBACKEND_ADMIN_USERNAME, default=admin"`
	AdminPassword string        `env:"DEVBACKEND_ADMIN_PASSWORD"`

	Mongo MongoConfig
}

// Load reads the portal configuration from environment variables using
// go-envconfig.
func Load() *Config {
	var cfg Config
	mustProcess(context.Background(), envconfig.OsLookuper(), &cfg)
	return &cfg
}

// LoadDevBackend reads the development backend configuration.
func LoadDevBackend() *DevBackendConfig {
	var cfg DevBackendConfig
	mustProcess(context.Background(), envconfig.OsLookuper(), &cfg)
	return &cfg
}

func mustProcess(ctx context.Context, l envconfig.Lookuper, cfg any) {
	if err := process(ctx, l, cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
}

func process(ctx context.Context, l envconfig.Lookuper, cfg any) error {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: cfg, Lookuper: l}); err != nil {
		return err
	}
	if c, ok := cfg.(*Config); ok {
		return c.validate()
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case StoreMemory, StoreRedis, StoreMongo:
	default:
		return fmt.Errorf("SESSION_STORE %q: want memory, redis or mongo", c.Session.Store)
	}
	if c.Backend.URL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	return nil
}
