package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string   `env:"PORT,            default=8080"`
	Env            string   `env:"ENV,             default=development"`
	LogLevel       string   `env:"LOG_LEVEL,       default=info"`
	IdentityHeader string   `env:"IDENTITY_HEADER, default=X-User-DNI"`
	CORSOrigins    []string `env:"CORS_ORIGINS,    default=*"`

	SQLite SQLiteConfig
	Admin  AdminConfig
	Redis  RedisConfig
	Login  LoginConfig
}

type SQLiteConfig struct {
	Path        string        `env:"SQLITE_PATH,         default=workday.db"`
	BusyTimeout time.Duration `env:"SQLITE_BUSY_TIMEOUT, default=5s"`
}

// AdminConfig names the privileged account. The account is seeded at startup
// only when Password is set.
type AdminConfig struct {
	DNI      string `env:"ADMIN_DNI,      default=admin"`
	Password string `env:"ADMIN_PASSWORD"`
}

// RedisConfig enables the login throttle when Addr is non-empty.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Lockout     time.Duration `env:"LOGIN_LOCKOUT,      default=15m"`
}

// IsDevelopment reports whether the service runs in the development env.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.IdentityHeader == "" {
		return nil, fmt.Errorf("config: IDENTITY_HEADER must not be empty")
	}
	if cfg.Admin.DNI == "" {
		return nil, fmt.Errorf("config: ADMIN_DNI must not be empty")
	}
	return &cfg, nil
}
