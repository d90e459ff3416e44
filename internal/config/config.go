package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	maxShortCodeLength = 32
)

type Config struct {
	Server    server
	Shortener shortener
	Storage   storage
	Postgres  postgres
	SQLite    sqlite
	Valkey    valkey
	Kafka     kafka
	Tracing   tracing
	Scheduler scheduler
	Admin     admin
	Log       log
}

type server struct {
	Addr string `env:"SERVER_ADDR" env-default:":8080"`
}

type shortener struct {
	ServerHost      string `env:"SERVER_HOST" env-required:"true"`
	APIPrefix       string `env:"API_PREFIX" env-default:"api/v1"`
	ShortCodeLength int    `env:"SHORT_CODE_LENGTH" env-default:"8"`
}

type storage struct {
	Driver string `env:"STORAGE_DRIVER" env-default:"postgres"`
}

type postgres struct {
	URL      string `env:"POSTGRES_URL"`
	MaxConns int32  `env:"POSTGRES_MAX_CONNS" env-default:"100"`
}

type sqlite struct {
	Path string `env:"SQLITE_PATH" env-default:"shortener.db"`
}

// Empty address disables the cache.
type valkey struct {
	Addr     string        `env:"VALKEY_ADDR"`
	Password string        `env:"VALKEY_PASSWORD"`
	CacheTTL time.Duration `env:"CACHE_TTL" env-default:"1h"`
}

// Empty address disables mapping events.
type kafka struct {
	Addr string `env:"KAFKA_ADDR"`
}

// Empty address installs a noop tracer.
type tracing struct {
	CollectorAddr string `env:"TRACING_COLLECTOR_ADDR"`
}

type scheduler struct {
	Crontab string `env:"METRICS_CRONTAB" env-default:"*/5 * * * *"`
}

type admin struct {
	Enabled bool `env:"ADMIN_API_ENABLED" env-default:"false"`
}

type log struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

func NewConfig() (*Config, error) {
	var cfg Config

	// Read .env file
	// If failed to read file, will try ReadEnv
	if err := cleanenv.ReadConfig(".env", &cfg); err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks values cleanenv cannot express with tags.
func (c *Config) Validate() error {
	if c.Shortener.ShortCodeLength < 1 || c.Shortener.ShortCodeLength > maxShortCodeLength {
		return fmt.Errorf("SHORT_CODE_LENGTH must be between 1 and %d, got %d",
			maxShortCodeLength, c.Shortener.ShortCodeLength)
	}

	host, err := url.Parse(c.Shortener.ServerHost)
	if err != nil || host.Scheme == "" || host.Host == "" {
		return fmt.Errorf("SERVER_HOST must be an absolute URL, got %q", c.Shortener.ServerHost)
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Postgres.URL == "" {
			return errors.New("POSTGRES_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.Log.Level)
	}

	return nil
}

// ShortURLBase is the prefix every short code is appended to,
// e.g. "https://sh.some/api/v1/".
func (c *Config) ShortURLBase() string {
	host := strings.TrimRight(c.Shortener.ServerHost, "/")
	prefix := strings.Trim(c.Shortener.APIPrefix, "/")
	if prefix == "" {
		return host + "/"
	}
	return host + "/" + prefix + "/"
}

// RoutePrefix is the Echo group path for the public API.
func (c *Config) RoutePrefix() string {
	prefix := strings.Trim(c.Shortener.APIPrefix, "/")
	if prefix == "" {
		return ""
	}
	return "/" + prefix
}
