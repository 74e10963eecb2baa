package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/fatetable/internal/api/request"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config is the server configuration, read from the environment
type Config struct {
	Host            string        `env:"HOST"`
	Port            int           `env:"PORT"             envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`

	StorageType string        `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string        `env:"REDIS_URL"`
	TableTTL    time.Duration `env:"TABLE_TTL"    envDefault:"0s"`

	// TableIDMode is "caller" or "generated"
	TableIDMode string `env:"TABLE_ID_MODE" envDefault:"caller"`
	// LeaveOnDisconnect makes a dropped connection leave the user's table
	LeaveOnDisconnect bool `env:"LEAVE_ON_DISCONNECT" envDefault:"true"`

	Version string `env:"APP_VERSION" envDefault:"dev"`
	Commit  string `env:"APP_COMMIT"  envDefault:"unknown"`
}

// Load reads the configuration from the process environment
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables only
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that the env tags cannot express
func (c Config) Validate() error {
	switch c.StorageType {
	case StorageTypeMemory:
	case StorageTypeRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL required when STORAGE_TYPE=%s", StorageTypeRedis)
		}
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: must be %q or %q", c.StorageType, StorageTypeMemory, StorageTypeRedis)
	}

	switch request.TableIDMode(c.TableIDMode) {
	case request.TableIDFromCaller, request.TableIDGenerated:
	default:
		return fmt.Errorf("invalid TABLE_ID_MODE %q: must be %q or %q", c.TableIDMode, request.TableIDFromCaller, request.TableIDGenerated)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
