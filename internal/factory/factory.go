package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/fatetable/internal/api/request"
	"github.com/mcoot/fatetable/internal/config"
	"github.com/mcoot/fatetable/internal/dependencies/clock"
	"github.com/mcoot/fatetable/internal/dependencies/random"
	"github.com/mcoot/fatetable/internal/services/table"
	"github.com/mcoot/fatetable/internal/storage"
	"github.com/mcoot/fatetable/internal/storage/memory"
	redisstorage "github.com/mcoot/fatetable/internal/storage/redis"
	"github.com/mcoot/fatetable/internal/ws"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.TableStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Table engine
	Processor  *table.Processor
	Registry   *ws.Registry
	Notifier   *ws.Notifier
	Dispatcher *ws.Dispatcher
	Websocket  *ws.Handler

	closers []func() error
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// TableIDMode selects where new table ids come from (default: caller)
	TableIDMode request.TableIDMode
	// Websocket holds websocket endpoint settings (optional)
	// If nil, ws.DefaultHandlerConfig() is used
	Websocket *ws.HandlerConfig
}

// ConfigFromEnv maps the server configuration onto a factory Config
func ConfigFromEnv(cfg config.Config, logger *slog.Logger) Config {
	fc := Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		TableIDMode: request.TableIDMode(cfg.TableIDMode),
		Websocket:   &ws.HandlerConfig{LeaveOnDisconnect: cfg.LeaveOnDisconnect},
	}
	if cfg.StorageType == config.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.TableTTL = cfg.TableTTL
		fc.RedisConfig = &redisCfg
	}
	return fc
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.TableStore
	var closers []func() error
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	switch storageType {
	case config.StorageTypeMemory:
		store = memory.New()
	case config.StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		store = redisStore
		closers = append(closers, redisStore.Close)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	wsCfg := ws.DefaultHandlerConfig()
	if cfg.Websocket != nil {
		wsCfg = *cfg.Websocket
	}

	app := newWithDependencies(store, clock.New(), random.New(), cfg.TableIDMode, wsCfg, logger)
	app.closers = append(app.closers, closers...)
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.TableStore,
	clk clock.Clock,
	rnd random.Random,
	mode request.TableIDMode,
	wsCfg ws.HandlerConfig,
	logger *slog.Logger,
) *App {
	if mode == "" {
		mode = request.TableIDFromCaller
	}

	processor := table.NewProcessor(store, clk, rnd, logger)
	registry := ws.NewRegistry()
	notifier := ws.NewNotifier(registry, rnd, logger)
	dispatcher := ws.NewDispatcher(processor, notifier, mode, logger)
	handler := ws.NewHandler(registry, dispatcher, rnd, wsCfg, logger)

	return &App{
		Storage:    store,
		Clock:      clk,
		Random:     rnd,
		Processor:  processor,
		Registry:   registry,
		Notifier:   notifier,
		Dispatcher: dispatcher,
		Websocket:  handler,
	}
}

// Close stops the command processor and releases storage connections
func (a *App) Close() error {
	a.Processor.Close()
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
