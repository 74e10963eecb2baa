package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/fatetable/internal/api/handler"
	"github.com/mcoot/fatetable/internal/api/middleware"
	"github.com/mcoot/fatetable/internal/dependencies/random"
	"github.com/mcoot/fatetable/internal/services/table"
)

// TablePath is the websocket endpoint for table sessions
const TablePath = "/table"

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger    *slog.Logger
	Processor table.ProcessorInterface
	Random    random.Random
	Websocket http.Handler
	Version   string
	Commit    string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	tableHandler := handler.NewTableHandler(cfg.Processor)
	metaHandler := handler.NewMetaHandler(cfg.Version, cfg.Commit)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	identityMiddleware := middleware.Identity(cfg.Random)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	api.HandleFunc("/health", metaHandler.Health).Methods(http.MethodGet)
	api.HandleFunc("/version-info", metaHandler.VersionInfo).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}", tableHandler.Get).Methods(http.MethodGet)

	// Websocket endpoint
	wsHandler := loggingMiddleware(recoveryMiddleware(identityMiddleware(cfg.Websocket)))
	r.Handle(TablePath, wsHandler).Methods(http.MethodGet)

	return r
}
