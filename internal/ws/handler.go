package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/fatetable/internal/api/middleware"
	"github.com/mcoot/fatetable/internal/dependencies/random"
	"github.com/mcoot/fatetable/internal/model"
)

const (
	pingMessage = "ping"
	pongMessage = "pong"

	// CloseReasonReplaced is sent to a connection superseded by a newer one of the same user
	CloseReasonReplaced = "replaced by a newer connection"
)

// HandlerConfig holds websocket endpoint settings
type HandlerConfig struct {
	// LeaveOnDisconnect issues a Leave for a user whose connection drops
	LeaveOnDisconnect bool
}

// DefaultHandlerConfig returns the default endpoint settings
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		LeaveOnDisconnect: true,
	}
}

// Handler is the websocket endpoint. Each connection is bound to the user
// assigned by the identity middleware for its whole lifetime.
type Handler struct {
	registry   *Registry
	dispatcher *Dispatcher
	random     random.Random
	cfg        HandlerConfig
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewHandler creates a new websocket Handler
func NewHandler(
	registry *Registry,
	dispatcher *Dispatcher,
	random random.Random,
	cfg HandlerConfig,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		registry:   registry,
		dispatcher: dispatcher,
		random:     random,
		cfg:        cfg,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "ws-handler")),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response
		h.logger.Warn("ws upgrade failed", slog.Any("error", err))
		return
	}

	ctx := context.WithoutCancel(r.Context())
	client := NewClient(h.random.UUID(), user, conn, h.logger)

	if prev, ok := h.registry.Put(user, client); ok {
		_ = prev.Close(CloseReasonReplaced)
	}
	h.logger.Info("ws connected",
		slog.String("user", string(client.User())),
		slog.String("conn", client.ID()))

	go client.writePump()
	client.readPump(func(data []byte) {
		if string(data) == pingMessage {
			_ = client.Send([]byte(pongMessage))
			return
		}
		h.dispatcher.Dispatch(ctx, client.User(), client, data)
	})

	_ = client.Close("")
	current := h.registry.RemoveConn(client.User(), client)
	h.logger.Info("ws disconnected",
		slog.String("user", string(client.User())),
		slog.String("conn", client.ID()))

	if current && h.cfg.LeaveOnDisconnect {
		if err := h.dispatcher.Execute(ctx, client.User(), nil, "", model.Leave{}); err != nil {
			h.logger.Warn("ws leave on disconnect failed",
				slog.String("user", string(client.User())),
				slog.Any("error", err))
		}
	}
}
