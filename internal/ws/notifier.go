package ws

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mcoot/fatetable/internal/api/apierr"
	"github.com/mcoot/fatetable/internal/api/response"
	"github.com/mcoot/fatetable/internal/dependencies/random"
	"github.com/mcoot/fatetable/internal/model"
)

// CloseReasonTableClosed is sent to players whose gamemaster left
const CloseReasonTableClosed = "table closed"

// Notifier pushes table state to connected users. Delivery is best effort:
// users without a connection are skipped and a failed send to one user does
// not affect the others.
type Notifier struct {
	registry *Registry
	random   random.Random
	logger   *slog.Logger
}

// NewNotifier creates a new Notifier
func NewNotifier(registry *Registry, random random.Random, logger *slog.Logger) *Notifier {
	return &Notifier{
		registry: registry,
		random:   random,
		logger:   logger.With(slog.String("component", "ws-notifier")),
	}
}

// Broadcast sends a snapshot of t to the gamemaster and every player that is
// connected. It returns the number of users the snapshot was queued for.
func (n *Notifier) Broadcast(ctx context.Context, t *model.Table) int {
	delivered := 0
	for user := range t.AllUsers() {
		conn, ok := n.registry.Get(user)
		if !ok {
			continue
		}
		msg := response.NewTableMessage(n.random.UUID(), user, t)
		if err := n.send(conn, msg); err != nil {
			n.logger.WarnContext(ctx, "ws failed to deliver table",
				slog.String("table", string(t.ID)),
				slog.String("user", string(user)),
				slog.Any("error", err))
			continue
		}
		delivered++
	}
	return delivered
}

// DisconnectOrphans closes the connections of users whose table was closed
// and unregisters them.
func (n *Notifier) DisconnectOrphans(ctx context.Context, users []model.UserID) {
	for _, user := range users {
		conn, ok := n.registry.Get(user)
		if !ok {
			continue
		}
		n.registry.RemoveConn(user, conn)
		if err := conn.Close(CloseReasonTableClosed); err != nil {
			n.logger.WarnContext(ctx, "ws failed to close orphan connection",
				slog.String("user", string(user)),
				slog.Any("error", err))
		}
	}
}

// SendError reports err to a single connection. requestID may be empty.
func (n *Notifier) SendError(ctx context.Context, conn Conn, user model.UserID, requestID string, err error) {
	if conn == nil {
		return
	}
	status, apiError := apierr.Resolve(err)
	msg := response.NewErrorMessage(n.random.UUID(), user, requestID, status, apiError.Message)
	if sendErr := n.send(conn, msg); sendErr != nil {
		n.logger.WarnContext(ctx, "ws failed to deliver error",
			slog.String("user", string(user)),
			slog.Any("error", sendErr))
	}
}

func (n *Notifier) send(conn Conn, msg response.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.Send(data)
}
