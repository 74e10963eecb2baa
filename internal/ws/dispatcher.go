package ws

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/mcoot/fatetable/internal/api/request"
	"github.com/mcoot/fatetable/internal/model"
	"github.com/mcoot/fatetable/internal/services/table"
)

// Dispatcher turns inbound messages into processor commands and hands the
// outcome to the Notifier. Failures go back to the originating connection
// only.
type Dispatcher struct {
	processor table.ProcessorInterface
	notifier  *Notifier
	mode      request.TableIDMode
	logger    *slog.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(
	processor table.ProcessorInterface,
	notifier *Notifier,
	mode request.TableIDMode,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		processor: processor,
		notifier:  notifier,
		mode:      mode,
		logger:    logger.With(slog.String("component", "ws-dispatcher")),
	}
}

// Dispatch decodes payload and executes it on behalf of user. Decoding
// errors are reported as bad requests without reaching the processor.
func (d *Dispatcher) Dispatch(ctx context.Context, user model.UserID, conn Conn, payload []byte) {
	env, cmd, err := request.Decode(payload, d.mode)
	if err != nil {
		d.logger.DebugContext(ctx, "ws rejected message",
			slog.String("user", string(user)),
			slog.Any("error", err))
		d.notifier.SendError(ctx, conn, user, env.ID, err)
		return
	}
	if err = d.Execute(ctx, user, conn, env.ID, cmd); err != nil {
		d.logger.DebugContext(ctx, "ws command rejected",
			slog.String("user", string(user)),
			slog.String("command", cmd.Type()),
			slog.Any("error", err))
	}
}

// Execute applies cmd and notifies the affected users. conn receives the
// error, if any, and may be nil for commands issued by the server itself.
// The returned error has already been reported to conn.
func (d *Dispatcher) Execute(ctx context.Context, user model.UserID, conn Conn, requestID string, cmd model.Command) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.ErrorContext(ctx, "ws panic dispatching command",
				slog.String("user", string(user)),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())))
			err = fmt.Errorf("%w: %v", model.ErrInternal, rec)
			d.notifier.SendError(ctx, conn, user, requestID, err)
		}
	}()

	result, err := d.processor.Apply(ctx, user, cmd)
	if err != nil {
		d.notifier.SendError(ctx, conn, user, requestID, err)
		return err
	}

	if result.Table != nil {
		d.notifier.Broadcast(ctx, result.Table)
	}
	if result.Closed != nil {
		d.logger.InfoContext(ctx, "table closed",
			slog.String("table", string(result.Closed.ID)),
			slog.Int("orphans", len(result.Orphans)))
		d.notifier.DisconnectOrphans(ctx, result.Orphans)
	}
	return nil
}
