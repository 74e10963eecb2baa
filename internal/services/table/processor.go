package table

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/mcoot/fatetable/internal/dependencies/clock"
	"github.com/mcoot/fatetable/internal/dependencies/random"
	"github.com/mcoot/fatetable/internal/model"
	"github.com/mcoot/fatetable/internal/storage"
)

// Result describes what a committed command changed
type Result struct {
	// Table is the post-command state to broadcast, or nil when nothing changed
	Table *model.Table

	// Closed is the table that was removed because its gamemaster left
	Closed *model.Table

	// Orphans are the players of Closed, now without a table
	Orphans []model.UserID
}

// Processor applies commands to the table store. All commands run one at a
// time on a single worker goroutine in submission order, so every
// find-validate-mutate-save sequence is a critical section.
type Processor struct {
	storage storage.TableStore
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	jobs      chan job
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type job struct {
	ctx   context.Context
	user  model.UserID
	cmd   model.Command
	reply chan reply
}

type reply struct {
	result *Result
	err    error
}

// NewProcessor creates a Processor and starts its worker
func NewProcessor(
	storage storage.TableStore,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Processor {
	p := &Processor{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "table-processor")),
		jobs:    make(chan job),
		done:    make(chan struct{}),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Apply runs cmd on behalf of user and waits for the outcome. Cancelling ctx
// abandons a command that is still waiting for the worker; once the worker
// has taken it, the command runs to completion.
func (p *Processor) Apply(ctx context.Context, user model.UserID, cmd model.Command) (*Result, error) {
	j := job{
		ctx:   context.WithoutCancel(ctx),
		user:  user,
		cmd:   cmd,
		reply: make(chan reply, 1),
	}

	select {
	case <-p.done:
		return nil, model.ErrProcessorClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	case p.jobs <- j:
	}

	r := <-j.reply
	return r.result, r.err
}

// GetTable returns the current state of a table
func (p *Processor) GetTable(ctx context.Context, id model.TableID) (*model.Table, error) {
	t, err := p.storage.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, model.ErrTableNotFound
	}
	return t, nil
}

// Close stops the worker. Commands already taken by the worker finish first.
func (p *Processor) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

func (p *Processor) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case j := <-p.jobs:
			j.reply <- p.process(j)
		}
	}
}

// process applies one command, converting a panic into ErrInternal so the
// worker keeps serving other tables. Commands mutate a copy and save last,
// so a panic leaves the store as it was.
func (p *Processor) process(j job) (r reply) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("panic applying command",
				slog.String("user", string(j.user)),
				slog.String("command", commandName(j.cmd)),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
			r = reply{err: fmt.Errorf("%w: %v", model.ErrInternal, rec)}
		}
	}()

	result, err := p.apply(j.ctx, j.user, j.cmd)
	if err != nil {
		p.logger.Debug("command rejected",
			slog.String("user", string(j.user)),
			slog.String("command", commandName(j.cmd)),
			slog.Any("error", err),
		)
		return reply{err: err}
	}

	p.logger.Debug("command applied",
		slog.String("user", string(j.user)),
		slog.String("command", commandName(j.cmd)),
	)
	return reply{result: result}
}

func commandName(cmd model.Command) string {
	if cmd == nil {
		return "<nil>"
	}
	return cmd.Type()
}

// Interface for dependency injection
type ProcessorInterface interface {
	Apply(ctx context.Context, user model.UserID, cmd model.Command) (*Result, error)
	GetTable(ctx context.Context, id model.TableID) (*model.Table, error)
}

var _ ProcessorInterface = (*Processor)(nil)
