package table

import (
	"context"
	"fmt"

	"github.com/mcoot/fatetable/internal/model"
)

const (
	// TableIDLength is the length of generated table ids
	TableIDLength = 6
	// TableIDAlphabet is the characters used in generated table ids (avoid confusing chars)
	TableIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// maxIDAttempts bounds the retry loops that look for an unused id
	maxIDAttempts = 32
)

func (p *Processor) apply(ctx context.Context, user model.UserID, cmd model.Command) (*Result, error) {
	switch c := cmd.(type) {
	case model.Create:
		return p.create(ctx, user, c)
	case model.Join:
		return p.join(ctx, user, c)
	case model.UpdateFatePoints:
		return p.updateFatePoints(ctx, user, c)
	case model.SpendFatePoint:
		return p.spendFatePoint(ctx, user)
	case model.AddAspect:
		return p.addAspect(ctx, user, c)
	case model.RemoveAspect:
		return p.removeAspect(ctx, user, c)
	case model.Leave:
		return p.leave(ctx, user)
	}
	return nil, fmt.Errorf("%w: %T", model.ErrInvalidCommand, cmd)
}

func (p *Processor) create(ctx context.Context, user model.UserID, c model.Create) (*Result, error) {
	if c.TableID != "" {
		existing, err := p.storage.FindByID(ctx, c.TableID)
		if err != nil {
			return nil, fmt.Errorf("find table: %w", err)
		}
		if existing != nil {
			return nil, model.ErrConflict
		}
	}

	if err := p.ensureNoRole(ctx, user); err != nil {
		return nil, err
	}

	id := c.TableID
	if id == "" {
		var err error
		if id, err = p.newTableID(ctx); err != nil {
			return nil, err
		}
	}

	return p.save(ctx, model.NewTable(id, c.Title, user, p.clock.Now()))
}

func (p *Processor) join(ctx context.Context, user model.UserID, c model.Join) (*Result, error) {
	if err := p.ensureNoRole(ctx, user); err != nil {
		return nil, err
	}

	t, err := p.storage.FindByID(ctx, c.TableID)
	if err != nil {
		return nil, fmt.Errorf("find table: %w", err)
	}
	if t == nil {
		return nil, model.ErrTableNotFound
	}
	if t.Gamemaster == user {
		return nil, model.ErrOperationForbidden
	}

	if !t.Join(model.Player{User: user, Name: c.Name, Aspects: []model.Aspect{}}) {
		return nil, model.ErrOperationForbidden
	}
	return p.save(ctx, t)
}

func (p *Processor) updateFatePoints(ctx context.Context, user model.UserID, c model.UpdateFatePoints) (*Result, error) {
	if c.FatePoints < 0 {
		return nil, model.ErrInvalidFatePoints
	}

	t, err := p.administeredTable(ctx, user)
	if err != nil {
		return nil, err
	}

	player := t.FindPlayer(c.PlayerID)
	if player == nil {
		return nil, model.ErrPlayerNotFound
	}
	player.FatePoints = c.FatePoints

	return p.save(ctx, t)
}

func (p *Processor) spendFatePoint(ctx context.Context, user model.UserID) (*Result, error) {
	t, err := p.storage.FindByPlayer(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("find table: %w", err)
	}
	if t == nil {
		return nil, model.ErrPlayerNotFound
	}

	player := t.FindPlayer(user)
	if player.FatePoints <= 0 {
		return nil, model.ErrOperationForbidden
	}
	player.FatePoints--

	return p.save(ctx, t)
}

func (p *Processor) addAspect(ctx context.Context, user model.UserID, c model.AddAspect) (*Result, error) {
	t, err := p.administeredTable(ctx, user)
	if err != nil {
		return nil, err
	}

	var player *model.Player
	if c.PlayerID != nil {
		if player = t.FindPlayer(*c.PlayerID); player == nil {
			return nil, model.ErrPlayerNotFound
		}
	}

	id, err := p.newAspectID(t)
	if err != nil {
		return nil, err
	}

	aspect := model.Aspect{ID: id, Name: c.Name}
	if player != nil {
		player.AddAspect(aspect)
	} else {
		t.AddAspect(aspect)
	}

	return p.save(ctx, t)
}

// removeAspect is a no-op when no aspect has the id; the unchanged table is
// still returned for broadcast.
func (p *Processor) removeAspect(ctx context.Context, user model.UserID, c model.RemoveAspect) (*Result, error) {
	t, err := p.administeredTable(ctx, user)
	if err != nil {
		return nil, err
	}

	if !t.RemoveAspect(c.ID) {
		return &Result{Table: t}, nil
	}
	return p.save(ctx, t)
}

// leave never fails on missing roles. A gamemaster leaving deletes the table
// and orphans its players; a user without a role gets an empty Result.
func (p *Processor) leave(ctx context.Context, user model.UserID) (*Result, error) {
	owned, err := p.storage.FindByGamemaster(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("find table: %w", err)
	}
	if owned != nil {
		if err := p.storage.Delete(ctx, owned); err != nil {
			return nil, fmt.Errorf("delete table: %w", err)
		}
		return &Result{Closed: owned, Orphans: owned.PlayerUsers()}, nil
	}

	joined, err := p.storage.FindByPlayer(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("find table: %w", err)
	}
	if joined != nil {
		joined.RemovePlayer(user)
		return p.save(ctx, joined)
	}

	return &Result{}, nil
}

// ensureNoRole fails with ErrOperationForbidden if user is already a
// gamemaster or a player anywhere.
func (p *Processor) ensureNoRole(ctx context.Context, user model.UserID) error {
	owned, err := p.storage.FindByGamemaster(ctx, user)
	if err != nil {
		return fmt.Errorf("find table: %w", err)
	}
	if owned != nil {
		return model.ErrOperationForbidden
	}

	joined, err := p.storage.FindByPlayer(ctx, user)
	if err != nil {
		return fmt.Errorf("find table: %w", err)
	}
	if joined != nil {
		return model.ErrOperationForbidden
	}
	return nil
}

// administeredTable returns the table user is gamemaster of
func (p *Processor) administeredTable(ctx context.Context, user model.UserID) (*model.Table, error) {
	t, err := p.storage.FindByGamemaster(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("find table: %w", err)
	}
	if t == nil {
		return nil, model.ErrTableNotFound
	}
	return t, nil
}

func (p *Processor) save(ctx context.Context, t *model.Table) (*Result, error) {
	t.UpdatedAt = p.clock.Now()
	t.Version++
	saved, err := p.storage.Save(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("save table: %w", err)
	}
	return &Result{Table: saved}, nil
}

func (p *Processor) newTableID(ctx context.Context) (model.TableID, error) {
	for range maxIDAttempts {
		id := model.TableID(p.random.String(TableIDLength, TableIDAlphabet))
		if id == "" {
			continue
		}
		existing, err := p.storage.FindByID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("find table: %w", err)
		}
		if existing == nil {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no unused table id after %d attempts", model.ErrInternal, maxIDAttempts)
}

// newAspectID returns an id not used by any aspect on the table
func (p *Processor) newAspectID(t *model.Table) (model.AspectID, error) {
	for range maxIDAttempts {
		id := model.AspectID(p.random.UUID())
		if id != "" && !t.HasAspect(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no unused aspect id after %d attempts", model.ErrInternal, maxIDAttempts)
}
