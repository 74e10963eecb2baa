package table

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fatetable/internal/dependencies/mocks"
	"github.com/mcoot/fatetable/internal/model"
	"github.com/mcoot/fatetable/internal/storage/memory"
	"github.com/mcoot/fatetable/internal/testutil"
)

func newScenarioProcessor(t *testing.T) (*Processor, *memory.Storage) {
	t.Helper()
	store := memory.New()
	p := NewProcessor(
		store,
		mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		mocks.NewMockRandom(),
		testutil.NopLogger(),
	)
	t.Cleanup(p.Close)
	return p, store
}

// The walk-through a table goes through in a typical session
func TestSessionWalkthrough(t *testing.T) {
	ctx := context.Background()
	p, store := newScenarioProcessor(t)

	// Creating a table
	created, err := p.Apply(ctx, "gm1", model.Create{TableID: "t1", Title: "Session A"})
	require.NoError(t, err)
	assert.Equal(t, model.TableID("t1"), created.Table.ID)
	assert.Equal(t, "Session A", created.Table.Title)
	assert.Equal(t, model.UserID("gm1"), created.Table.Gamemaster)
	assert.Empty(t, created.Table.Players)
	assert.Empty(t, created.Table.Aspects)

	// A gamemaster cannot open a second table
	_, err = p.Apply(ctx, "gm1", model.Create{TableID: "t2", Title: "S2"})
	assert.ErrorIs(t, err, model.ErrOperationForbidden)

	// A player joins
	joined, err := p.Apply(ctx, "p1", model.Join{TableID: "t1", Name: "Cynere"})
	require.NoError(t, err)
	require.Len(t, joined.Table.Players, 1)
	assert.Equal(t, model.Player{User: "p1", Name: "Cynere", Aspects: []model.Aspect{}}, joined.Table.Players[0])

	// Spending with nothing left fails and changes nothing
	_, err = p.Apply(ctx, "p1", model.SpendFatePoint{})
	assert.ErrorIs(t, err, model.ErrOperationForbidden)
	stored, _ := store.FindByID(ctx, "t1")
	assert.Equal(t, joined.Table, stored)

	// Aspects round-trip
	added, err := p.Apply(ctx, "gm1", model.AddAspect{Name: "Fog"})
	require.NoError(t, err)
	require.Len(t, added.Table.Aspects, 1)
	removed, err := p.Apply(ctx, "gm1", model.RemoveAspect{ID: added.Table.Aspects[0].ID})
	require.NoError(t, err)
	assert.Empty(t, removed.Table.Aspects)

	// The gamemaster leaves and the player is orphaned
	left, err := p.Apply(ctx, "gm1", model.Leave{})
	require.NoError(t, err)
	assert.Equal(t, []model.UserID{"p1"}, left.Orphans)
	gone, _ := store.FindByID(ctx, "t1")
	assert.Nil(t, gone)
	orphanTable, _ := store.FindByPlayer(ctx, "p1")
	assert.Nil(t, orphanTable)
}
