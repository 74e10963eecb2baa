package storage

import (
	"context"

	"github.com/mcoot/fatetable/internal/model"
)

// TableStore holds every live table. Lookups that find nothing return a nil
// table and a nil error. Implementations hand out copies, so callers may
// mutate a returned table freely and must Save it to commit.
//
// A TableStore is safe for concurrent use but does not serialize
// read-modify-write sequences; the command processor does that.
type TableStore interface {
	FindByID(ctx context.Context, id model.TableID) (*model.Table, error)

	// FindByGamemaster returns the table administered by user
	FindByGamemaster(ctx context.Context, user model.UserID) (*model.Table, error)

	// FindByPlayer returns the table where user is seated as a player
	FindByPlayer(ctx context.Context, user model.UserID) (*model.Table, error)

	// Save upserts by table id and returns the stored value
	Save(ctx context.Context, table *model.Table) (*model.Table, error)

	// Delete removes the table with the same id, if any
	Delete(ctx context.Context, table *model.Table) error
}
