package memory

import (
	"context"
	"sync"

	"github.com/mcoot/fatetable/internal/model"
	"github.com/mcoot/fatetable/internal/storage"
)

// Storage is an in-memory TableStore
type Storage struct {
	mu     sync.RWMutex
	tables map[model.TableID]*model.Table
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		tables: make(map[model.TableID]*model.Table),
	}
}

// Ensure Storage implements the interface
var _ storage.TableStore = (*Storage)(nil)

func (s *Storage) FindByID(ctx context.Context, id model.TableID) (*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tables[id].Clone(), nil
}

func (s *Storage) FindByGamemaster(ctx context.Context, user model.UserID) (*model.Table, error) {
	return s.find(func(t *model.Table) bool {
		return t.Gamemaster == user
	}), nil
}

func (s *Storage) FindByPlayer(ctx context.Context, user model.UserID) (*model.Table, error) {
	return s.find(func(t *model.Table) bool {
		return t.FindPlayer(user) != nil
	}), nil
}

func (s *Storage) Save(ctx context.Context, table *model.Table) (*model.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table.ID] = table.Clone()
	return table.Clone(), nil
}

func (s *Storage) Delete(ctx context.Context, table *model.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, table.ID)
	return nil
}

// Len returns the number of stored tables
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}

func (s *Storage) find(match func(*model.Table) bool) *model.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tables {
		if match(t) {
			return t.Clone()
		}
	}
	return nil
}
