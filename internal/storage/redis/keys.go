package redis

import (
	"fmt"

	"github.com/mcoot/fatetable/internal/model"
)

// tableKey returns the Redis key holding a Table
func (s *Storage) tableKey(id model.TableID) string {
	return fmt.Sprintf("%s:table:%s", s.cfg.KeyPrefix, id)
}

// tablesIndexKey returns the Redis key for the SET of all table ids
func (s *Storage) tablesIndexKey() string {
	return fmt.Sprintf("%s:idx:tables", s.cfg.KeyPrefix)
}

// namespacePattern matches every key owned by the store
func (s *Storage) namespacePattern() string {
	return s.cfg.KeyPrefix + ":*"
}
