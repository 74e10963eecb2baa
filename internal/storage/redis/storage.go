package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/fatetable/internal/model"
	"github.com/mcoot/fatetable/internal/storage"
)

// Storage is a Redis-backed TableStore. Tables are stored as JSON values and
// tracked in an index set that the secondary lookups scan.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New connects to Redis and returns a storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	s := NewWithClient(client, cfg)
	if cfg.ResetOnOpen {
		if err := s.Reset(ctx); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return s, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.TableStore = (*Storage)(nil)

func (s *Storage) FindByID(ctx context.Context, id model.TableID) (*model.Table, error) {
	data, err := s.client.Get(ctx, s.tableKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var table model.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode table %s: %w", id, err)
	}
	return &table, nil
}

func (s *Storage) FindByGamemaster(ctx context.Context, user model.UserID) (*model.Table, error) {
	return s.find(ctx, func(t *model.Table) bool {
		return t.Gamemaster == user
	})
}

func (s *Storage) FindByPlayer(ctx context.Context, user model.UserID) (*model.Table, error) {
	return s.find(ctx, func(t *model.Table) bool {
		return t.FindPlayer(user) != nil
	})
}

func (s *Storage) Save(ctx context.Context, table *model.Table) (*model.Table, error) {
	data, err := json.Marshal(table)
	if err != nil {
		return nil, err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tableKey(table.ID), data, s.cfg.TableTTL)
	pipe.SAdd(ctx, s.tablesIndexKey(), string(table.ID))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return table.Clone(), nil
}

func (s *Storage) Delete(ctx context.Context, table *model.Table) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.tableKey(table.ID))
	pipe.SRem(ctx, s.tablesIndexKey(), string(table.ID))
	_, err := pipe.Exec(ctx)
	return err
}

// Reset deletes every key in the store's namespace
func (s *Storage) Reset(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.namespacePattern(), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan namespace: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// find scans every indexed table. Index entries whose table has expired are
// pruned on the way.
func (s *Storage) find(ctx context.Context, match func(*model.Table) bool) (*model.Table, error) {
	ids, err := s.client.SMembers(ctx, s.tablesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.tableKey(model.TableID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	var expired []any
	var found *model.Table
	for i, val := range values {
		if val == nil {
			expired = append(expired, ids[i])
			continue
		}
		if found != nil {
			continue
		}
		str, ok := val.(string)
		if !ok {
			continue
		}
		var table model.Table
		if err := json.Unmarshal([]byte(str), &table); err != nil {
			continue // Skip invalid data
		}
		if match(&table) {
			found = &table
		}
	}

	if len(expired) > 0 {
		if err := s.client.SRem(ctx, s.tablesIndexKey(), expired...).Err(); err != nil {
			return nil, err
		}
	}
	return found, nil
}
