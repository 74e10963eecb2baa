package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/fatetable/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.TableTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) saveTable(id model.TableID, gm model.UserID, players ...model.UserID) *model.Table {
	table := model.NewTable(id, "Title "+string(id), gm, s.now)
	for _, p := range players {
		table.Join(model.Player{User: p, Name: string(p)})
	}
	saved, err := s.storage.Save(s.ctx, table)
	s.Require().NoError(err)
	return saved
}

func (s *StorageSuite) TestSaveAndFindByID() {
	table := model.NewTable("t1", "Session A", "gm1", s.now)
	table.Join(model.Player{User: "p1", Name: "Cynere", FatePoints: 2})
	table.AddAspect(model.Aspect{ID: "a1", Name: "Fog"})
	table.FindPlayer("p1").AddAspect(model.Aspect{ID: "a2", Name: "Wounded"})

	_, err := s.storage.Save(s.ctx, table)
	s.Require().NoError(err)

	found, err := s.storage.FindByID(s.ctx, "t1")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("Session A", found.Title)
	s.Equal(model.UserID("gm1"), found.Gamemaster)
	s.Equal([]model.Aspect{{ID: "a1", Name: "Fog"}}, found.Aspects)
	s.Require().Len(found.Players, 1)
	s.Equal(2, found.Players[0].FatePoints)
	s.Equal([]model.Aspect{{ID: "a2", Name: "Wounded"}}, found.Players[0].Aspects)
	s.True(s.now.Equal(found.CreatedAt))
}

func (s *StorageSuite) TestFindByIDNotFound() {
	found, err := s.storage.FindByID(s.ctx, "missing")
	s.NoError(err)
	s.Nil(found)
}

func (s *StorageSuite) TestFindByGamemasterAndPlayer() {
	s.saveTable("t1", "gm1", "p1")
	s.saveTable("t2", "gm2", "p2", "p3")

	byGM, err := s.storage.FindByGamemaster(s.ctx, "gm2")
	s.Require().NoError(err)
	s.Require().NotNil(byGM)
	s.Equal(model.TableID("t2"), byGM.ID)

	byPlayer, err := s.storage.FindByPlayer(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().NotNil(byPlayer)
	s.Equal(model.TableID("t1"), byPlayer.ID)

	none, err := s.storage.FindByPlayer(s.ctx, "gm1")
	s.NoError(err)
	s.Nil(none)
}

func (s *StorageSuite) TestSecondaryLookupOnEmptyStore() {
	found, err := s.storage.FindByGamemaster(s.ctx, "gm1")
	s.NoError(err)
	s.Nil(found)
}

func (s *StorageSuite) TestSaveSetsTTLAndIndex() {
	s.saveTable("t1", "gm1")

	s.Equal(time.Hour, s.mini.TTL(s.storage.tableKey("t1")))

	members, err := s.mini.Members(s.storage.tablesIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{"t1"}, members)
}

func (s *StorageSuite) TestDefaultConfigKeepsIdleTables() {
	_ = s.storage.Close()
	s.storage = NewWithClient(redis.NewClient(&redis.Options{Addr: s.mini.Addr()}), DefaultConfig())
	s.saveTable("t1", "gm1", "p1")

	s.Zero(s.mini.TTL(s.storage.tableKey("t1")))
	s.mini.FastForward(25 * time.Hour)

	found, err := s.storage.FindByGamemaster(s.ctx, "gm1")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(model.TableID("t1"), found.ID)
}

func (s *StorageSuite) TestDelete() {
	table := s.saveTable("t1", "gm1")

	s.Require().NoError(s.storage.Delete(s.ctx, table))

	found, err := s.storage.FindByID(s.ctx, "t1")
	s.NoError(err)
	s.Nil(found)
	s.False(s.mini.Exists(s.storage.tableKey("t1")))
}

func (s *StorageSuite) TestExpiredTablesArePrunedFromIndex() {
	s.saveTable("t1", "gm1")
	s.saveTable("t2", "gm2")

	s.mini.Del(s.storage.tableKey("t1"))

	found, err := s.storage.FindByGamemaster(s.ctx, "gm2")
	s.Require().NoError(err)
	s.Require().NotNil(found)

	members, err := s.mini.Members(s.storage.tablesIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{"t2"}, members)
}

func (s *StorageSuite) TestResetClearsOnlyNamespace() {
	s.saveTable("t1", "gm1")
	s.Require().NoError(s.mini.Set("other:key", "keep"))

	s.Require().NoError(s.storage.Reset(s.ctx))

	s.False(s.mini.Exists(s.storage.tableKey("t1")))
	s.False(s.mini.Exists(s.storage.tablesIndexKey()))
	s.True(s.mini.Exists("other:key"))
}

func (s *StorageSuite) TestNewResetsNamespace() {
	s.saveTable("t1", "gm1")

	cfg := DefaultConfig()
	cfg.URL = "redis://" + s.mini.Addr()
	opened, err := New(cfg)
	s.Require().NoError(err)
	defer func() { _ = opened.Close() }()

	found, err := opened.FindByID(s.ctx, "t1")
	s.NoError(err)
	s.Nil(found)
}

func (s *StorageSuite) TestNewInvalidURL() {
	cfg := DefaultConfig()
	cfg.URL = "not-a-url"
	_, err := New(cfg)
	s.Error(err)
}
