package ws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/fatetable/internal/api/response"
	"github.com/mcoot/fatetable/internal/dependencies/mocks"
	"github.com/mcoot/fatetable/internal/model"
	"github.com/mcoot/fatetable/internal/testutil"
)

type NotifierSuite struct {
	suite.Suite
	registry *Registry
	notifier *Notifier
	logs     *testutil.LogBuffer
	ctx      context.Context
	table    *model.Table
}

func TestNotifierSuite(t *testing.T) {
	suite.Run(t, new(NotifierSuite))
}

func (s *NotifierSuite) SetupTest() {
	logger, logs := testutil.CaptureLogger()
	s.logs = logs
	s.registry = NewRegistry()
	s.notifier = NewNotifier(s.registry, mocks.NewMockRandom(), logger)
	s.ctx = context.Background()

	s.table = model.NewTable("t1", "Session A", "gm1", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.table.Join(model.Player{User: "p1", Name: "Cynere"})
	s.table.Join(model.Player{User: "p2", Name: "Landon"})
}

func (s *NotifierSuite) connect(user model.UserID) *fakeConn {
	conn := newFakeConn("conn-" + string(user))
	s.registry.Put(user, conn)
	return conn
}

func (s *NotifierSuite) TestBroadcastReachesEveryConnectedUserOnce() {
	gm := s.connect("gm1")
	p1 := s.connect("p1")
	p2 := s.connect("p2")
	outsider := s.connect("outsider")

	delivered := s.notifier.Broadcast(s.ctx, s.table)

	s.Equal(3, delivered)
	for user, conn := range map[model.UserID]*fakeConn{"gm1": gm, "p1": p1, "p2": p2} {
		msgs := conn.messages()
		s.Require().Len(msgs, 1, "user %s", user)
		s.Equal(response.TypeTable, msgs[0].Type)
		s.Equal(string(user), msgs[0].Self)
		s.Require().NotNil(msgs[0].Table)
		s.Equal("t1", msgs[0].Table.ID)
		s.Len(msgs[0].Table.Players, 2)
	}
	s.Empty(outsider.messages())
}

func (s *NotifierSuite) TestBroadcastSkipsDisconnectedUsers() {
	gm := s.connect("gm1")

	delivered := s.notifier.Broadcast(s.ctx, s.table)

	s.Equal(1, delivered)
	s.Len(gm.messages(), 1)
}

func (s *NotifierSuite) TestBroadcastMessageIDsAreDistinct() {
	gm := s.connect("gm1")
	p1 := s.connect("p1")

	s.notifier.Broadcast(s.ctx, s.table)

	s.NotEqual(gm.messages()[0].ID, p1.messages()[0].ID)
}

func (s *NotifierSuite) TestBroadcastFailureIsIsolated() {
	gm := s.connect("gm1")
	p1 := s.connect("p1")
	p1.sendErr = ErrSendBufferFull
	p2 := s.connect("p2")

	delivered := s.notifier.Broadcast(s.ctx, s.table)

	s.Equal(2, delivered)
	s.Len(gm.messages(), 1)
	s.Len(p2.messages(), 1)
	s.Contains(s.logs.String(), "ws failed to deliver table")
}

func (s *NotifierSuite) TestDisconnectOrphans() {
	p1 := s.connect("p1")
	p2 := s.connect("p2")

	s.notifier.DisconnectOrphans(s.ctx, []model.UserID{"p1", "p2", "never-connected"})

	for _, conn := range []*fakeConn{p1, p2} {
		closed, reason := conn.isClosed()
		s.True(closed)
		s.Equal(CloseReasonTableClosed, reason)
	}
	s.Equal(0, s.registry.Len())
}

func (s *NotifierSuite) TestSendError() {
	conn := newFakeConn("c1")

	s.notifier.SendError(s.ctx, conn, "p1", "req-1", model.ErrPlayerNotFound)

	msgs := conn.messages()
	s.Require().Len(msgs, 1)
	s.Equal(response.TypeError, msgs[0].Type)
	s.Require().NotNil(msgs[0].Error)
	s.Equal("req-1", msgs[0].Error.RequestID)
	s.Equal(412, msgs[0].Error.Code)
	s.Equal("Player not found", msgs[0].Error.Reason)
}

func (s *NotifierSuite) TestSendErrorToNilConn() {
	s.NotPanics(func() {
		s.notifier.SendError(s.ctx, nil, "p1", "", errors.New("boom"))
	})
}
