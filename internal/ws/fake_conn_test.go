package ws

import (
	"encoding/json"
	"sync"

	"github.com/mcoot/fatetable/internal/api/response"
)

// fakeConn records what was sent to it
type fakeConn struct {
	id string

	mu          sync.Mutex
	sent        [][]byte
	closed      bool
	closeReason string
	sendErr     error
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string {
	return c.id
}

func (c *fakeConn) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	if c.closed {
		return ErrConnClosed
	}
	c.sent = append(c.sent, data)
	return nil
}

func (c *fakeConn) Close(reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.closeReason = reason
	return nil
}

func (c *fakeConn) messages() []response.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	msgs := make([]response.Message, 0, len(c.sent))
	for _, data := range c.sent {
		var msg response.Message
		if err := json.Unmarshal(data, &msg); err == nil {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func (c *fakeConn) isClosed() (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed, c.closeReason
}
