package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/fatetable/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 16 * 1024

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is a websocket connection owned by one user. Outgoing messages are
// queued on a buffered channel and written by writePump; incoming messages
// are read by readPump on the handler goroutine.
type Client struct {
	id     string
	user   model.UserID
	conn   *websocket.Conn
	send   chan []byte
	logger *slog.Logger

	closeOnce   sync.Once
	closed      chan struct{}
	closeReason string
}

// NewClient wraps an upgraded websocket connection
func NewClient(id string, user model.UserID, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		id:     id,
		user:   user,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger.With(slog.String("conn", id), slog.String("user", string(user))),
		closed: make(chan struct{}),
	}
}

// Ensure Client implements Conn
var _ Conn = (*Client)(nil)

func (c *Client) ID() string {
	return c.id
}

// User returns the user the connection belongs to
func (c *Client) User() model.UserID {
	return c.user
}

func (c *Client) Send(data []byte) error {
	select {
	case <-c.closed:
		return ErrConnClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *Client) Close(reason string) error {
	c.closeOnce.Do(func() {
		c.closeReason = reason
		close(c.closed)
	})
	return nil
}

// writePump writes queued messages and keepalive pings until the client is
// closed or a write fails. Messages queued before Close are flushed before
// the close frame.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			if err := c.write(websocket.TextMessage, message); err != nil {
				c.logger.Debug("ws write failed", slog.Any("error", err))
				_ = c.Close("")
				return
			}

		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("ws ping failed", slog.Any("error", err))
				_ = c.Close("")
				return
			}

		case <-c.closed:
			c.flush()
			frame := websocket.FormatCloseMessage(websocket.CloseNormalClosure, c.closeReason)
			_ = c.conn.WriteControl(websocket.CloseMessage, frame, time.Now().Add(writeWait))
			return
		}
	}
}

func (c *Client) flush() {
	for {
		select {
		case message := <-c.send:
			if err := c.write(websocket.TextMessage, message); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Client) write(messageType int, data []byte) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

// readPump delivers every text message to handle until the peer goes away
// or the client is closed.
func (c *Client) readPump(handle func(data []byte)) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	// writePump answers the close frame once queued messages are flushed
	c.conn.SetCloseHandler(func(int, string) error { return nil })

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("ws read failed", slog.Any("error", err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		handle(data)
	}
}
