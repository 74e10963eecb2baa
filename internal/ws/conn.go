package ws

import "errors"

var (
	// ErrConnClosed is returned when sending on a closed connection
	ErrConnClosed = errors.New("connection closed")
	// ErrSendBufferFull is returned when a slow client cannot take more messages
	ErrSendBufferFull = errors.New("send buffer full")
)

// Conn is the live connection of one user. Send and Close must be safe for
// concurrent use and must not block.
type Conn interface {
	// ID identifies the physical connection
	ID() string

	// Send queues a text message for delivery
	Send(data []byte) error

	// Close sends a normal-closure frame with reason and tears the connection down
	Close(reason string) error
}
