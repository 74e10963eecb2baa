package ws

import (
	"sync"

	"github.com/mcoot/fatetable/internal/model"
)

// Registry maps each user to its current connection
type Registry struct {
	mu    sync.RWMutex
	conns map[model.UserID]Conn
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[model.UserID]Conn),
	}
}

// Put registers conn for user, replacing any earlier connection. The replaced
// connection is returned so the caller can close it.
func (r *Registry) Put(user model.UserID, conn Conn) (Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.conns[user]
	r.conns[user] = conn
	if ok && prev == conn {
		return nil, false
	}
	return prev, ok
}

// Get returns the connection of user, if any
func (r *Registry) Get(user model.UserID) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[user]
	return conn, ok
}

// Remove unregisters user
func (r *Registry) Remove(user model.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, user)
}

// RemoveConn unregisters user only while conn is still its registered
// connection. It reports whether it removed anything, which is false when
// the user has reconnected in the meantime.
func (r *Registry) RemoveConn(user model.UserID, conn Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.conns[user]; ok && current == conn {
		delete(r.conns, user)
		return true
	}
	return false
}

// Len returns the number of registered users
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
