package ws

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/fatetable/internal/model"
)

func TestRegistryPutGetRemove(t *testing.T) {
	r := NewRegistry()
	conn := newFakeConn("c1")

	prev, replaced := r.Put("u1", conn)
	assert.Nil(t, prev)
	assert.False(t, replaced)

	got, ok := r.Get("u1")
	assert.True(t, ok)
	assert.Equal(t, Conn(conn), got)

	r.Remove("u1")
	_, ok = r.Get("u1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryLastWriterWins(t *testing.T) {
	r := NewRegistry()
	first := newFakeConn("c1")
	second := newFakeConn("c2")

	r.Put("u1", first)
	prev, replaced := r.Put("u1", second)

	assert.True(t, replaced)
	assert.Equal(t, Conn(first), prev)
	got, _ := r.Get("u1")
	assert.Equal(t, Conn(second), got)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryPutSameConnIsNotAReplacement(t *testing.T) {
	r := NewRegistry()
	conn := newFakeConn("c1")

	r.Put("u1", conn)
	_, replaced := r.Put("u1", conn)

	assert.False(t, replaced)
}

func TestRegistryRemoveConnIgnoresStaleConnection(t *testing.T) {
	r := NewRegistry()
	stale := newFakeConn("c1")
	current := newFakeConn("c2")
	r.Put("u1", stale)
	r.Put("u1", current)

	assert.False(t, r.RemoveConn("u1", stale))
	got, ok := r.Get("u1")
	assert.True(t, ok)
	assert.Equal(t, Conn(current), got)

	assert.True(t, r.RemoveConn("u1", current))
	assert.False(t, r.RemoveConn("u1", current))
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			user := model.UserID(fmt.Sprintf("u%d", i%10))
			conn := newFakeConn(fmt.Sprintf("c%d", i))
			r.Put(user, conn)
			r.Get(user)
			r.RemoveConn(user, conn)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, r.Len(), 10)
}
