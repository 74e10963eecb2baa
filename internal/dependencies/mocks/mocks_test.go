package mocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockRandomQueues(t *testing.T) {
	r := NewMockRandom()
	r.QueueString("ABC", "DEF")
	r.QueueIntn(3)
	r.QueueUUID("fixed")

	assert.Equal(t, "ABC", r.String(3, "x"))
	assert.Equal(t, "DEF", r.String(3, "x"))
	assert.Empty(t, r.String(3, "x"))
	assert.Equal(t, 3, r.Intn(10))
	assert.Equal(t, 0, r.Intn(10))
	assert.Equal(t, "fixed", r.UUID())
	assert.Equal(t, "mock-uuid-1", r.UUID())
	assert.Equal(t, "mock-uuid-2", r.UUID())

	r.Reset()
	assert.Equal(t, "mock-uuid-1", r.UUID())
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMockClock(start)

	assert.Equal(t, start, c.Now())
	c.Advance(time.Minute)
	assert.Equal(t, start.Add(time.Minute), c.Now())
	c.Set(start)
	assert.Equal(t, start, c.Now())
}
