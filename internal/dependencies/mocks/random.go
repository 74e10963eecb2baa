package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/fatetable/internal/dependencies/random"
)

// MockRandom is a deterministic Random for tests. Queued values are handed
// out in order; once a queue is drained Intn and String return zero values
// and UUID falls back to a numbered "mock-uuid-N" sequence.
type MockRandom struct {
	mu sync.Mutex

	intnResults   []int
	stringResults []string
	uuidResults   []string
	uuidCounter   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.intnResults) == 0 {
		return 0
	}
	result := r.intnResults[0]
	r.intnResults = r.intnResults[1:]
	return result
}

func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stringResults) == 0 {
		return ""
	}
	result := r.stringResults[0]
	r.stringResults = r.stringResults[1:]
	return result
}

func (r *MockRandom) UUID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.uuidResults) > 0 {
		result := r.uuidResults[0]
		r.uuidResults = r.uuidResults[1:]
		return result
	}
	r.uuidCounter++
	return fmt.Sprintf("mock-uuid-%d", r.uuidCounter)
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnResults = append(r.intnResults, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stringResults = append(r.stringResults, values...)
}

// QueueUUID adds values to the UUID result queue
func (r *MockRandom) QueueUUID(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uuidResults = append(r.uuidResults, values...)
}

// Reset clears all queued results and restarts the UUID sequence
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intnResults = nil
	r.stringResults = nil
	r.uuidResults = nil
	r.uuidCounter = 0
}
