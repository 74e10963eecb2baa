package factory

import (
	"time"

	"github.com/mcoot/fatetable/internal/api/request"
	"github.com/mcoot/fatetable/internal/dependencies/mocks"
	"github.com/mcoot/fatetable/internal/storage/memory"
	"github.com/mcoot/fatetable/internal/testutil"
	"github.com/mcoot/fatetable/internal/ws"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockRandom  *mocks.MockRandom
	MemoryStore *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithMode(request.TableIDFromCaller)
}

// NewTestAppWithMode creates a test App using the given table id mode
func NewTestAppWithMode(mode request.TableIDMode) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, mode, ws.DefaultHandlerConfig(), testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		MemoryStore: store,
	}
}
