package factory

import (
	"time"

	"github.com/starkrivals/starkrivals/internal/dependencies/mocks"
	"github.com/starkrivals/starkrivals/internal/services/combat"
	"github.com/starkrivals/starkrivals/internal/services/identity"
	"github.com/starkrivals/starkrivals/internal/storage/memory"
	"github.com/starkrivals/starkrivals/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, combat.DefaultPolicy(), identity.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
