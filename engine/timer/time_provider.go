package timer

import (
	"sync"
	"time"
)

// TimeProvider is the monotonic clock every animator reads from.
type TimeProvider interface {
	// Now returns the current time.
	//
	// Returns:
	//   - time.Time: the current clock reading
	Now() time.Time
}

// WallClock provides the real system time with monotonic clock readings.
type WallClock struct{}

var _ TimeProvider = WallClock{}

// Now returns the current time with monotonic clock reading
func (WallClock) Now() time.Time {
	return time.Now()
}

// MockTimeProvider provides a controllable time source for testing.
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

var _ TimeProvider = &MockTimeProvider{}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current time for the mock
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
