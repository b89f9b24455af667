package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestSchedulerFiresInDueOrder(t *testing.T) {
	clock := NewMockTimeProvider(epoch0)
	s := NewScheduler(clock)

	var order []string
	s.After(30*time.Millisecond, nil, func() { order = append(order, "c") })
	s.After(10*time.Millisecond, nil, func() { order = append(order, "a") })
	s.After(10*time.Millisecond, nil, func() { order = append(order, "b") })

	clock.Advance(9 * time.Millisecond)
	assert.Equal(t, 0, s.Update())

	clock.Advance(time.Millisecond)
	assert.Equal(t, 2, s.Update())
	assert.Equal(t, []string{"a", "b"}, order)

	clock.Advance(time.Hour)
	assert.Equal(t, 1, s.Update())
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerChainsFromDueTime(t *testing.T) {
	clock := NewMockTimeProvider(epoch0)
	s := NewScheduler(clock)

	var fired []time.Time
	s.After(100*time.Millisecond, nil, func() {
		fired = append(fired, s.Now())
		s.After(200*time.Millisecond, nil, func() {
			fired = append(fired, s.Now())
		})
	})

	clock.Advance(time.Second)
	assert.Equal(t, 2, s.Update())
	require.Len(t, fired, 2)
	assert.Equal(t, epoch0.Add(100*time.Millisecond), fired[0])
	assert.Equal(t, epoch0.Add(300*time.Millisecond), fired[1])
}

func TestEpochInvalidatesStaleTimers(t *testing.T) {
	clock := NewMockTimeProvider(epoch0)
	s := NewScheduler(clock)
	var e Epoch

	staleRan := false
	s.After(50*time.Millisecond, &e, func() { staleRan = true })
	assert.Equal(t, 1, s.Pending())

	e.Advance()
	assert.Equal(t, 0, s.Pending())

	freshRan := false
	s.After(50*time.Millisecond, &e, func() { freshRan = true })

	clock.Advance(time.Second)
	s.Update()
	assert.False(t, staleRan)
	assert.True(t, freshRan)
}

func TestTimerStop(t *testing.T) {
	clock := NewMockTimeProvider(epoch0)
	s := NewScheduler(clock)

	ran := false
	tm := s.After(10*time.Millisecond, nil, func() { ran = true })
	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop(), "second stop is a no-op")

	clock.Advance(time.Second)
	s.Update()
	assert.False(t, ran)
}

func TestZeroDelayFiresOnNextUpdate(t *testing.T) {
	clock := NewMockTimeProvider(epoch0)
	s := NewScheduler(clock)

	ran := false
	s.After(-time.Second, nil, func() { ran = true })
	s.Update()
	assert.True(t, ran)
}
