package profiler

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
	"github.com/stretchr/testify/assert"
)

func runFrames(p *Profiler, clock *timer.MockTimeProvider, n int, total time.Duration) {
	step := total / time.Duration(n)
	for i := 0; i < n-1; i++ {
		clock.Advance(step)
		p.Tick()
	}
	clock.Advance(total - step*time.Duration(n-1))
	p.Tick()
}

func TestProfilerStats(t *testing.T) {
	clock := timer.NewMockTimeProvider(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	p := NewProfiler(WithTimeProvider(clock), WithLogging(false))

	assert.Equal(t, Stats{}, p.Stats())

	runFrames(p, clock, 60, time.Second)
	runFrames(p, clock, 30, time.Second)
	runFrames(p, clock, 45, time.Second)

	s := p.Stats()
	assert.Equal(t, 3, s.Samples)
	assert.InDelta(t, 45, s.Current, 1e-9)
	assert.InDelta(t, 45, s.Average, 1e-9)
	assert.InDelta(t, 30, s.Min, 1e-9)
	assert.InDelta(t, 60, s.Max, 1e-9)
}

func TestProfilerWindowRollsOver(t *testing.T) {
	clock := timer.NewMockTimeProvider(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	p := NewProfiler(WithTimeProvider(clock), WithLogging(false), WithUpdateInterval(100*time.Millisecond))

	runFrames(p, clock, 1, 100*time.Millisecond)
	for i := 0; i < sampleWindow; i++ {
		runFrames(p, clock, 2, 100*time.Millisecond)
	}

	s := p.Stats()
	assert.Equal(t, sampleWindow, s.Samples)
	assert.InDelta(t, 20, s.Min, 1e-9)
	assert.InDelta(t, 20, s.Max, 1e-9)
}

func TestProfilerLogsWithoutPanicking(t *testing.T) {
	clock := timer.NewMockTimeProvider(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	p := NewProfiler(WithTimeProvider(clock))
	assert.False(t, p.Tick())
	clock.Advance(time.Second)
	assert.True(t, p.Tick())

	p.Reset()
	assert.Equal(t, 0, p.Stats().Samples)
}
