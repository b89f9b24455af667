package profiler

import (
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
)

// ProfilerBuilderOption is a functional option for configuring a Profiler.
type ProfilerBuilderOption func(*Profiler)

// WithTimeProvider sets the clock frames are measured against.
func WithTimeProvider(clock timer.TimeProvider) ProfilerBuilderOption {
	return func(p *Profiler) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithUpdateInterval sets how often an FPS sample is taken.
func WithUpdateInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithLogging enables or disables the periodic log line. Samples are recorded either way.
func WithLogging(enabled bool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logging = enabled
	}
}
