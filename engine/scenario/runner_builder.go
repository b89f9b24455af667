package scenario

import (
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
)

type RunnerBuilderOption func(*runnerImpl)

// WithWorkers caps how many scenarios run at once.
//
// Parameters:
//   - n: the worker count, ignored when not positive
//
// Returns:
//   - RunnerBuilderOption: a function that sets the worker count
func WithWorkers(n int) RunnerBuilderOption {
	return func(r *runnerImpl) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithStep sets the simulated time between ticks.
func WithStep(d time.Duration) RunnerBuilderOption {
	return func(r *runnerImpl) {
		if d > 0 {
			r.step = d
		}
	}
}

// WithConfig sets the base config each scenario copies before applying its own changes.
func WithConfig(cfg *config.Config) RunnerBuilderOption {
	return func(r *runnerImpl) {
		if cfg != nil {
			r.base = cfg
		}
	}
}
