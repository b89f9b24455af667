package scenario

import (
	"context"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
)

const defaultStep = 10 * time.Millisecond

// Epoch is the simulated start time of every run.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Runner executes scenarios concurrently, one isolated assembly per scenario.
type Runner interface {
	// Run executes the scenarios and returns one report per scenario, in input order.
	//
	// Parameters:
	//   - ctx: cancels unfinished runs, which then report ctx.Err()
	//   - scenarios: the scenarios to run
	//
	// Returns:
	//   - []Report: the reports
	Run(ctx context.Context, scenarios []Scenario) []Report
}

type runnerImpl struct {
	workers int
	step    time.Duration
	base    *config.Config
}

var _ Runner = &runnerImpl{}

// NewRunner creates a Runner.
//
// Parameters:
//   - options: builder options
//
// Returns:
//   - Runner: the runner
func NewRunner(options ...RunnerBuilderOption) Runner {
	r := &runnerImpl{
		workers: runtime.NumCPU(),
		step:    defaultStep,
		base:    config.Default(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *runnerImpl) Run(ctx context.Context, scenarios []Scenario) []Report {
	if len(scenarios) == 0 {
		return nil
	}
	reports := make([]Report, len(scenarios))

	pool := worker.NewDynamicWorkerPool(min(r.workers, len(scenarios)), len(scenarios), time.Second)
	defer pool.Stop()

	// pool.Wait blocks until workers idle out; the WaitGroup is the batch barrier.
	var wg sync.WaitGroup
	for i, sc := range scenarios {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: sc.Name,
			Do: func() (any, error) {
				defer wg.Done()
				reports[i] = r.runOne(ctx, sc)
				return reports[i], reports[i].Err
			},
		})
	}
	wg.Wait()
	return reports
}

func (r *runnerImpl) runOne(ctx context.Context, sc Scenario) Report {
	cfg := r.base.Clone()
	if sc.Configure != nil {
		sc.Configure(cfg)
	}
	clock := timer.NewMockTimeProvider(Epoch)
	rep := Report{Name: sc.Name}

	a := crystal.NewAssembly(
		crystal.WithConfig(cfg),
		crystal.WithTimeProvider(clock),
		crystal.WithPhaseListener(func(p crystal.Phase) {
			rep.Events = append(rep.Events, PhaseEvent{At: clock.Now().Sub(Epoch), Phase: p})
		}),
	)

	steps := append([]Step(nil), sc.Steps...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })

	next := 0
	for elapsed := time.Duration(0); elapsed <= sc.Duration; elapsed += r.step {
		if err := ctx.Err(); err != nil {
			rep.Err = err
			log.Printf("[Scenario] %s stopped at %v: %v", sc.Name, elapsed, err)
			break
		}
		clock.SetTime(Epoch.Add(elapsed))

		ran := []string{}
		for next < len(steps) && steps[next].At <= elapsed {
			steps[next].Do(a)
			ran = append(ran, steps[next].Name)
			next++
		}
		f := a.Tick()
		rep.Ticks++
		for _, name := range ran {
			rep.Snapshots = append(rep.Snapshots, Snapshot{At: elapsed, Step: name, Frame: f})
		}
		rep.Final = f
	}

	return rep
}
