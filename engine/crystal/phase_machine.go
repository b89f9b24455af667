package crystal

import (
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
)

// Phase is the discrete explosion state of the assembly.
type Phase int

const (
	PhaseInitial Phase = iota
	PhaseFractured
	PhaseExploded
)

func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseFractured:
		return "fractured"
	case PhaseExploded:
		return "exploded"
	default:
		return "unknown"
	}
}

// PhaseMachine owns the explosion phase and the two delayed visibility flags.
//
// Every call to SetExploded that changes state advances the machine's epoch, so timers
// armed for a superseded transition never apply.
type PhaseMachine struct {
	sched  *timer.Scheduler
	timing *config.Timing
	epoch  timer.Epoch

	exploded       bool
	phase          Phase
	crystalVisible bool
	facetsVisible  bool
	labelsVisible  bool
	explodeStart   time.Time

	onPhase func(Phase)
}

// NewPhaseMachine creates a machine in PhaseInitial with the whole crystal visible.
//
// Parameters:
//   - sched: the scheduler that runs the delayed transitions
//   - timing: shared timing config, read at each transition
//   - onPhase: optional callback invoked on every phase change
//
// Returns:
//   - *PhaseMachine: the new machine
func NewPhaseMachine(sched *timer.Scheduler, timing *config.Timing, onPhase func(Phase)) *PhaseMachine {
	return &PhaseMachine{
		sched:          sched,
		timing:         timing,
		phase:          PhaseInitial,
		crystalVisible: true,
		onPhase:        onPhase,
	}
}

// SetExploded drives the machine. Setting the current value is a no-op.
func (m *PhaseMachine) SetExploded(exploded bool) {
	if exploded == m.exploded {
		return
	}
	m.exploded = exploded
	m.epoch.Advance()

	if exploded {
		m.explode()
	} else {
		m.reform()
	}
}

func (m *PhaseMachine) explode() {
	m.explodeStart = m.sched.Now()
	m.facetsVisible = true
	m.setPhase(PhaseFractured)

	m.sched.After(m.delay(m.timing.Crystal.DisappearDelay, config.DefaultDisappearDelay), &m.epoch, func() {
		m.crystalVisible = false
	})
	m.sched.After(m.delay(m.timing.Fracture.Duration, config.DefaultFractureDuration), &m.epoch, func() {
		m.setPhase(PhaseExploded)
	})
	m.sched.After(m.delay(m.timing.Labels.AppearDelay, config.DefaultLabelAppearDelay), &m.epoch, func() {
		m.labelsVisible = true
	})
}

func (m *PhaseMachine) reform() {
	m.labelsVisible = false
	m.setPhase(PhaseInitial)

	m.sched.After(m.delay(m.timing.Reform.CrystalAppearTime, config.DefaultCrystalAppearTime), &m.epoch, func() {
		m.crystalVisible = true
	})
	m.sched.After(m.delay(m.timing.Reform.FacetsDisappearTime, config.DefaultFacetsDisappearTime), &m.epoch, func() {
		m.facetsVisible = false
	})
}

func (m *PhaseMachine) setPhase(p Phase) {
	if p == m.phase {
		return
	}
	m.phase = p
	if m.onPhase != nil {
		m.onPhase(p)
	}
}

func (m *PhaseMachine) delay(v, def config.Millis) time.Duration {
	return common.Coalesce(v, def).Duration()
}

// Phase returns the current phase.
func (m *PhaseMachine) Phase() Phase { return m.phase }

// Exploded returns the last value passed to SetExploded.
func (m *PhaseMachine) Exploded() bool { return m.exploded }

// CrystalVisible reports whether the whole, unbroken crystal should be drawn.
func (m *PhaseMachine) CrystalVisible() bool { return m.crystalVisible }

// FacetsVisible reports whether the individual facets should be drawn.
func (m *PhaseMachine) FacetsVisible() bool { return m.facetsVisible }

// LabelsVisible reports whether facet labels may be shown.
func (m *PhaseMachine) LabelsVisible() bool { return m.labelsVisible }

// ExplosionStart returns the time of the most recent explode transition.
// The fracture sub-phase starts at the same instant.
func (m *PhaseMachine) ExplosionStart() time.Time { return m.explodeStart }
