package scenario

import (
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
)

// PhaseEvent is a phase change observed during a run.
type PhaseEvent struct {
	At    time.Duration
	Phase crystal.Phase
}

// Snapshot is the frame produced by the tick right after a step ran.
type Snapshot struct {
	At    time.Duration
	Step  string
	Frame crystal.Frame
}

// Report is the outcome of one scenario.
type Report struct {
	Name      string
	Events    []PhaseEvent
	Snapshots []Snapshot
	Final     crystal.Frame
	Ticks     int
	Err       error
}

// Summary is the printable digest of a Report.
type Summary struct {
	Name           string   `yaml:"name"`
	Ticks          int      `yaml:"ticks"`
	Phase          string   `yaml:"phase"`
	Exploded       bool     `yaml:"exploded"`
	Selected       string   `yaml:"selected,omitempty"`
	CrystalVisible bool     `yaml:"crystalVisible"`
	FacetsVisible  bool     `yaml:"facetsVisible"`
	DetailVisible  bool     `yaml:"detailVisible"`
	Glow           float32  `yaml:"glow"`
	Events         []string `yaml:"events"`
	Error          string   `yaml:"error,omitempty"`
}

// Summary digests the report.
func (r Report) Summary() Summary {
	s := Summary{
		Name:           r.Name,
		Ticks:          r.Ticks,
		Phase:          r.Final.Phase.String(),
		Exploded:       r.Final.Exploded,
		Selected:       r.Final.Selected,
		CrystalVisible: r.Final.CrystalVisible,
		FacetsVisible:  r.Final.FacetsVisible,
		DetailVisible:  r.Final.DetailVisible,
		Glow:           r.Final.Glow,
	}
	for _, e := range r.Events {
		s.Events = append(s.Events, e.At.String()+" "+e.Phase.String())
	}
	if r.Err != nil {
		s.Error = r.Err.Error()
	}
	return s
}

// Phases lists the observed phase sequence.
func (r Report) Phases() []crystal.Phase {
	out := make([]crystal.Phase, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Phase
	}
	return out
}
