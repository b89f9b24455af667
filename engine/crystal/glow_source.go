package crystal

import (
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/chewxy/math32"
)

// GlowSource names the single animator allowed to write the shared glow this frame.
type GlowSource int

const (
	GlowNone GlowSource = iota
	GlowFracture
	GlowIdle
)

func (s GlowSource) String() string {
	switch s {
	case GlowFracture:
		return "fracture"
	case GlowIdle:
		return "idle"
	default:
		return "none"
	}
}

// ResolveGlowSource picks the glow writer from the explosion state.
func ResolveGlowSource(exploded bool, phase Phase) GlowSource {
	if !exploded {
		return GlowNone
	}
	switch phase {
	case PhaseFractured:
		return GlowFracture
	case PhaseExploded:
		return GlowIdle
	default:
		return GlowNone
	}
}

// GlowAnimator computes the frame glow. The value written during fracture is carried
// forward as the starting point of the idle pulse cross-fade.
type GlowAnimator struct {
	Fracture FractureGlowAnimator
	Idle     config.IdleTiming
	Pulse    config.IdleGlow

	last float32
}

// NewGlowAnimator builds a GlowAnimator from cfg.
func NewGlowAnimator(cfg *config.Config) *GlowAnimator {
	return &GlowAnimator{
		Fracture: FractureGlowAnimator{Timing: cfg.Timing.Fracture, Glow: cfg.Effects.FractureGlow},
		Idle:     cfg.Timing.Idle,
		Pulse:    cfg.Effects.IdleGlow,
	}
}

// Frame returns the facet scale factor and glow for this tick.
//
// Parameters:
//   - src: the resolved glow source
//   - sinceExplosion: time since the explosion (and fracture) started
//
// Returns:
//   - float32: scale factor applied to every facet
//   - float32: the glow intensity
func (g *GlowAnimator) Frame(src GlowSource, sinceExplosion time.Duration) (scale, glow float32) {
	switch src {
	case GlowFracture:
		scale, glow = g.Fracture.Sample(sinceExplosion)
		g.last = glow
		return scale, glow
	case GlowIdle:
		return 1, g.idle(float32(sinceExplosion.Seconds()), 0)
	default:
		g.last = 0
		return 1, 0
	}
}

// FacetGlow returns the glow of facet i. Idle facets pulse out of step with each other;
// every other source lights all facets with the shared value.
//
// Parameters:
//   - src: the resolved glow source
//   - sinceExplosion: time since the explosion started
//   - i: the facet index
//   - shared: the glow returned by Frame for this tick
//
// Returns:
//   - float32: the facet's glow intensity
func (g *GlowAnimator) FacetGlow(src GlowSource, sinceExplosion time.Duration, i int, shared float32) float32 {
	if src != GlowIdle {
		return shared
	}
	return g.idle(float32(sinceExplosion.Seconds()), i)
}

func (g *GlowAnimator) idle(t float32, i int) float32 {
	start, end := g.Idle.TransitionStart, g.Idle.TransitionEnd
	if t < start {
		return g.last
	}
	n := float32(i)
	freq := g.Pulse.BaseFrequency + n*g.Pulse.FrequencyMultiplier
	pulse := g.Pulse.PulseBase + g.Pulse.PulseStrength*math32.Sin(t*freq+n*g.Pulse.PhaseOffset)
	if t >= end || end <= start {
		return pulse
	}
	f := (t - start) / (end - start)
	return g.last + (pulse-g.last)*f
}

// Last returns the glow value carried into the idle cross-fade.
func (g *GlowAnimator) Last() float32 {
	return g.last
}
