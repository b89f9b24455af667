package crystal

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestFractureGlowSubPhases(t *testing.T) {
	cfg := config.Default()
	a := FractureGlowAnimator{Timing: cfg.Timing.Fracture, Glow: cfg.Effects.FractureGlow}
	initial, secondary := cfg.Effects.FractureGlow.InitialGlow, cfg.Effects.FractureGlow.SecondaryGlow

	scale, glow := a.Sample(0)
	assert.Equal(t, float32(1), scale)
	assert.Equal(t, initial, glow)

	scale, glow = a.Sample(50 * time.Millisecond)
	assert.InDelta(t, 1+cfg.Effects.FractureGlow.MaxScaleFactor, scale, 1e-5)
	assert.Equal(t, initial, glow)

	for _, ms := range []int{100, 150, 200, 299} {
		d := time.Duration(ms) * time.Millisecond
		scale, glow = a.Sample(d)
		want := initial + (secondary-initial)*float32(ms-100)/200
		assert.Equal(t, float32(1), scale)
		assert.InDelta(t, want, glow, 1e-5, "t=%dms", ms)
	}

	_, glow = a.Sample(300 * time.Millisecond)
	assert.Equal(t, secondary, glow)
	_, glow = a.Sample(5 * time.Second)
	assert.Equal(t, secondary, glow)
}

func TestFractureGlowMissingDurationsUseDefaults(t *testing.T) {
	a := FractureGlowAnimator{Glow: config.FractureGlow{InitialGlow: 3, SecondaryGlow: 1}}
	_, glow := a.Sample(config.DefaultPulseDuration.Duration() + config.DefaultGlowFadeDuration.Duration())
	assert.Equal(t, float32(1), glow)
}

func TestResolveGlowSource(t *testing.T) {
	assert.Equal(t, GlowNone, ResolveGlowSource(false, PhaseInitial))
	assert.Equal(t, GlowNone, ResolveGlowSource(false, PhaseExploded))
	assert.Equal(t, GlowFracture, ResolveGlowSource(true, PhaseFractured))
	assert.Equal(t, GlowIdle, ResolveGlowSource(true, PhaseExploded))
	assert.Equal(t, "idle", GlowIdle.String())
}

func TestIdleGlowCrossFadesFromFractureValue(t *testing.T) {
	cfg := config.Default()
	g := NewGlowAnimator(cfg)
	idle := cfg.Timing.Idle

	_, glow := g.Frame(GlowFracture, 320*time.Millisecond)
	assert.Equal(t, cfg.Effects.FractureGlow.SecondaryGlow, glow)

	_, glow = g.Frame(GlowIdle, 500*time.Millisecond)
	assert.Equal(t, cfg.Effects.FractureGlow.SecondaryGlow, glow, "holds the carried value before the idle window")

	end := time.Duration(idle.TransitionEnd * float32(time.Second))
	_, glow = g.Frame(GlowIdle, end)
	p := cfg.Effects.IdleGlow
	tSec := float32(end.Seconds())
	assert.InDelta(t, p.PulseBase+p.PulseStrength*math32.Sin(tSec*p.BaseFrequency), glow, 1e-5)

	_, glow = g.Frame(GlowNone, 0)
	assert.Equal(t, float32(0), glow)
	assert.Equal(t, float32(0), g.Last())
}

func TestFacetGlowPhaseAndFrequency(t *testing.T) {
	cfg := config.Default()
	g := NewGlowAnimator(cfg)
	p := cfg.Effects.IdleGlow
	since := 3 * time.Second

	_, shared := g.Frame(GlowIdle, since)
	assert.Equal(t, shared, g.FacetGlow(GlowIdle, since, 0, shared))

	for i := 1; i < 4; i++ {
		n := float32(i)
		want := p.PulseBase + p.PulseStrength*math32.Sin(3*(p.BaseFrequency+n*p.FrequencyMultiplier)+n*p.PhaseOffset)
		assert.InDelta(t, want, g.FacetGlow(GlowIdle, since, i, shared), 1e-5, "facet %d", i)
	}

	_, fracture := g.Frame(GlowFracture, 10*time.Millisecond)
	assert.Equal(t, fracture, g.FacetGlow(GlowFracture, 10*time.Millisecond, 3, fracture))
}
