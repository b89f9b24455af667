package crystal

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/camera"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/material"
	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	values []float32
}

func (r *recordingSink) ApplyGlow(v float32) { r.values = append(r.values, v) }

func newTestAssembly(opts ...AssemblyBuilderOption) (Assembly, *timer.MockTimeProvider, *[]Phase) {
	clock := timer.NewMockTimeProvider(t0)
	var phases []Phase
	opts = append([]AssemblyBuilderOption{
		WithTimeProvider(clock),
		WithPhaseListener(func(p Phase) { phases = append(phases, p) }),
	}, opts...)
	return NewAssembly(opts...), clock, &phases
}

func step(a Assembly, clock *timer.MockTimeProvider, d time.Duration) Frame {
	clock.Advance(d)
	return a.Tick()
}

func TestAssemblyExplodeToIdleEndToEnd(t *testing.T) {
	a, clock, phases := newTestAssembly()
	cfg := a.Config()

	fr := a.Tick()
	require.Equal(t, PhaseInitial, fr.Phase)
	require.True(t, fr.CrystalVisible)
	require.False(t, fr.FacetsVisible)

	require.True(t, a.RequestExplodeToggle())
	assert.Equal(t, []Phase{PhaseFractured}, *phases)

	fr = step(a, clock, cfg.Timing.Fracture.Duration.Duration()-time.Millisecond)
	assert.Equal(t, PhaseFractured, fr.Phase)
	assert.Equal(t, GlowFracture, fr.GlowSource)

	fr = step(a, clock, time.Millisecond)
	assert.Equal(t, PhaseExploded, fr.Phase)
	assert.Equal(t, GlowIdle, fr.GlowSource)
	assert.Equal(t, []Phase{PhaseFractured, PhaseExploded}, *phases)

	idleEnd := time.Duration(cfg.Timing.Idle.TransitionEnd * float32(time.Second))
	for elapsed := cfg.Timing.Fracture.Duration.Duration(); elapsed < idleEnd-16*time.Millisecond; elapsed += 16 * time.Millisecond {
		step(a, clock, 16*time.Millisecond)
	}
	clock.SetTime(t0.Add(idleEnd))
	fr = a.Tick()

	blender := IdleFloatBlender{Idle: cfg.Timing.Idle, Float: cfg.Effects.IdleFloat}
	tEnd := float32(idleEnd.Seconds())
	for i, fc := range cfg.Facets {
		got, ok := fr.Facet(fc.Key)
		require.True(t, ok)
		want := fc.Exploded.Add(blender.Offset(tEnd, i))
		assert.InDelta(t, want.X(), got.Position.X(), 1e-5, fc.Key)
		assert.InDelta(t, want.Y(), got.Position.Y(), 1e-5, fc.Key)
		assert.InDelta(t, want.Z(), got.Position.Z(), 1e-5, fc.Key)
	}
}

func TestAssemblyDoubleSelectKeepsFirst(t *testing.T) {
	a, clock, _ := newTestAssembly()
	a.RequestExplodeToggle()
	step(a, clock, 2*time.Second)

	require.True(t, a.RequestSelect("craft"))
	assert.False(t, a.RequestSelect("system"))

	fr := step(a, clock, 16*time.Millisecond)
	assert.True(t, fr.Transitioning)
	assert.Equal(t, "craft", fr.Selected)

	fr = step(a, clock, 3*time.Second)
	assert.False(t, fr.Transitioning)
	assert.Equal(t, "craft", fr.Selected)
	assert.True(t, fr.DetailVisible)
	assert.False(t, fr.OrbitEnabled)
	assert.False(t, fr.CameraAnimating)

	craft, _ := fr.Facet("craft")
	assert.True(t, craft.Selected)
	assert.InDelta(t, fr.Glow+1.2, craft.Emissive, 1e-6)
	assert.Equal(t, camera.TriggerSelect, a.Camera().Trigger())
}

func TestAssemblySelectedFacetIsFrozen(t *testing.T) {
	a, clock, _ := newTestAssembly()
	a.RequestExplodeToggle()
	step(a, clock, 2*time.Second)
	a.RequestSelect("craft")

	before, _ := step(a, clock, 16*time.Millisecond).Facet("craft")
	after, _ := step(a, clock, 700*time.Millisecond).Facet("craft")
	assert.Equal(t, before.Position, after.Position)

	other0, _ := step(a, clock, 0).Facet("system")
	other1, _ := step(a, clock, 700*time.Millisecond).Facet("system")
	assert.NotEqual(t, other0.Position, other1.Position)
}

func TestAssemblyReformAfterExplode(t *testing.T) {
	sink := &recordingSink{}
	a, clock, phases := newTestAssembly(WithGlowSink(sink))
	a.RequestExplodeToggle()
	step(a, clock, 100*time.Millisecond)

	assert.False(t, a.RequestExplodeToggle(), "lock is held for the explode duration")
	step(a, clock, 1600*time.Millisecond)
	require.True(t, a.RequestExplodeToggle())

	fr := step(a, clock, 16*time.Millisecond)
	assert.Equal(t, PhaseInitial, fr.Phase)
	assert.Equal(t, GlowNone, fr.GlowSource)
	assert.Equal(t, float32(0), sink.values[len(sink.values)-1])
	assert.Equal(t, []Phase{PhaseFractured, PhaseExploded, PhaseInitial}, *phases)

	fr = step(a, clock, 2*time.Second)
	assert.True(t, fr.CrystalVisible)
	assert.False(t, fr.FacetsVisible)
	for i, fc := range a.Config().Facets {
		assert.Equal(t, fc.Start, fr.Facets[i].Position)
	}
}

func TestAssemblyHoverAndNavigate(t *testing.T) {
	a, clock, _ := newTestAssembly()
	assert.False(t, a.SetHovered("craft"), "no hover while reformed")
	assert.Equal(t, "", a.Navigate(DirUp))

	a.RequestExplodeToggle()
	assert.False(t, a.SetHovered("craft"), "no hover while transitioning")
	step(a, clock, 2*time.Second)

	assert.Equal(t, "empathy", a.Navigate(DirRight))
	assert.Equal(t, "narrative", a.Navigate(DirUp))
	assert.False(t, a.SetHovered("ghost"))
	assert.True(t, a.SetHovered("craft"))

	fr := step(a, clock, 2*time.Second)
	craft, _ := fr.Facet("craft")
	assert.True(t, craft.Hovered)
	p := a.Config().Effects.IdleGlow
	craftGlow := p.PulseBase + p.PulseStrength*math32.Sin(4*(p.BaseFrequency+2*p.FrequencyMultiplier)+2*p.PhaseOffset)
	assert.InDelta(t, craftGlow+0.6, craft.Emissive, 1e-5)
	assert.InDelta(t, 1.05, craft.LabelScale, 1e-3)
	assert.InDelta(t, 1, craft.LabelOpacity, 1e-3)
}

func TestAssemblyLabelsStagger(t *testing.T) {
	a, clock, _ := newTestAssembly()
	a.RequestExplodeToggle()

	fr := step(a, clock, 1600*time.Millisecond)
	assert.True(t, fr.LabelsVisible)

	fr = step(a, clock, 2*time.Second)
	for _, ff := range fr.Facets {
		assert.InDelta(t, 1, ff.LabelOpacity, 1e-3, ff.Key)
	}
}

func TestAssemblyApplyConfig(t *testing.T) {
	a, clock, _ := newTestAssembly()
	a.RequestExplodeToggle()
	step(a, clock, 2*time.Second)
	a.RequestSelect("craft")

	cfg := config.Default()
	cfg.Facets = cfg.Facets[:2]
	cfg.Facets[0].Exploded = cfg.Facets[0].Exploded.Mul(2)
	a.ApplyConfig(cfg)

	fr := step(a, clock, 0)
	assert.Len(t, fr.Facets, 2)
	assert.Equal(t, "", fr.Selected, "selection of a removed facet is cleared")
	assert.Len(t, a.Config().Facets, 2)
}

func TestAssemblyUnknownSelectIsNoop(t *testing.T) {
	a, clock, _ := newTestAssembly()
	a.RequestExplodeToggle()
	step(a, clock, 2*time.Second)

	assert.False(t, a.RequestSelect("ghost"))
	fr := step(a, clock, 0)
	assert.Equal(t, "", fr.Selected)
	assert.False(t, fr.Transitioning)
}

func assertVecNear(t *testing.T, want, got mgl32.Vec3, msg string) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-4, msg)
	}
}

func TestAssemblyRetargetIgnoresIdleTime(t *testing.T) {
	a, clock, _ := newTestAssembly()
	cfg := a.Config()
	a.Tick()

	clock.Advance(time.Second)
	require.True(t, a.RequestExplodeToggle())
	fr := step(a, clock, 10*time.Millisecond)

	// the fracture tween is 100ms long and linear
	for _, fc := range cfg.Facets {
		got, ok := fr.Facet(fc.Key)
		require.True(t, ok)
		assertVecNear(t, common.Lerp3(fc.Start, fc.Fracture, 0.1), got.Position, fc.Key)
	}
}

func TestAssemblyPhaseTimerRetargetsAtDueTime(t *testing.T) {
	a, clock, _ := newTestAssembly()
	cfg := a.Config()
	require.True(t, a.RequestExplodeToggle())

	// one long tick across the 350ms fracture timer
	fr := step(a, clock, cfg.Timing.Fracture.Duration.Duration()+10*time.Millisecond)
	require.Equal(t, PhaseExploded, fr.Phase)

	progress := float32(10*time.Millisecond) / float32(cfg.Springs.Explode.Duration.Duration())
	for _, fc := range cfg.Facets {
		got, ok := fr.Facet(fc.Key)
		require.True(t, ok)
		assertVecNear(t, common.Lerp3(fc.Fracture, fc.Exploded, progress), got.Position, fc.Key)
	}
}

func TestAssemblyApplyConfigKeepsRenderBudget(t *testing.T) {
	cfg := config.Default()
	cfg.Material.Variant = "iceOpal"
	a, _, _ := newTestAssembly(WithConfig(cfg))
	require.Equal(t, material.VariantIceOpal, a.Material().Variant())

	a.SetPBR(false)
	assert.Equal(t, material.VariantCrystal, a.Material().Variant())

	a.ApplyConfig(cfg)
	assert.Equal(t, material.VariantCrystal, a.Material().Variant(), "budget survives a config reload")

	a.SetPBR(true)
	assert.Equal(t, material.VariantIceOpal, a.Material().Variant())
}

func TestAssemblyIdleGlowIsOutOfStep(t *testing.T) {
	a, clock, _ := newTestAssembly()
	a.RequestExplodeToggle()
	fr := step(a, clock, 3*time.Second)
	require.Equal(t, GlowIdle, fr.GlowSource)

	assert.InDelta(t, fr.Glow, fr.Facets[0].Emissive, 1e-6, "the first facet follows the shared glow")
	seen := map[float32]bool{}
	for _, ff := range fr.Facets {
		seen[ff.Emissive] = true
	}
	assert.Len(t, seen, len(fr.Facets))
}
