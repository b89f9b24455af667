package crystal

import (
	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// IdleFloatBlender hands exploded facets over from their spring motion to a gentle
// sinusoidal drift around the authored exploded position.
//
// All methods are pure functions of their arguments and the blender's config. Time
// arguments are seconds since the explosion started.
type IdleFloatBlender struct {
	Idle  config.IdleTiming
	Float config.IdleFloat
}

// Progress returns the blend weight toward the idle float: 0 up to TransitionStart,
// 1 from TransitionEnd, and an ease-out quarter sine in between.
func (b IdleFloatBlender) Progress(t float32) float32 {
	start, end := b.Idle.TransitionStart, b.Idle.TransitionEnd
	if t <= start {
		return 0
	}
	if t >= end {
		return 1
	}
	norm := (t - start) / (end - start)
	return math32.Sin(norm * math32.Pi / 2)
}

// Damping returns the settling factor (1 - min(1, t/settling))^2.
func (b IdleFloatBlender) Damping(t float32) float32 {
	if b.Idle.Settling <= 0 {
		return 0
	}
	d := 1 - min(1, max(t, 0)/b.Idle.Settling)
	return d * d
}

// Amplitude returns the drift amplitude at t, larger right after the explosion.
func (b IdleFloatBlender) Amplitude(t float32) float32 {
	return b.Float.BaseAmplitude * (1 + b.Damping(t))
}

// Offset returns the float offset of facet i at t.
func (b IdleFloatBlender) Offset(t float32, i int) mgl32.Vec3 {
	amp := b.Amplitude(t)
	phase := float32(i) * common.Coalesce(b.Float.PhaseStep, 0.5)
	return mgl32.Vec3{
		amp * b.Float.XMultiplier * math32.Sin(t*b.Float.XFrequency+phase*1.7),
		amp * math32.Sin(t*b.Float.YFrequency+phase),
		amp * b.Float.ZMultiplier * math32.Sin(t*b.Float.ZFrequency+phase*0.3),
	}
}

// Blend returns the displayed position of facet i.
//
// Parameters:
//   - springPos: the spring provider's current position
//   - exploded: the facet's authored exploded position
//   - t: seconds since the explosion started
//   - i: the facet index
//
// Returns:
//   - mgl32.Vec3: springPos at progress 0, exploded+Offset at progress 1
func (b IdleFloatBlender) Blend(springPos, exploded mgl32.Vec3, t float32, i int) mgl32.Vec3 {
	p := b.Progress(t)
	switch p {
	case 0:
		return springPos
	case 1:
		return exploded.Add(b.Offset(t, i))
	}
	return common.Lerp3(springPos, exploded.Add(b.Offset(t, i)), p)
}
