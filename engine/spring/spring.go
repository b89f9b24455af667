// Package spring provides the spring-animated values the crystal assembly reads every tick.
//
// A preset with a positive Duration runs as a timed tween along an easing curve; any other
// preset integrates a damped harmonic oscillator with a fixed 60 Hz step.
package spring

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/easing"
	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
)

// StepRate is the fixed integration rate for physics springs.
const StepRate = 60

const (
	stepDuration  = time.Second / StepRate
	restThreshold = 1e-4
)

// NewHarmonicSpring converts a tension/friction/mass preset into a harmonica spring.
// Angular frequency is sqrt(tension/mass); damping ratio is friction / (2*sqrt(tension*mass)).
//
// Parameters:
//   - p: the spring preset
//
// Returns:
//   - harmonica.Spring: a spring stepping at StepRate
func NewHarmonicSpring(p config.SpringPreset) harmonica.Spring {
	mass := float64(common.Coalesce(p.Mass, 1))
	tension := math.Max(float64(p.Tension), 1e-3)
	friction := math.Max(float64(p.Friction), 0)

	omega := math.Sqrt(tension / mass)
	zeta := friction / (2 * math.Sqrt(tension*mass))
	return harmonica.NewSpring(harmonica.FPS(StepRate), omega, zeta)
}

// Vec3 animates a 3-vector toward a target.
type Vec3 struct {
	pos    [3]float64
	vel    [3]float64
	target mgl32.Vec3

	timed    bool
	from     mgl32.Vec3
	elapsed  time.Duration
	duration time.Duration
	curve    easing.Func

	spring harmonica.Spring
	acc    time.Duration

	settled bool
}

// NewVec3 creates a spring at rest at initial.
func NewVec3(initial mgl32.Vec3) *Vec3 {
	s := &Vec3{target: initial, settled: true}
	s.Snap(initial)
	return s
}

// SetTarget retargets the spring using preset p, starting from the current position.
//
// Parameters:
//   - to: the new target
//   - p: the animation preset
func (s *Vec3) SetTarget(to mgl32.Vec3, p config.SpringPreset) {
	s.target = to
	s.settled = false
	s.acc = 0

	if p.Duration > 0 {
		s.timed = true
		s.from = s.Position()
		s.elapsed = 0
		s.duration = p.Duration.Duration()
		s.curve = easing.Resolve(p.Easing)
		s.vel = [3]float64{}
		return
	}

	s.timed = false
	s.spring = NewHarmonicSpring(p)
	if p.Velocity != 0 {
		dir := common.SafeNormalize(to.Sub(s.Position()), mgl32.Vec3{})
		for i := range 3 {
			s.vel[i] += float64(dir[i] * p.Velocity)
		}
	}
}

// Snap places the spring at p with zero velocity and makes p the target.
func (s *Vec3) Snap(p mgl32.Vec3) {
	for i := range 3 {
		s.pos[i] = float64(p[i])
		s.vel[i] = 0
	}
	s.target = p
	s.timed = false
	s.settled = true
}

// Update advances the spring by dt and returns the new position.
func (s *Vec3) Update(dt time.Duration) mgl32.Vec3 {
	if s.settled || dt <= 0 {
		return s.Position()
	}

	if s.timed {
		s.elapsed += dt
		if s.elapsed >= s.duration {
			s.Snap(s.target)
			return s.target
		}
		p := s.curve(float32(s.elapsed) / float32(s.duration))
		cur := common.Lerp3(s.from, s.target, p)
		for i := range 3 {
			s.pos[i] = float64(cur[i])
		}
		return cur
	}

	s.acc += dt
	for s.acc >= stepDuration {
		s.acc -= stepDuration
		for i := range 3 {
			s.pos[i], s.vel[i] = s.spring.Update(s.pos[i], s.vel[i], float64(s.target[i]))
		}
	}
	if s.atRest() {
		s.Snap(s.target)
	}
	return s.Position()
}

func (s *Vec3) atRest() bool {
	for i := range 3 {
		if math.Abs(s.pos[i]-float64(s.target[i])) > restThreshold || math.Abs(s.vel[i]) > restThreshold {
			return false
		}
	}
	return true
}

// Position returns the current value.
func (s *Vec3) Position() mgl32.Vec3 {
	return mgl32.Vec3{float32(s.pos[0]), float32(s.pos[1]), float32(s.pos[2])}
}

// Target returns the value the spring is heading toward.
func (s *Vec3) Target() mgl32.Vec3 {
	return s.target
}

// Settled reports whether the spring has reached its target and stopped.
func (s *Vec3) Settled() bool {
	return s.settled
}

// Scalar is a one-dimensional physics spring used for label opacity and scale.
type Scalar struct {
	pos, vel float64
	target   float64
	spring   harmonica.Spring
	acc      time.Duration
}

// NewScalar creates a scalar spring at rest at initial using preset p.
func NewScalar(initial float32, p config.SpringPreset) *Scalar {
	return &Scalar{
		pos:    float64(initial),
		target: float64(initial),
		spring: NewHarmonicSpring(p),
	}
}

// SetTarget changes the equilibrium point.
func (s *Scalar) SetTarget(v float32) {
	s.target = float64(v)
}

// Update advances the spring by dt and returns the new value.
func (s *Scalar) Update(dt time.Duration) float32 {
	s.acc += dt
	for s.acc >= stepDuration {
		s.acc -= stepDuration
		s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	}
	if math.Abs(s.pos-s.target) < restThreshold && math.Abs(s.vel) < restThreshold {
		s.pos, s.vel = s.target, 0
	}
	return float32(s.pos)
}

// Value returns the current value.
func (s *Scalar) Value() float32 {
	return float32(s.pos)
}
