package spring

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTimedPresetReachesTargetExactly(t *testing.T) {
	s := NewVec3(mgl32.Vec3{})
	to := mgl32.Vec3{1, -2, 3}
	s.SetTarget(to, config.SpringPreset{Duration: 100})

	mid := s.Update(50 * time.Millisecond)
	assert.InDelta(t, 0.5, mid[0], 1e-5, "linear easing by default")
	assert.False(t, s.Settled())

	end := s.Update(50 * time.Millisecond)
	assert.Equal(t, to, end)
	assert.True(t, s.Settled())
}

func TestTimedPresetUsesEasing(t *testing.T) {
	s := NewVec3(mgl32.Vec3{})
	s.SetTarget(mgl32.Vec3{1, 0, 0}, config.SpringPreset{Duration: 800, Easing: "quadInOut"})

	p := s.Update(200 * time.Millisecond)
	assert.InDelta(t, 0.125, p[0], 1e-5)
}

func TestPhysicsPresetConverges(t *testing.T) {
	s := NewVec3(mgl32.Vec3{})
	to := mgl32.Vec3{0.3, -0.7, -0.2}
	s.SetTarget(to, config.SpringPreset{Mass: 1.5, Tension: 120, Friction: 14})

	first := s.Update(16 * time.Millisecond)
	assert.NotEqual(t, to, first)

	for range 600 {
		s.Update(16 * time.Millisecond)
	}
	assert.True(t, s.Settled())
	assert.Equal(t, to, s.Position())
}

func TestInitialVelocityPushesTowardTarget(t *testing.T) {
	a := NewVec3(mgl32.Vec3{})
	b := NewVec3(mgl32.Vec3{})
	preset := config.SpringPreset{Tension: 500, Friction: 20}
	a.SetTarget(mgl32.Vec3{1, 0, 0}, preset)
	preset.Velocity = 10
	b.SetTarget(mgl32.Vec3{1, 0, 0}, preset)

	pa := a.Update(stepDuration)
	pb := b.Update(stepDuration)
	assert.Greater(t, pb[0], pa[0])
}

func TestSubStepUpdatesAccumulate(t *testing.T) {
	s := NewVec3(mgl32.Vec3{})
	s.SetTarget(mgl32.Vec3{1, 1, 1}, config.SpringPreset{Tension: 200, Friction: 10})

	assert.Equal(t, mgl32.Vec3{}, s.Update(stepDuration/2), "half a step does not integrate")
	assert.NotEqual(t, mgl32.Vec3{}, s.Update(stepDuration/2))
}

func TestScalarSpring(t *testing.T) {
	s := NewScalar(0, config.SpringPreset{Tension: 280, Friction: 12})
	s.SetTarget(1)
	for range 300 {
		s.Update(16 * time.Millisecond)
	}
	assert.InDelta(t, 1, s.Value(), 1e-3)
}
