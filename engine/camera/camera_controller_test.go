package camera

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/easing"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func assertVecNear(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-4), append([]any{"want %v got %v", want, got}, msgAndArgs...)...)
}

func newTestController() CameraController {
	return NewCameraController(WithConfig(config.Default()))
}

func TestNewControllerFacesOrigin(t *testing.T) {
	cc := newTestController()
	assert.Equal(t, mgl32.Vec3{0, 0, 9}, cc.Position())
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, common.Forward(cc.Rotation()))
	assert.InDelta(t, 9, cc.Radius(), 1e-5)
	assert.InDelta(t, -0.5235988, cc.MinElevation(), 1e-5)
	assert.InDelta(t, 0.5235988, cc.MaxElevation(), 1e-5)
}

func TestExplodeToggleMovesAlongViewDirection(t *testing.T) {
	cc := newTestController()
	startRot := cc.Rotation()

	cc.Observe(t0, Observation{Exploded: true})
	require.True(t, cc.Animating())
	assert.Equal(t, TriggerExplode, cc.Trigger())

	assert.True(t, cc.Update(t0.Add(800*time.Millisecond)))
	mid := cc.Position()
	assert.Greater(t, mid.Z(), float32(9))
	assert.Less(t, mid.Z(), float32(13))

	assert.False(t, cc.Update(t0.Add(1600*time.Millisecond)))
	assert.Equal(t, mgl32.Vec3{0, 0, 13}, cc.Position(), "completion snaps to the exact target")
	assert.Equal(t, startRot, cc.Rotation())

	mem, ok := cc.ExplodedMemory()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 0, 13}, mem.Position)

	cc.Observe(t0.Add(2*time.Second), Observation{Exploded: false})
	assert.Equal(t, TriggerReform, cc.Trigger())
	cc.Update(t0.Add(2*time.Second + 900*time.Millisecond))
	assert.Equal(t, mgl32.Vec3{0, 0, 9}, cc.Position())
}

func TestSelectZoomsToFacet(t *testing.T) {
	cc := newTestController()
	cc.Observe(t0, Observation{Exploded: true})
	cc.Update(t0.Add(2 * time.Second))

	facet := mgl32.Vec3{1.3, 0.8, 0.5}
	now := t0.Add(3 * time.Second)
	cc.Observe(now, Observation{Exploded: true, Selected: "craft", FacetPosition: facet, FacetKnown: true})
	assert.Equal(t, TriggerSelect, cc.Trigger())

	want := facet.Add(mgl32.Vec3{0, 0, 13}.Sub(facet).Normalize().Mul(3.5))
	cc.Update(now.Add(time.Second))
	assert.False(t, cc.Animating())
	assertVecNear(t, want, cc.Position())
	assertVecNear(t, facet.Sub(want).Normalize(), common.Forward(cc.Rotation()))

	_, ok := cc.ExplodedMemory()
	assert.True(t, ok)
	mem, _ := cc.ExplodedMemory()
	assert.Equal(t, mgl32.Vec3{0, 0, 13}, mem.Position, "selection does not overwrite the exploded memory")
}

func TestDeselectReturnsToExplodedMemory(t *testing.T) {
	cc := newTestController()
	cc.Observe(t0, Observation{Exploded: true})
	cc.Update(t0.Add(2 * time.Second))
	mem, _ := cc.ExplodedMemory()

	cc.Observe(t0.Add(3*time.Second), Observation{Exploded: true, Selected: "craft", FacetPosition: mgl32.Vec3{1, 1, 1}, FacetKnown: true})
	cc.Update(t0.Add(5 * time.Second))

	cc.Observe(t0.Add(6*time.Second), Observation{Exploded: true})
	assert.Equal(t, TriggerDeselect, cc.Trigger())
	cc.Update(t0.Add(6*time.Second + 1200*time.Millisecond))
	assert.Equal(t, mem.Position, cc.Position())
	assert.Equal(t, mem.Rotation, cc.Rotation())
}

func TestDeselectWithoutMemoryUsesFallbackRadius(t *testing.T) {
	cc := newTestController()
	cc.SetPose(Pose{Position: mgl32.Vec3{3, 0, 4}, Rotation: mgl32.QuatIdent()})

	cc.Observe(t0, Observation{Exploded: true, Selected: "craft", FacetPosition: mgl32.Vec3{1, 0, 0}, FacetKnown: true})
	cc.SetPose(Pose{Position: mgl32.Vec3{0, 0, 2}, Rotation: mgl32.QuatIdent()})
	_, ok := cc.ExplodedMemory()
	require.False(t, ok)

	cc.Observe(t0, Observation{Exploded: true})
	cc.Update(t0.Add(time.Hour))
	assertVecNear(t, mgl32.Vec3{0, 0, 9}, cc.Position())
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, common.Forward(cc.Rotation()))
}

func TestUnknownFacetIsNoop(t *testing.T) {
	cc := newTestController()
	cc.Observe(t0, Observation{Exploded: true, Selected: "ghost"})
	assert.False(t, cc.Animating())
	assert.Equal(t, mgl32.Vec3{0, 0, 9}, cc.Position())
}

func TestNewTriggerOverwritesRunningAnimation(t *testing.T) {
	cc := newTestController()
	cc.Observe(t0, Observation{Exploded: true})
	cc.Update(t0.Add(400 * time.Millisecond))
	mid := cc.Position()

	cc.Observe(t0.Add(400*time.Millisecond), Observation{Exploded: false})
	assert.Equal(t, TriggerReform, cc.Trigger())
	cc.Update(t0.Add(400*time.Millisecond + 900*time.Millisecond))
	assertVecNear(t, mid.Sub(mgl32.Vec3{0, 0, 4}), cc.Position())
}

func TestEasingReselectedEveryTick(t *testing.T) {
	names := config.Easings{Explosion: "cubicIn", Reform: "linear", FacetZoom: "cubicOut", FacetReturn: "sineOut"}

	assert.InDelta(t, easing.CubicOut(0.3), selectEasing(names, Observation{Exploded: true, Selected: "a"}, false)(0.3), 1e-6)
	assert.InDelta(t, easing.SineOut(0.3), selectEasing(names, Observation{Exploded: true}, true)(0.3), 1e-6)
	assert.InDelta(t, easing.CubicIn(0.3), selectEasing(names, Observation{Exploded: true}, false)(0.3), 1e-6)
	assert.InDelta(t, easing.Linear(0.3), selectEasing(names, Observation{}, false)(0.3), 1e-6)

	fallback := config.Easings{Explosion: "cubicIn", Reform: "linear"}
	assert.InDelta(t, easing.CubicIn(0.3), selectEasing(fallback, Observation{Exploded: true, Selected: "a"}, false)(0.3), 1e-6)
	assert.InDelta(t, easing.Linear(0.3), selectEasing(fallback, Observation{Exploded: true}, true)(0.3), 1e-6)
}

func TestOrbitClampsAndRespectsEnable(t *testing.T) {
	cc := newTestController()

	cc.Orbit(0, 10)
	assert.InDelta(t, cc.MaxElevation(), cc.Elevation(), 1e-4)
	assert.InDelta(t, 9, cc.Radius(), 1e-4)
	assertVecNear(t, cc.Position().Mul(-1).Normalize(), common.Forward(cc.Rotation()))

	cc.SetOrbitEnabled(false)
	before := cc.Position()
	cc.Orbit(1, 0)
	assert.Equal(t, before, cc.Position())

	cc.SetOrbitEnabled(true)
	cc.Observe(t0, Observation{Exploded: true})
	cc.Orbit(1, 0)
	assert.Equal(t, before, cc.Position(), "orbit input is ignored during a transition")
}

func TestCameraMatricesFollowController(t *testing.T) {
	cc := newTestController()
	cam := NewCamera(WithController(cc), WithAspect(16.0/9.0))

	ndc, ok := common.ProjectPoint(cam.ViewProjectionMatrix(), mgl32.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
	frustum := cam.Frustum()
	assert.True(t, frustum.ContainsSphere(mgl32.Vec3{}, 0.5))
	assert.False(t, frustum.ContainsSphere(mgl32.Vec3{0, 0, 20}, 0.5))

	view := cam.ViewMatrix()
	eye := view.Mul4x1(mgl32.Vec4{0, 0, 9, 1})
	assert.InDelta(t, 0, eye.Z(), 1e-5)
}

func TestZoomClampsToDistanceBounds(t *testing.T) {
	cc := newTestController()
	cc.Zoom(1)
	assert.InDelta(t, 9, cc.Radius(), 1e-5, "zoom is off by default")

	cfg := config.Default()
	cfg.Camera.EnableZoom = true
	cc = NewCameraController(WithConfig(cfg))
	startRot := cc.Rotation()

	cc.Zoom(2)
	assert.InDelta(t, 9*0.95*0.95, cc.Radius(), 1e-4)
	assertVecNear(t, common.Forward(startRot), common.Forward(cc.Rotation()), "zoom keeps the view direction")

	cc.Zoom(100)
	assert.InDelta(t, cfg.Camera.MinDistance, cc.Radius(), 1e-4)
	cc.Zoom(-100)
	assert.InDelta(t, cfg.Camera.MaxDistance, cc.Radius(), 1e-4)

	cc.SetOrbitEnabled(false)
	cc.Zoom(5)
	assert.InDelta(t, cfg.Camera.MaxDistance, cc.Radius(), 1e-4)

	cc.SetOrbitEnabled(true)
	cc.Observe(t0, Observation{Exploded: true})
	cc.Zoom(5)
	assert.InDelta(t, cfg.Camera.MaxDistance, cc.Radius(), 1e-4, "ignored during a transition")
}
