package input

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/camera"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testProjection() mgl32.Mat4 {
	return common.PerspectiveZO(45*math.Pi/180, 1, 0.1, 100)
}

func frontPose() camera.Pose {
	eye := mgl32.Vec3{0, 0, 9}
	return camera.Pose{Position: eye, Rotation: common.LookRotation(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})}
}

func TestProjectFacets(t *testing.T) {
	f := crystal.Frame{
		Camera: frontPose(),
		Facets: []crystal.FacetFrame{
			{Key: "center"},
			{Key: "right", Position: mgl32.Vec3{1, 0, 0}},
			{Key: "up", Position: mgl32.Vec3{0, 1, 0}},
			{Key: "behind", Position: mgl32.Vec3{0, 0, 20}},
		},
	}
	got := ProjectFacets(f, testProjection(), 200, 200)
	require.Len(t, got, 3)

	byKey := map[string]ScreenFacet{}
	for _, sf := range got {
		byKey[sf.Facet.Key] = sf
	}
	assert.InDelta(t, 100, byKey["center"].X, 1e-3)
	assert.InDelta(t, 100, byKey["center"].Y, 1e-3)
	assert.Greater(t, byKey["right"].X, float32(100))
	assert.Less(t, byKey["up"].Y, float32(100))
	assert.NotContains(t, byKey, "behind")

	assert.Nil(t, ProjectFacets(f, testProjection(), 0, 100))
}

func TestPickPrefersNearest(t *testing.T) {
	f := crystal.Frame{
		Camera: frontPose(),
		Facets: []crystal.FacetFrame{
			{Key: "near", Position: mgl32.Vec3{0, 0, 2}},
			{Key: "far", Position: mgl32.Vec3{0, 0, -2}},
		},
	}
	key, ok := Pick(f, testProjection(), 101, 99, 200, 200, 10)
	assert.True(t, ok)
	assert.Equal(t, "near", key)

	_, ok = Pick(f, testProjection(), 10, 10, 200, 200, 10)
	assert.False(t, ok)
}

func newTestController(t *testing.T) (Controller, crystal.Assembly, *timer.MockTimeProvider) {
	t.Helper()
	clock := timer.NewMockTimeProvider(t0)
	a := crystal.NewAssembly(crystal.WithTimeProvider(clock))
	a.Tick()
	c := NewController(a)
	c.SetViewport(200, 200, testProjection())
	return c, a, clock
}

func settle(a crystal.Assembly, clock *timer.MockTimeProvider, d time.Duration) crystal.Frame {
	var f crystal.Frame
	for elapsed := time.Duration(0); elapsed < d; elapsed += 50 * time.Millisecond {
		clock.Advance(50 * time.Millisecond)
		f = a.Tick()
	}
	return f
}

func TestControllerKeys(t *testing.T) {
	c, a, clock := newTestController(t)

	assert.Equal(t, ActionHandled, c.HandleKey(common.KeySpace))
	f := settle(a, clock, 2*time.Second)
	require.True(t, f.Exploded)

	assert.Equal(t, ActionHandled, c.HandleKey(common.KeyRight))
	a.Tick()
	assert.Equal(t, a.Config().Facets[0].Key, a.Frame().Hovered)

	assert.Equal(t, ActionHandled, c.HandleKey(common.KeyEnter))
	f = a.Tick()
	assert.Equal(t, a.Config().Facets[0].Key, f.Selected)

	// Esc deselects; Esc again with nothing selected reforms.
	settle(a, clock, 2*time.Second)
	c.HandleKey(common.KeyEsc)
	f = settle(a, clock, 2*time.Second)
	assert.Equal(t, "", f.Selected)
	assert.True(t, f.Exploded)
	c.HandleKey(common.KeyEsc)
	f = settle(a, clock, 2*time.Second)
	assert.False(t, f.Exploded)
}

func TestControllerNumberKeysSelect(t *testing.T) {
	c, a, clock := newTestController(t)
	c.HandleKey(common.KeySpace)
	settle(a, clock, 2*time.Second)

	assert.Equal(t, ActionHandled, c.HandleKey(common.Key3))
	f := a.Tick()
	assert.Equal(t, "craft", f.Selected)

	assert.Equal(t, ActionNone, c.HandleKey(common.Key9))
}

func TestControllerHelpAndQuit(t *testing.T) {
	c, _, _ := newTestController(t)
	assert.False(t, c.HelpVisible())
	assert.Equal(t, ActionToggleHelp, c.HandleKey(common.KeyH))
	assert.True(t, c.HelpVisible())
	assert.Equal(t, ActionQuit, c.HandleKey(common.KeyQ))
	assert.Equal(t, ActionNone, c.HandleKey(uint32('z')))
}

func TestControllerClickOnEmptySpaceExplodes(t *testing.T) {
	c, a, _ := newTestController(t)
	c.PointerDown(5, 5)
	c.PointerUp(6, 6)
	assert.True(t, a.Tick().Exploded)
}

func TestControllerDragOrbits(t *testing.T) {
	c, a, clock := newTestController(t)
	c.HandleKey(common.KeySpace)
	settle(a, clock, 2*time.Second)

	before := a.Camera().Azimuth()
	c.PointerDown(100, 100)
	c.PointerMove(150, 100)
	c.PointerUp(150, 100)
	assert.NotEqual(t, before, a.Camera().Azimuth())

	// A drag is not a click.
	assert.Equal(t, "", a.Tick().Selected)
}

func TestControllerScrollZooms(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.EnableZoom = true
	a := crystal.NewAssembly(crystal.WithConfig(cfg), crystal.WithTimeProvider(timer.NewMockTimeProvider(t0)))
	c := NewController(a)

	before := a.Camera().Radius()
	c.Scroll(1)
	assert.Less(t, a.Camera().Radius(), before)
	c.Scroll(-3)
	assert.Greater(t, a.Camera().Radius(), before)
}
