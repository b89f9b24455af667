package crystal

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	selected      string
	exploded      bool
	orbit         bool
	detail        bool
	facets        map[string]bool
	selectCalls   []string
	explodedCalls []bool
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{
		exploded: true,
		orbit:    true,
		facets:   map[string]bool{"craft": true, "system": true},
	}
}

func (f *fakeTarget) Selected() string         { return f.selected }
func (f *fakeTarget) Exploded() bool           { return f.exploded }
func (f *fakeTarget) HasFacet(key string) bool { return f.facets[key] }
func (f *fakeTarget) SetSelected(key string) {
	f.selected = key
	f.selectCalls = append(f.selectCalls, key)
}
func (f *fakeTarget) SetExploded(b bool) {
	f.exploded = b
	f.explodedCalls = append(f.explodedCalls, b)
}
func (f *fakeTarget) SetOrbitEnabled(b bool)  { f.orbit = b }
func (f *fakeTarget) SetDetailVisible(b bool) { f.detail = b }

func newTestCoordinator() (*SelectionCoordinator, *fakeTarget, *timer.MockTimeProvider, *timer.Scheduler) {
	cfg := config.Default()
	clock := timer.NewMockTimeProvider(t0)
	sched := timer.NewScheduler(clock)
	target := newFakeTarget()
	return NewSelectionCoordinator(sched, &cfg.Timing, target), target, clock, sched
}

func TestSelectNewFacetSequence(t *testing.T) {
	c, target, clock, sched := newTestCoordinator()

	require.True(t, c.RequestSelect("craft"))
	assert.Equal(t, "craft", target.selected)
	assert.False(t, target.orbit)
	assert.False(t, target.detail)
	assert.True(t, c.Transitioning())

	advance(clock, sched, 1099*time.Millisecond)
	assert.False(t, target.detail)
	assert.True(t, c.Transitioning())

	advance(clock, sched, time.Millisecond)
	assert.True(t, target.detail)
	assert.False(t, c.Transitioning())
}

func TestSecondSelectInSameTickIsDropped(t *testing.T) {
	c, target, clock, sched := newTestCoordinator()

	require.True(t, c.RequestSelect("craft"))
	pending := sched.Pending()
	assert.False(t, c.RequestSelect("system"))
	assert.Equal(t, pending, sched.Pending(), "a dropped request arms no timers")
	assert.Equal(t, []string{"craft"}, target.selectCalls)

	advance(clock, sched, 5*time.Second)
	assert.Equal(t, "craft", target.selected)
	assert.False(t, c.Transitioning())
}

func TestDeselectSameFacetSequence(t *testing.T) {
	c, target, clock, sched := newTestCoordinator()
	c.RequestSelect("craft")
	advance(clock, sched, 2*time.Second)
	require.True(t, target.detail)

	require.True(t, c.RequestSelect("craft"))
	assert.False(t, target.detail)
	assert.Equal(t, "craft", target.selected)

	advance(clock, sched, 300*time.Millisecond)
	assert.Equal(t, "", target.selected)
	assert.False(t, target.orbit)

	advance(clock, sched, 1199*time.Millisecond)
	assert.False(t, target.orbit)
	assert.True(t, c.Transitioning())

	advance(clock, sched, time.Millisecond)
	assert.True(t, target.orbit)
	assert.False(t, c.Transitioning())
}

func TestToggleWithSelectionReformsAfterReturn(t *testing.T) {
	c, target, clock, sched := newTestCoordinator()
	c.RequestSelect("system")
	advance(clock, sched, 2*time.Second)

	require.True(t, c.RequestExplodeToggle())
	assert.False(t, target.detail)

	advance(clock, sched, 300*time.Millisecond)
	assert.Equal(t, "", target.selected)
	assert.True(t, target.exploded)

	advance(clock, sched, 1200*time.Millisecond)
	assert.False(t, target.exploded)
	assert.False(t, target.orbit)

	advance(clock, sched, 900*time.Millisecond)
	assert.True(t, target.orbit)
	assert.False(t, c.Transitioning())
	assert.Equal(t, []bool{false}, target.explodedCalls)
}

func TestToggleWithoutSelection(t *testing.T) {
	c, target, clock, sched := newTestCoordinator()
	target.exploded = false

	require.True(t, c.RequestExplodeToggle())
	assert.True(t, target.exploded)
	assert.False(t, c.RequestExplodeToggle())

	advance(clock, sched, 1599*time.Millisecond)
	assert.True(t, c.Transitioning())
	advance(clock, sched, time.Millisecond)
	assert.False(t, c.Transitioning())

	require.True(t, c.RequestExplodeToggle())
	assert.False(t, target.exploded)
	advance(clock, sched, 900*time.Millisecond)
	assert.False(t, c.Transitioning())
}

func TestSelectRejectedWhenReformedOrUnknown(t *testing.T) {
	c, target, _, sched := newTestCoordinator()

	assert.False(t, c.RequestSelect("nope"))
	assert.False(t, c.Transitioning())

	target.exploded = false
	assert.False(t, c.RequestSelect("craft"))
	assert.False(t, c.Transitioning())
	assert.Zero(t, sched.Pending())
}

func TestDeselectWithNothingSelectedReforms(t *testing.T) {
	c, target, _, _ := newTestCoordinator()

	require.True(t, c.RequestDeselect())
	assert.False(t, target.exploded)

	c.Reset()
	assert.False(t, c.RequestDeselect(), "nothing to do while reformed")
}

func TestResetInvalidatesSequence(t *testing.T) {
	c, target, clock, sched := newTestCoordinator()
	c.RequestSelect("craft")
	c.Reset()
	assert.False(t, c.Transitioning())

	advance(clock, sched, 5*time.Second)
	assert.False(t, target.detail, "stale show-detail step never runs")
}
