package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runBuiltin(t *testing.T, options ...RunnerBuilderOption) map[string]Report {
	t.Helper()
	reports := NewRunner(options...).Run(context.Background(), Builtin())
	require.Len(t, reports, len(Builtin()))
	byName := map[string]Report{}
	for _, r := range reports {
		require.NoError(t, r.Err, r.Name)
		byName[r.Name] = r
	}
	return byName
}

func TestExplodeIdle(t *testing.T) {
	r := runBuiltin(t)["explode-idle"]

	assert.Equal(t, []crystal.Phase{crystal.PhaseFractured, crystal.PhaseExploded}, r.Phases())
	assert.Equal(t, time.Duration(0), r.Events[0].At)
	assert.Equal(t, 350*time.Millisecond, r.Events[1].At)

	assert.True(t, r.Final.Exploded)
	assert.False(t, r.Final.CrystalVisible)
	assert.True(t, r.Final.FacetsVisible)
	assert.True(t, r.Final.LabelsVisible)
	assert.Equal(t, 601, r.Ticks)
}

func TestSelectThenSelect(t *testing.T) {
	r := runBuiltin(t)["select-then-select"]

	require.Len(t, r.Snapshots, 3)
	assert.Equal(t, "craft", r.Snapshots[1].Frame.Selected)
	assert.Equal(t, "system", r.Snapshots[2].Frame.Selected)

	assert.Equal(t, "system", r.Final.Selected)
	assert.True(t, r.Final.DetailVisible)
	assert.False(t, r.Final.OrbitEnabled)
}

func TestReformMidFracture(t *testing.T) {
	r := runBuiltin(t)["reform-mid-fracture"]

	assert.Equal(t, []crystal.Phase{crystal.PhaseFractured, crystal.PhaseInitial}, r.Phases())
	assert.Equal(t, 250*time.Millisecond, r.Events[1].At)

	assert.False(t, r.Final.Exploded)
	assert.True(t, r.Final.CrystalVisible)
	assert.False(t, r.Final.FacetsVisible)
}

func TestToggleWithSelection(t *testing.T) {
	r := runBuiltin(t)["toggle-with-selection"]

	assert.Equal(t, []crystal.Phase{crystal.PhaseFractured, crystal.PhaseExploded, crystal.PhaseInitial}, r.Phases())
	assert.Equal(t, 5500*time.Millisecond, r.Events[2].At)

	assert.Equal(t, "", r.Final.Selected)
	assert.False(t, r.Final.Exploded)
	assert.True(t, r.Final.CrystalVisible)
	assert.True(t, r.Final.OrbitEnabled)
	assert.False(t, r.Final.Transitioning)
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	serial := runBuiltin(t, WithWorkers(1))
	parallel := runBuiltin(t, WithWorkers(4))
	for name, r := range serial {
		assert.Equal(t, r.Summary(), parallel[name].Summary(), name)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reports := NewRunner(WithWorkers(2)).Run(ctx, Builtin())
	require.Len(t, reports, len(Builtin()))
	for _, r := range reports {
		assert.ErrorIs(t, r.Err, context.Canceled)
		assert.Zero(t, r.Ticks)
		assert.Equal(t, context.Canceled.Error(), r.Summary().Error)
	}
}

func TestRunEmpty(t *testing.T) {
	assert.Nil(t, NewRunner().Run(context.Background(), nil))
}

func TestByName(t *testing.T) {
	all, err := ByName()
	require.NoError(t, err)
	assert.Len(t, all, 4)

	got, err := ByName("toggle-with-selection", "explode-idle")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "toggle-with-selection", got[0].Name)
	assert.Equal(t, "explode-idle", got[1].Name)

	_, err = ByName("nope")
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	r := runBuiltin(t)["explode-idle"]
	s := r.Summary()
	assert.Equal(t, "exploded", s.Phase)
	assert.Equal(t, []string{"0s fractured", "350ms exploded"}, s.Events)
	assert.Empty(t, s.Error)
}
