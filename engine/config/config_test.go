package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Facets, 6)
	assert.Equal(t, DefaultFractureDuration, cfg.Timing.Fracture.Duration)
	assert.Equal(t, float32(1.0), cfg.Effects.FractureGlow.SecondaryGlow)
	assert.Equal(t, float32(0.1), cfg.Effects.IdleGlow.FrequencyMultiplier)
	assert.Equal(t, float32(0.5), cfg.Effects.IdleGlow.PhaseOffset)
	assert.Equal(t, mgl32.Vec3{0, 0, 9}, cfg.Camera.StartPosition)

	craft, ok := cfg.Facet("craft")
	require.True(t, ok)
	assert.InDelta(t, 0.065, craft.Fracture[0], 1e-6)
	assert.InDelta(t, 0.040, craft.Fracture[1], 1e-6)
	assert.InDelta(t, 0.025, craft.Fracture[2], 1e-6)
}

func TestApplyDefaultsKeepsAuthoredValues(t *testing.T) {
	cfg := &Config{}
	cfg.Timing.Fracture.Duration = 500
	cfg.Effects.FractureGlow.InitialGlow = 4
	cfg.Springs.Explode = SpringPreset{Tension: 90}
	cfg.ApplyDefaults()

	assert.Equal(t, Millis(500), cfg.Timing.Fracture.Duration)
	assert.Equal(t, DefaultPulseDuration, cfg.Timing.Fracture.PulseDuration)
	assert.Equal(t, float32(4), cfg.Effects.FractureGlow.InitialGlow)
	assert.Equal(t, float32(1), cfg.Effects.FractureGlow.SecondaryGlow)
	assert.Equal(t, float32(90), cfg.Springs.Explode.Tension)
	assert.Equal(t, float32(1), cfg.Springs.Explode.Mass)
	assert.Equal(t, Millis(0), cfg.Springs.Explode.Duration, "a partially authored preset stays physics driven")
	assert.Len(t, cfg.Facets, 6)
}

func TestDecodeYAML(t *testing.T) {
	src := []byte(`
facets:
  - key: alpha
    color: "#ff0000"
    exploded: [1, 2, 3]
  - key: beta
    color: "#00ff00"
    exploded: [-1, 0, 0]
timing:
  fracture:
    duration: 420
  idle:
    transitionEndTime: 2.5
easings:
  facetZoom: cubicOut
`)
	cfg, err := Decode(src, ".yaml")
	require.NoError(t, err)

	require.Len(t, cfg.Facets, 2)
	assert.Equal(t, "alpha", cfg.Facets[0].Label, "label defaults to key")
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cfg.Facets[0].Exploded)
	assert.Equal(t, Millis(420), cfg.Timing.Fracture.Duration)
	assert.Equal(t, 420*time.Millisecond, cfg.Timing.Fracture.Duration.Duration())
	assert.Equal(t, float32(2.5), cfg.Timing.Idle.TransitionEnd)
	assert.Equal(t, DefaultIdleTransitionStart, cfg.Timing.Idle.TransitionStart)
	assert.Equal(t, "cubicOut", cfg.Easings.FacetZoom)
	assert.Equal(t, DefaultEasing, cfg.Easings.Explosion)
}

func TestDecodeTOML(t *testing.T) {
	src := []byte(`
[[facets]]
key = "solo"
color = "#abcdef"
exploded = [0.5, 0.5, 0.5]

[camera]
zoomAmount = 6.0

[audio]
muted = true
`)
	cfg, err := Decode(src, "toml")
	require.NoError(t, err)

	require.Len(t, cfg.Facets, 1)
	assert.Equal(t, float32(6), cfg.Camera.ZoomAmount)
	assert.Equal(t, DefaultFacetBackOff, cfg.Camera.FacetBackOff)
	assert.True(t, cfg.Audio.Muted)
}

func TestEncodeRoundTripsThroughDecode(t *testing.T) {
	for _, ext := range []string{"yaml", "toml"} {
		data, err := Encode(Default(), ext)
		require.NoError(t, err, ext)

		cfg, err := Decode(data, ext)
		require.NoError(t, err, ext)
		assert.Equal(t, Default(), cfg, ext)
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	_, err := Decode([]byte("{}"), ".json")
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Decode([]byte("facets:\n  - key: a\n  - key: a\n"), "yaml")
	assert.ErrorContains(t, err, "duplicate key")

	_, err = Decode([]byte("facets:\n  - key: a\n    color: nope\n"), "yaml")
	assert.ErrorContains(t, err, "invalid hex color")

	_, err = Decode([]byte("timing: [1, 2"), "yaml")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCloneIsDeep(t *testing.T) {
	cfg := Default()
	cp := cfg.Clone()
	require.Equal(t, cfg, cp)

	cp.Facets[0].Exploded = mgl32.Vec3{9, 9, 9}
	cp.Timing.Camera.Explode = 1
	assert.NotEqual(t, cfg.Facets[0].Exploded, cp.Facets[0].Exploded)
	assert.Equal(t, DefaultExplodeDuration, cfg.Timing.Camera.Explode)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crystal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timing:\n  fracture:\n    duration: 100\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, func(c *Config) { reloaded <- c }) }()

	// give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("timing:\n  fracture:\n    duration: 777\n"), 0o644))

	select {
	case c := <-reloaded:
		assert.Equal(t, Millis(777), c.Timing.Fracture.Duration)
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
