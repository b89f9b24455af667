// Package config holds the single nested configuration record consumed by the crystal assembly.
//
// Every tunable (timing, spring presets, effect constants, authored facet positions, camera
// parameters, easing names) lives here so that animation durations and scheduling delays are
// read from the same place. Missing fields are back-filled once by ApplyDefaults.
package config

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
)

// Millis is a duration in whole milliseconds, as authored in config files.
type Millis int64

// Duration converts m to a time.Duration.
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// Config is the root configuration record.
type Config struct {
	Facets   []FacetConfig  `yaml:"facets" toml:"facets"`
	Timing   Timing         `yaml:"timing" toml:"timing"`
	Springs  Springs        `yaml:"springs" toml:"springs"`
	Effects  Effects        `yaml:"effects" toml:"effects"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Easings  Easings        `yaml:"easings" toml:"easings"`
	Material MaterialConfig `yaml:"material" toml:"material"`
	Audio    AudioConfig    `yaml:"audio" toml:"audio"`
}

// FacetConfig describes one authored facet.
type FacetConfig struct {
	Key         string     `yaml:"key" toml:"key"`
	Label       string     `yaml:"label" toml:"label"`
	Description string     `yaml:"description" toml:"description"`
	Color       string     `yaml:"color" toml:"color"`
	Start       mgl32.Vec3 `yaml:"start" toml:"start"`
	Fracture    mgl32.Vec3 `yaml:"fracture" toml:"fracture"`
	Exploded    mgl32.Vec3 `yaml:"exploded" toml:"exploded"`
}

// Timing groups every duration and delay. The phase machine, camera controller and
// selection coordinator all read from the same Timing value.
type Timing struct {
	Camera   CameraTiming   `yaml:"camera" toml:"camera"`
	Crystal  CrystalTiming  `yaml:"crystal" toml:"crystal"`
	Fracture FractureTiming `yaml:"fracture" toml:"fracture"`
	Labels   LabelTiming    `yaml:"labels" toml:"labels"`
	Reform   ReformTiming   `yaml:"reform" toml:"reform"`
	Idle     IdleTiming     `yaml:"idle" toml:"idle"`
	UI       UITiming       `yaml:"ui" toml:"ui"`
}

type CameraTiming struct {
	Explode     Millis `yaml:"explodeDuration" toml:"explodeDuration"`
	Reform      Millis `yaml:"reformDuration" toml:"reformDuration"`
	FacetZoom   Millis `yaml:"facetZoomDuration" toml:"facetZoomDuration"`
	FacetReturn Millis `yaml:"facetReturnDuration" toml:"facetReturnDuration"`
}

type CrystalTiming struct {
	DisappearDelay Millis `yaml:"disappearDelay" toml:"disappearDelay"`
}

type FractureTiming struct {
	Duration         Millis `yaml:"duration" toml:"duration"`
	PulseDuration    Millis `yaml:"pulseDuration" toml:"pulseDuration"`
	GlowFadeDuration Millis `yaml:"glowFadeDuration" toml:"glowFadeDuration"`
}

type LabelTiming struct {
	AppearDelay Millis `yaml:"appearDelay" toml:"appearDelay"`
	Stagger     Millis `yaml:"staggerDelay" toml:"staggerDelay"`
}

type ReformTiming struct {
	CrystalAppearTime   Millis `yaml:"crystalAppearTime" toml:"crystalAppearTime"`
	FacetsDisappearTime Millis `yaml:"facetsDisappearTime" toml:"facetsDisappearTime"`
}

// IdleTiming is expressed in seconds since the explosion started.
type IdleTiming struct {
	TransitionStart float32 `yaml:"transitionStartTime" toml:"transitionStartTime"`
	TransitionEnd   float32 `yaml:"transitionEndTime" toml:"transitionEndTime"`
	Settling        float32 `yaml:"settlingDuration" toml:"settlingDuration"`
}

// UITiming holds the detail-card delays used by the selection sequences.
type UITiming struct {
	DetailShowPadding Millis `yaml:"detailShowPadding" toml:"detailShowPadding"`
	DetailHideDelay   Millis `yaml:"detailHideDelay" toml:"detailHideDelay"`
}

// SpringPreset configures one spring animation. A positive Duration turns the spring
// into a timed tween using Easing; otherwise Mass, Tension and Friction drive a damped
// spring starting with Velocity.
type SpringPreset struct {
	Mass     float32 `yaml:"mass" toml:"mass"`
	Tension  float32 `yaml:"tension" toml:"tension"`
	Friction float32 `yaml:"friction" toml:"friction"`
	Velocity float32 `yaml:"velocity" toml:"velocity"`
	Duration Millis  `yaml:"duration" toml:"duration"`
	Easing   string  `yaml:"easing" toml:"easing"`
}

type Springs struct {
	Fracture    SpringPreset `yaml:"fracture" toml:"fracture"`
	Explode     SpringPreset `yaml:"explode" toml:"explode"`
	Reform      SpringPreset `yaml:"reform" toml:"reform"`
	LabelAppear SpringPreset `yaml:"labelAppear" toml:"labelAppear"`
	LabelHover  SpringPreset `yaml:"labelHover" toml:"labelHover"`
}

type Effects struct {
	IdleFloat    IdleFloat    `yaml:"idleFloat" toml:"idleFloat"`
	IdleGlow     IdleGlow     `yaml:"idleGlow" toml:"idleGlow"`
	FractureGlow FractureGlow `yaml:"fractureGlow" toml:"fractureGlow"`
	Highlight    Highlight    `yaml:"highlight" toml:"highlight"`
}

// IdleFloat configures the sinusoidal drift of exploded facets.
type IdleFloat struct {
	BaseAmplitude float32 `yaml:"baseAmplitude" toml:"baseAmplitude"`
	XMultiplier   float32 `yaml:"xMultiplier" toml:"xMultiplier"`
	ZMultiplier   float32 `yaml:"zMultiplier" toml:"zMultiplier"`
	YFrequency    float32 `yaml:"yFrequency" toml:"yFrequency"`
	XFrequency    float32 `yaml:"xFrequency" toml:"xFrequency"`
	ZFrequency    float32 `yaml:"zFrequency" toml:"zFrequency"`
	PhaseStep     float32 `yaml:"phaseStep" toml:"phaseStep"`
}

// IdleGlow configures the emissive pulse of exploded facets. Facet i pulses at
// BaseFrequency + i*FrequencyMultiplier with a phase of i*PhaseOffset.
type IdleGlow struct {
	PulseBase           float32 `yaml:"pulseBase" toml:"pulseBase"`
	PulseStrength       float32 `yaml:"pulseStrength" toml:"pulseStrength"`
	BaseFrequency       float32 `yaml:"baseFrequency" toml:"baseFrequency"`
	FrequencyMultiplier float32 `yaml:"frequencyMultiplier" toml:"frequencyMultiplier"`
	PhaseOffset         float32 `yaml:"phaseOffset" toml:"phaseOffset"`
}

type FractureGlow struct {
	MaxScaleFactor float32 `yaml:"maxScaleFactor" toml:"maxScaleFactor"`
	InitialGlow    float32 `yaml:"initialGlow" toml:"initialGlow"`
	SecondaryGlow  float32 `yaml:"secondaryGlow" toml:"secondaryGlow"`
}

// Highlight is the extra emissive added to a single facet on top of the frame glow.
type Highlight struct {
	Selected float32 `yaml:"selected" toml:"selected"`
	Hovered  float32 `yaml:"hovered" toml:"hovered"`
}

type CameraConfig struct {
	StartPosition  mgl32.Vec3 `yaml:"startPosition" toml:"startPosition"`
	FovDegrees     float32    `yaml:"fov" toml:"fov"`
	ZoomAmount     float32    `yaml:"zoomAmount" toml:"zoomAmount"`
	FacetBackOff   float32    `yaml:"facetBackOff" toml:"facetBackOff"`
	FallbackRadius float32    `yaml:"fallbackRadius" toml:"fallbackRadius"`
	RotateSpeed    float32    `yaml:"rotateSpeed" toml:"rotateSpeed"`
	MinPolarAngle  float32    `yaml:"minPolarAngle" toml:"minPolarAngle"`
	MaxPolarAngle  float32    `yaml:"maxPolarAngle" toml:"maxPolarAngle"`

	// EnableZoom lets scroll input dolly the camera between MinDistance and MaxDistance.
	EnableZoom  bool    `yaml:"enableZoom" toml:"enableZoom"`
	MinDistance float32 `yaml:"minDistance" toml:"minDistance"`
	MaxDistance float32 `yaml:"maxDistance" toml:"maxDistance"`
}

// Easings names the curves used by the camera. Empty FacetZoom and FacetReturn fall back
// to Explosion and Reform respectively.
type Easings struct {
	Explosion   string `yaml:"explosion" toml:"explosion"`
	Reform      string `yaml:"reform" toml:"reform"`
	FacetZoom   string `yaml:"facetZoom" toml:"facetZoom"`
	FacetReturn string `yaml:"facetReturn" toml:"facetReturn"`
}

type MaterialConfig struct {
	Variant string `yaml:"variant" toml:"variant"`
}

type AudioConfig struct {
	Muted  bool    `yaml:"muted" toml:"muted"`
	Volume float32 `yaml:"volume" toml:"volume"`
}

// Facet returns the facet with the given key.
//
// Parameters:
//   - key: the facet key
//
// Returns:
//   - FacetConfig: the facet, zero if absent
//   - bool: true if found
func (c *Config) Facet(key string) (FacetConfig, bool) {
	for _, f := range c.Facets {
		if f.Key == key {
			return f, true
		}
	}
	return FacetConfig{}, false
}

// Validate checks structural constraints that defaults cannot repair.
//
// Returns:
//   - error: the first violation found, or nil
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Facets))
	for i, f := range c.Facets {
		if f.Key == "" {
			return fmt.Errorf("facet %d: empty key", i)
		}
		if _, dup := seen[f.Key]; dup {
			return fmt.Errorf("facet %d: duplicate key %q", i, f.Key)
		}
		seen[f.Key] = struct{}{}
		if _, err := common.ParseHexColor(f.Color); err != nil {
			return fmt.Errorf("facet %q: %w", f.Key, err)
		}
	}
	if c.Timing.Idle.TransitionEnd <= c.Timing.Idle.TransitionStart {
		return fmt.Errorf("idle transition end %.3fs must be after start %.3fs",
			c.Timing.Idle.TransitionEnd, c.Timing.Idle.TransitionStart)
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := &Config{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		// unreachable: source and destination share a type
		panic(fmt.Sprintf("config clone: %v", err))
	}
	return out
}
