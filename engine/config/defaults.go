package config

import (
	"math"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Documented defaults. Durations are in milliseconds unless noted.
const (
	DefaultExplodeDuration     Millis = 1600
	DefaultReformDuration      Millis = 900
	DefaultFacetZoomDuration   Millis = 1000
	DefaultFacetReturnDuration Millis = 1200

	DefaultDisappearDelay      Millis = 50
	DefaultFractureDuration    Millis = 350
	DefaultPulseDuration       Millis = 100
	DefaultGlowFadeDuration    Millis = 200
	DefaultLabelAppearDelay    Millis = 1600
	DefaultLabelStagger        Millis = 100
	DefaultCrystalAppearTime   Millis = 700
	DefaultFacetsDisappearTime Millis = 800
	DefaultDetailShowPadding   Millis = 100
	DefaultDetailHideDelay     Millis = 300

	// idle timing, seconds
	DefaultIdleTransitionStart float32 = 0.8
	DefaultIdleTransitionEnd   float32 = 1.5
	DefaultIdleSettling        float32 = 5.0

	DefaultCameraFov      float32 = 45
	DefaultZoomAmount     float32 = 4
	DefaultFacetBackOff   float32 = 3.5
	DefaultFallbackRadius float32 = 9
	DefaultRotateSpeed    float32 = 0.5
	DefaultMinDistance    float32 = 5
	DefaultMaxDistance    float32 = 20
)

// DefaultEasing is the curve used for explosion and reform when none is configured.
const DefaultEasing = "quadInOut"

// DefaultFacets returns the six authored facets. Fracture positions are 5% of the exploded offsets.
func DefaultFacets() []FacetConfig {
	facets := []FacetConfig{
		{Key: "empathy", Label: "Empathy", Description: "Understanding user needs and pain points", Color: "#64ffda", Exploded: mgl32.Vec3{0.3, -0.7, -0.2}},
		{Key: "narrative", Label: "Narrative", Description: "Guiding teams through compelling stories", Color: "#bb86fc", Exploded: mgl32.Vec3{0.3, -0.1, -0.7}},
		{Key: "craft", Label: "Craft", Description: "Precision in every design detail", Color: "#03dac6", Exploded: mgl32.Vec3{1.3, 0.8, 0.5}},
		{Key: "system", Label: "System", Description: "Building scalable design systems", Color: "#cf6679", Exploded: mgl32.Vec3{-0.5, 0.2, -1.8}},
		{Key: "leadership", Label: "Leadership", Description: "Empowering teams to do their best work", Color: "#ffd600", Exploded: mgl32.Vec3{0.4, 1.2, 0.9}},
		{Key: "exploration", Label: "Exploration", Description: "Finding opportunities in ambiguity", Color: "#ff7043", Exploded: mgl32.Vec3{-0.6, 0.7, 0.0}},
	}
	for i := range facets {
		facets[i].Fracture = facets[i].Exploded.Mul(0.05)
	}
	return facets
}

// Default returns a fully populated configuration.
func Default() *Config {
	c := &Config{Facets: DefaultFacets()}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults back-fills every zero-valued tunable with its documented default.
// Facets are only replaced when none are configured; authored zero positions are kept.
func (c *Config) ApplyDefaults() {
	if len(c.Facets) == 0 {
		c.Facets = DefaultFacets()
	}
	for i := range c.Facets {
		f := &c.Facets[i]
		f.Label = common.Coalesce(f.Label, f.Key)
		f.Color = common.Coalesce(f.Color, "#ffffff")
	}

	t := &c.Timing
	t.Camera.Explode = common.Coalesce(t.Camera.Explode, DefaultExplodeDuration)
	t.Camera.Reform = common.Coalesce(t.Camera.Reform, DefaultReformDuration)
	t.Camera.FacetZoom = common.Coalesce(t.Camera.FacetZoom, DefaultFacetZoomDuration)
	t.Camera.FacetReturn = common.Coalesce(t.Camera.FacetReturn, DefaultFacetReturnDuration)
	t.Crystal.DisappearDelay = common.Coalesce(t.Crystal.DisappearDelay, DefaultDisappearDelay)
	t.Fracture.Duration = common.Coalesce(t.Fracture.Duration, DefaultFractureDuration)
	t.Fracture.PulseDuration = common.Coalesce(t.Fracture.PulseDuration, DefaultPulseDuration)
	t.Fracture.GlowFadeDuration = common.Coalesce(t.Fracture.GlowFadeDuration, DefaultGlowFadeDuration)
	t.Labels.AppearDelay = common.Coalesce(t.Labels.AppearDelay, DefaultLabelAppearDelay)
	t.Labels.Stagger = common.Coalesce(t.Labels.Stagger, DefaultLabelStagger)
	t.Reform.CrystalAppearTime = common.Coalesce(t.Reform.CrystalAppearTime, DefaultCrystalAppearTime)
	t.Reform.FacetsDisappearTime = common.Coalesce(t.Reform.FacetsDisappearTime, DefaultFacetsDisappearTime)
	t.Idle.TransitionStart = common.Coalesce(t.Idle.TransitionStart, DefaultIdleTransitionStart)
	t.Idle.TransitionEnd = common.Coalesce(t.Idle.TransitionEnd, DefaultIdleTransitionEnd)
	t.Idle.Settling = common.Coalesce(t.Idle.Settling, DefaultIdleSettling)
	t.UI.DetailShowPadding = common.Coalesce(t.UI.DetailShowPadding, DefaultDetailShowPadding)
	t.UI.DetailHideDelay = common.Coalesce(t.UI.DetailHideDelay, DefaultDetailHideDelay)

	s := &c.Springs
	s.Fracture = coalescePreset(s.Fracture, SpringPreset{Mass: 1, Tension: 500, Friction: 20, Velocity: 10, Duration: 100})
	s.Explode = coalescePreset(s.Explode, SpringPreset{Mass: 1.5, Tension: 120, Friction: 14, Duration: 1200})
	s.Reform = coalescePreset(s.Reform, SpringPreset{Mass: 1, Tension: 170, Friction: 26, Duration: 800, Easing: DefaultEasing})
	s.LabelAppear = coalescePreset(s.LabelAppear, SpringPreset{Mass: 1, Tension: 280, Friction: 12})
	s.LabelHover = coalescePreset(s.LabelHover, SpringPreset{Mass: 1, Tension: 300, Friction: 20})

	e := &c.Effects
	e.IdleFloat.BaseAmplitude = common.Coalesce(e.IdleFloat.BaseAmplitude, 0.007)
	e.IdleFloat.XMultiplier = common.Coalesce(e.IdleFloat.XMultiplier, 0.6)
	e.IdleFloat.ZMultiplier = common.Coalesce(e.IdleFloat.ZMultiplier, 0.5)
	e.IdleFloat.YFrequency = common.Coalesce(e.IdleFloat.YFrequency, 1.2)
	e.IdleFloat.XFrequency = common.Coalesce(e.IdleFloat.XFrequency, 0.9)
	e.IdleFloat.ZFrequency = common.Coalesce(e.IdleFloat.ZFrequency, 0.7)
	e.IdleFloat.PhaseStep = common.Coalesce(e.IdleFloat.PhaseStep, 0.5)
	e.IdleGlow.PulseBase = common.Coalesce(e.IdleGlow.PulseBase, 0.2)
	e.IdleGlow.PulseStrength = common.Coalesce(e.IdleGlow.PulseStrength, 0.3)
	e.IdleGlow.BaseFrequency = common.Coalesce(e.IdleGlow.BaseFrequency, 0.5)
	e.IdleGlow.FrequencyMultiplier = common.Coalesce(e.IdleGlow.FrequencyMultiplier, 0.1)
	e.IdleGlow.PhaseOffset = common.Coalesce(e.IdleGlow.PhaseOffset, 0.5)
	e.FractureGlow.MaxScaleFactor = common.Coalesce(e.FractureGlow.MaxScaleFactor, 0.1)
	e.FractureGlow.InitialGlow = common.Coalesce(e.FractureGlow.InitialGlow, 3.0)
	e.FractureGlow.SecondaryGlow = common.Coalesce(e.FractureGlow.SecondaryGlow, 1.0)
	e.Highlight.Selected = common.Coalesce(e.Highlight.Selected, 1.2)
	e.Highlight.Hovered = common.Coalesce(e.Highlight.Hovered, 0.6)

	cam := &c.Camera
	cam.StartPosition = common.Coalesce(cam.StartPosition, mgl32.Vec3{0, 0, 9})
	cam.FovDegrees = common.Coalesce(cam.FovDegrees, DefaultCameraFov)
	cam.ZoomAmount = common.Coalesce(cam.ZoomAmount, DefaultZoomAmount)
	cam.FacetBackOff = common.Coalesce(cam.FacetBackOff, DefaultFacetBackOff)
	cam.FallbackRadius = common.Coalesce(cam.FallbackRadius, DefaultFallbackRadius)
	cam.RotateSpeed = common.Coalesce(cam.RotateSpeed, DefaultRotateSpeed)
	cam.MinPolarAngle = common.Coalesce(cam.MinPolarAngle, float32(math.Pi/3))
	cam.MaxPolarAngle = common.Coalesce(cam.MaxPolarAngle, float32(math.Pi/1.5))
	cam.MinDistance = common.Coalesce(cam.MinDistance, DefaultMinDistance)
	cam.MaxDistance = common.Coalesce(cam.MaxDistance, DefaultMaxDistance)

	c.Easings.Explosion = common.Coalesce(c.Easings.Explosion, DefaultEasing)
	c.Easings.Reform = common.Coalesce(c.Easings.Reform, DefaultEasing)

	c.Material.Variant = common.Coalesce(c.Material.Variant, "crystal")
	c.Audio.Volume = common.Coalesce(c.Audio.Volume, 0.6)
}

// coalescePreset fills zero fields of p from def. The whole preset is taken from def when p is empty.
func coalescePreset(p, def SpringPreset) SpringPreset {
	if p == (SpringPreset{}) {
		return def
	}
	p.Mass = common.Coalesce(p.Mass, 1)
	p.Tension = common.Coalesce(p.Tension, def.Tension)
	p.Friction = common.Coalesce(p.Friction, def.Friction)
	return p
}
