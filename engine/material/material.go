package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-crystal/common"
)

// GlowSink receives the frame glow computed by the assembly.
type GlowSink interface {
	// ApplyGlow writes the glow intensity for this frame.
	//
	// Parameters:
	//   - intensity: the emissive intensity
	ApplyGlow(intensity float32)
}

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name              string
	variant           Variant
	baseColor         common.Color
	emissiveColor     common.Color
	emissiveIntensity float32
	surface           Surface
}

// Material is the shared crystal material. Every facet reads the same instance, so
// glow written here lights the whole assembly.
//
// Glow is routed by variant: variants with LocalGlow write it into their surface
// settings and leave the shared emissive intensity untouched.
type Material interface {
	GlowSink

	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Variant retrieves the surface variant.
	//
	// Returns:
	//   - Variant: the variant
	Variant() Variant

	// BaseColor retrieves the albedo color.
	//
	// Returns:
	//   - common.Color: the base color
	BaseColor() common.Color

	// EmissiveColor retrieves the emissive tint.
	//
	// Returns:
	//   - common.Color: the emissive color
	EmissiveColor() common.Color

	// EmissiveIntensity retrieves the shared emissive intensity.
	//
	// Returns:
	//   - float32: the intensity last written to the shared material
	EmissiveIntensity() float32

	// Surface retrieves the variant's surface settings, including its local emissive intensity.
	//
	// Returns:
	//   - Surface: the surface settings
	Surface() Surface

	// Glow retrieves the intensity currently lighting the crystal, wherever it was routed.
	//
	// Returns:
	//   - float32: the effective emissive intensity
	Glow() float32

	// SetVariant switches variant and resets the surface to the variant's defaults.
	//
	// Parameters:
	//   - v: the new variant
	SetVariant(v Variant)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:            &sync.Mutex{},
		name:          "crystal",
		variant:       VariantCrystal,
		baseColor:     common.Color{R: 1, G: 1, B: 1, A: 1},
		emissiveColor: common.Color{R: 0.39, G: 1, B: 0.85, A: 1},
	}
	m.surface = DefaultSurface(m.variant)
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Variant() Variant {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.variant
}

func (m *material) BaseColor() common.Color {
	return m.baseColor
}

func (m *material) EmissiveColor() common.Color {
	return m.emissiveColor
}

func (m *material) EmissiveIntensity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.emissiveIntensity
}

func (m *material) Surface() Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.surface
}

func (m *material) Glow() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.variant.LocalGlow() {
		return m.surface.EmissiveIntensity
	}
	return m.emissiveIntensity
}

func (m *material) ApplyGlow(intensity float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.variant.LocalGlow() {
		m.surface.EmissiveIntensity = intensity
		return
	}
	m.emissiveIntensity = intensity
}

func (m *material) SetVariant(v Variant) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.variant = v
	m.surface = DefaultSurface(v)
}
