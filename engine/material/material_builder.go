package material

import "github.com/Carmen-Shannon/oxy-crystal/common"

// MaterialBuilderOption is a functional option for configuring a Material.
type MaterialBuilderOption func(*material)

// WithName sets the material identifier.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithVariant sets the surface variant and its default surface settings.
//
// Parameters:
//   - v: the variant
//
// Returns:
//   - MaterialBuilderOption: a function that applies the variant to a material
func WithVariant(v Variant) MaterialBuilderOption {
	return func(m *material) {
		m.variant = v
		m.surface = DefaultSurface(v)
	}
}

// WithBaseColor sets the albedo color.
//
// Parameters:
//   - c: the base color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color to a material
func WithBaseColor(c common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = c
	}
}

// WithEmissiveColor sets the emissive tint.
//
// Parameters:
//   - c: the emissive color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive color to a material
func WithEmissiveColor(c common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.emissiveColor = c
	}
}

// WithSurface overrides the variant's default surface settings. Apply after WithVariant.
//
// Parameters:
//   - s: the surface settings
//
// Returns:
//   - MaterialBuilderOption: a function that applies the surface to a material
func WithSurface(s Surface) MaterialBuilderOption {
	return func(m *material) {
		m.surface = s
	}
}
