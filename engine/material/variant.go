package material

import "strings"

// Variant selects one of the authored crystal surface looks.
type Variant string

const (
	VariantCrystal                Variant = "crystal"
	VariantBlackOpal              Variant = "blackOpal"
	VariantBlackOpalSolidBase     Variant = "blackOpalSolidBase"
	VariantBlackOpalSolidEmissive Variant = "blackOpalSolidEmissive"
	VariantIceOpal                Variant = "iceOpal"
)

var variants = []Variant{
	VariantCrystal,
	VariantBlackOpal,
	VariantBlackOpalSolidBase,
	VariantBlackOpalSolidEmissive,
	VariantIceOpal,
}

// Variants returns every known variant in display order.
func Variants() []Variant {
	return append([]Variant(nil), variants...)
}

// ParseVariant resolves a variant name case-insensitively. "default" maps to VariantCrystal.
//
// Parameters:
//   - s: the variant name
//
// Returns:
//   - Variant: the resolved variant, VariantCrystal when unknown
//   - bool: false if s did not name a variant
func ParseVariant(s string) (Variant, bool) {
	if s == "" || strings.EqualFold(s, "default") {
		return VariantCrystal, true
	}
	for _, v := range variants {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return VariantCrystal, false
}

// LocalGlow reports whether the variant receives glow through its own surface
// settings instead of the shared emissive intensity.
func (v Variant) LocalGlow() bool {
	return v == VariantBlackOpal || v == VariantIceOpal
}

// ForPerformance returns the variant to use under a render budget. Without PBR
// support only the plain crystal look is available.
func (v Variant) ForPerformance(usePBR bool) Variant {
	if !usePBR {
		return VariantCrystal
	}
	return v
}

// Surface holds the physically based surface settings of a variant.
type Surface struct {
	EmissiveIntensity float32
	Roughness         float32
	Metalness         float32
	Clearcoat         float32
	Transmission      float32
	Iridescence       float32
	NormalScale       float32
}

// DefaultSurface returns the authored surface settings for v.
func DefaultSurface(v Variant) Surface {
	switch v {
	case VariantBlackOpal, VariantBlackOpalSolidBase, VariantBlackOpalSolidEmissive:
		return Surface{EmissiveIntensity: 0.5, Roughness: 0.4, Metalness: 0.1, Clearcoat: 0.6, Transmission: 0.2, Iridescence: 0.9, NormalScale: 0.8}
	case VariantIceOpal:
		return Surface{EmissiveIntensity: 0.5, Roughness: 0.25, Metalness: 0.05, Clearcoat: 0.8, Transmission: 0.6, Iridescence: 0.7, NormalScale: 0.6}
	default:
		return Surface{Roughness: 0.1, Transmission: 0.9, Clearcoat: 1, NormalScale: 1}
	}
}
