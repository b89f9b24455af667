package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVariant(t *testing.T) {
	v, ok := ParseVariant("iceopal")
	assert.True(t, ok)
	assert.Equal(t, VariantIceOpal, v)

	v, ok = ParseVariant("default")
	assert.True(t, ok)
	assert.Equal(t, VariantCrystal, v)

	v, ok = ParseVariant("marble")
	assert.False(t, ok)
	assert.Equal(t, VariantCrystal, v)

	assert.Len(t, Variants(), 5)
}

func TestGlowRoutedByVariant(t *testing.T) {
	shared := NewMaterial()
	shared.ApplyGlow(2.5)
	assert.Equal(t, float32(2.5), shared.EmissiveIntensity())
	assert.Equal(t, float32(2.5), shared.Glow())
	assert.Zero(t, shared.Surface().EmissiveIntensity)

	for _, v := range []Variant{VariantBlackOpal, VariantIceOpal} {
		local := NewMaterial(WithVariant(v))
		local.ApplyGlow(1.7)
		assert.Zero(t, local.EmissiveIntensity(), "variant %s", v)
		assert.Equal(t, float32(1.7), local.Surface().EmissiveIntensity)
		assert.Equal(t, float32(1.7), local.Glow())
	}

	solid := NewMaterial(WithVariant(VariantBlackOpalSolidEmissive))
	solid.ApplyGlow(0.4)
	assert.Equal(t, float32(0.4), solid.EmissiveIntensity())
}

func TestSetVariantResetsSurface(t *testing.T) {
	m := NewMaterial(WithVariant(VariantBlackOpal))
	m.ApplyGlow(3)
	m.SetVariant(VariantIceOpal)
	assert.Equal(t, DefaultSurface(VariantIceOpal), m.Surface())
}

func TestForPerformance(t *testing.T) {
	assert.Equal(t, VariantCrystal, VariantBlackOpal.ForPerformance(false))
	assert.Equal(t, VariantBlackOpal, VariantBlackOpal.ForPerformance(true))
}
