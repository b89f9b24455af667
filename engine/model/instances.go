package model

import (
	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/Carmen-Shannon/oxy-crystal/engine/material"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// FacetSize is the shard half-extent of a facet at Scale 1.
	FacetSize float32 = 0.18
	// CrystalWidth and CrystalHeight are the half-extents of the whole crystal.
	CrystalWidth  float32 = 0.5
	CrystalHeight float32 = 0.9
)

var (
	keyLight     = mgl32.Vec3{-0.4, -1, -0.6}
	ambientLight = [4]float32{0.22, 0.24, 0.3, 1}
)

// Instances turns a frame into the shard instances to draw. The crystal comes first when
// it is visible, followed by one instance per facet when facets are visible.
//
// Parameters:
//   - f: the frame snapshot
//   - m: the crystal material, nil draws the crystal white with the frame's glow
//
// Returns:
//   - []GPUInstance: the instances in draw order
func Instances(f crystal.Frame, m material.Material) []GPUInstance {
	instances := make([]GPUInstance, 0, len(f.Facets)+1)
	if f.CrystalVisible {
		base := common.Color{R: 1, G: 1, B: 1, A: 1}
		emissive := common.Color{R: 0.39, G: 1, B: 0.85, A: 1}.Scale(f.Glow)
		if m != nil {
			base = m.BaseColor()
			emissive = m.EmissiveColor().Scale(m.Glow())
		}
		model := mgl32.Scale3D(CrystalWidth, CrystalHeight, CrystalWidth)
		instances = append(instances, newInstance(model, base, emissive))
	}
	if !f.FacetsVisible {
		return instances
	}
	for _, ff := range f.Facets {
		s := FacetSize * ff.Scale
		model := mgl32.Translate3D(ff.Position.X(), ff.Position.Y(), ff.Position.Z()).
			Mul4(mgl32.Scale3D(s, s, s))
		instances = append(instances, newInstance(model, ff.Color, ff.Color.Scale(ff.Emissive)))
	}
	return instances
}

// Scene builds the frame uniform for a view-projection matrix.
//
// Parameters:
//   - viewProj: the combined projection * view matrix
//
// Returns:
//   - GPUScene: the uniform ready to marshal
func Scene(viewProj mgl32.Mat4) GPUScene {
	l := keyLight.Normalize()
	return GPUScene{
		ViewProj: viewProj,
		LightDir: [4]float32{l.X(), l.Y(), l.Z(), 0},
		Ambient:  ambientLight,
	}
}

func newInstance(model mgl32.Mat4, color, emissive common.Color) GPUInstance {
	return GPUInstance{
		Model:    model,
		Color:    [4]float32{color.R, color.G, color.B, color.A},
		Emissive: [4]float32{emissive.R, emissive.G, emissive.B, 0},
	}
}
