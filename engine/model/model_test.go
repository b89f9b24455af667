package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/Carmen-Shannon/oxy-crystal/engine/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame() crystal.Frame {
	return crystal.Frame{
		Glow: 0.4,
		Facets: []crystal.FacetFrame{
			{Key: "craft", Color: common.Color{R: 0, G: 0.5, B: 1, A: 1}, Position: mgl32.Vec3{1.3, 0.8, 0.5}, Scale: 1, Emissive: 0.5},
			{Key: "system", Color: common.Color{R: 1, G: 0, B: 0, A: 1}, Position: mgl32.Vec3{-0.5, 0.2, -1.8}, Scale: 1.2, Emissive: 1.1},
		},
	}
}

func TestShardIsClosedAndOutwardFacing(t *testing.T) {
	vertices := Shard()
	require.Len(t, vertices, ShardVertexCount)
	for i := 0; i < len(vertices); i += 3 {
		centroid := mgl32.Vec3(vertices[i].Position).
			Add(vertices[i+1].Position).
			Add(vertices[i+2].Position).
			Mul(1.0 / 3)
		n := mgl32.Vec3(vertices[i].Normal)
		assert.InDelta(t, 1, n.Len(), 1e-5)
		assert.Greater(t, n.Dot(centroid), float32(0), "face %d normal points inward", i/3)
	}
}

func TestInstancesHonorVisibility(t *testing.T) {
	f := testFrame()
	assert.Empty(t, Instances(f, nil))

	f.CrystalVisible = true
	assert.Len(t, Instances(f, nil), 1)

	f.FacetsVisible = true
	assert.Len(t, Instances(f, nil), 3)

	f.CrystalVisible = false
	assert.Len(t, Instances(f, nil), 2)
}

func TestInstancesPlaceFacetsAtFramePosition(t *testing.T) {
	f := testFrame()
	f.FacetsVisible = true
	instances := Instances(f, nil)
	require.Len(t, instances, 2)

	for i, ff := range f.Facets {
		m := mgl32.Mat4(instances[i].Model)
		assert.Equal(t, ff.Position, m.Col(3).Vec3())
		s := FacetSize * ff.Scale
		assert.InDelta(t, s, m.At(0, 0), 1e-6)
		assert.InDelta(t, s, m.At(1, 1), 1e-6)
		assert.InDelta(t, s, m.At(2, 2), 1e-6)
		assert.Equal(t, [4]float32{ff.Color.R, ff.Color.G, ff.Color.B, ff.Color.A}, instances[i].Color)
		assert.InDelta(t, ff.Color.B*ff.Emissive, instances[i].Emissive[2], 1e-6)
	}
	assert.Greater(t, instances[1].Emissive[0], instances[0].Emissive[0])
}

func TestInstancesCrystalUsesMaterialGlow(t *testing.T) {
	f := testFrame()
	f.CrystalVisible = true

	m := material.NewMaterial(
		material.WithBaseColor(common.Color{R: 0.9, G: 0.9, B: 1, A: 1}),
		material.WithEmissiveColor(common.Color{R: 0, G: 1, B: 0.5, A: 1}),
	)
	m.ApplyGlow(0.8)
	instances := Instances(f, m)
	require.Len(t, instances, 1)
	c := instances[0]
	assert.Equal(t, [4]float32{0.9, 0.9, 1, 1}, c.Color)
	assert.InDelta(t, 0.8, c.Emissive[1], 1e-6)
	assert.InDelta(t, 0.4, c.Emissive[2], 1e-6)
	assert.InDelta(t, CrystalHeight, mgl32.Mat4(c.Model).At(1, 1), 1e-6)

	// Without a material the frame glow drives the crystal.
	plain := Instances(f, nil)
	assert.InDelta(t, 0.4, plain[0].Emissive[1], 1e-6)
}

func TestGPUTypesMarshalLayout(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}}
	assert.Equal(t, 24, v.Size())
	vb := MarshalVertices([]GPUVertex{v, v})
	assert.Len(t, vb, 48)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(vb[40:44])))

	inst := GPUInstance{Model: mgl32.Ident4(), Emissive: [4]float32{0, 0, 0.7, 0}}
	assert.Equal(t, 96, inst.Size())
	ib := MarshalInstances([]GPUInstance{inst})
	require.Len(t, ib, 96)
	assert.Equal(t, float32(0.7), math.Float32frombits(binary.LittleEndian.Uint32(ib[88:92])))

	s := Scene(mgl32.Ident4())
	assert.Equal(t, 96, s.Size())
	sb := s.Marshal()
	require.Len(t, sb, 96)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(sb[60:64])))
	assert.InDelta(t, 1, mgl32.Vec3{s.LightDir[0], s.LightDir[1], s.LightDir[2]}.Len(), 1e-5)
}
