// Package model holds the GPU geometry for the crystal scene: the shard mesh and the
// per-instance data that places it for the crystal and for each facet.
package model

import "github.com/go-gl/mathgl/mgl32"

// ShardVertexCount is the number of vertices in the flat-shaded shard mesh.
const ShardVertexCount = 24

// Shard returns a unit octahedron with one flat normal per face, wound counter-clockwise
// when viewed from outside.
//
// Returns:
//   - []GPUVertex: ShardVertexCount vertices forming a triangle list
func Shard() []GPUVertex {
	top := mgl32.Vec3{0, 1, 0}
	bottom := mgl32.Vec3{0, -1, 0}
	ring := [4]mgl32.Vec3{{1, 0, 0}, {0, 0, 1}, {-1, 0, 0}, {0, 0, -1}}

	vertices := make([]GPUVertex, 0, ShardVertexCount)
	face := func(a, b, c mgl32.Vec3) {
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		for _, p := range [3]mgl32.Vec3{a, b, c} {
			vertices = append(vertices, GPUVertex{Position: p, Normal: n})
		}
	}
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		face(a, top, b)
		face(a, b, bottom)
	}
	return vertices
}
