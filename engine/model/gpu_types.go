package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for the shard pipeline.
// Matches GPUVertex layout exactly (24 bytes).
//
//go:embed assets/shard_vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single shard vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 24 bytes (no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: flat face normal for lighting (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	return buf
}

// GPUInstanceSource is the canonical WGSL definition of the InstanceInput struct for the shard pipeline.
// Matches GPUInstance layout exactly (96 bytes, std430 aligned).
//
//go:embed assets/shard_instance.wgsl
var GPUInstanceSource string

// GPUInstance is the per-instance data for one drawn shard: the crystal or a single facet.
// Matches the WGSL InstanceInput struct layout exactly (see GPUInstanceSource).
// Size: 96 bytes (std430 aligned, no padding required).
type GPUInstance struct {
	Model    [16]float32 // offset  0: column-major model matrix (64 bytes)
	Color    [4]float32  // offset 64: RGBA base color (16 bytes)
	Emissive [4]float32  // offset 80: RGB emissive radiance, w unused (16 bytes)
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload.
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, 96)
	putFloats(buf[0:64], g.Model[:])
	putFloats(buf[64:80], g.Color[:])
	putFloats(buf[80:96], g.Emissive[:])
	return buf
}

// GPUSceneSource is the canonical WGSL definition of the Scene uniform.
// Matches GPUScene layout exactly (96 bytes, std140 aligned).
//
//go:embed assets/scene.wgsl
var GPUSceneSource string

// GPUScene is the per-frame uniform shared by every instance in the shard pass.
// Matches the WGSL Scene struct layout exactly (see GPUSceneSource).
// Size: 96 bytes (std140 aligned, no padding required).
type GPUScene struct {
	ViewProj [16]float32 // offset  0: column-major view-projection matrix (64 bytes)
	LightDir [4]float32  // offset 64: direction the key light travels, xyz normalized (16 bytes)
	Ambient  [4]float32  // offset 80: ambient light color, w unused (16 bytes)
}

// Size returns the size of the GPUScene struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUScene) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUScene struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload.
func (g *GPUScene) Marshal() []byte {
	buf := make([]byte, 96)
	putFloats(buf[0:64], g.ViewProj[:])
	putFloats(buf[64:80], g.LightDir[:])
	putFloats(buf[80:96], g.Ambient[:])
	return buf
}

// MarshalVertices packs vertices back to back for a vertex buffer upload.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: the packed vertex data
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, 0, len(vertices)*24)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// MarshalInstances packs instances back to back for an instance buffer upload.
//
// Parameters:
//   - instances: the instances to pack
//
// Returns:
//   - []byte: the packed instance data
func MarshalInstances(instances []GPUInstance) []byte {
	buf := make([]byte, 0, len(instances)*96)
	for i := range instances {
		buf = append(buf, instances[i].Marshal()...)
	}
	return buf
}

func putFloats(buf []byte, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
}
