// Package pipeline describes the render pipelines the renderer registers with its backend.
package pipeline

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-crystal/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

// ShardPipelineKey identifies the instanced shard pipeline.
const ShardPipelineKey = "shard"

//go:embed assets/shard.wgsl
var shardShaderSource string

// ShardSource returns the complete WGSL module for the shard pass: the shared struct
// definitions followed by the entry points.
func ShardSource() string {
	return model.GPUSceneSource + "\n" + model.GPUVertexSource + "\n" + model.GPUInstanceSource + "\n" + shardShaderSource
}

// NewShardPipeline creates the pipeline that draws one shard instance per crystal or facet.
// Slot 0 carries model.GPUVertex per vertex, slot 1 carries model.GPUInstance per instance.
//
// Parameters:
//   - opts: extra options applied after the shard defaults
//
// Returns:
//   - Pipeline: the configured shard pipeline
func NewShardPipeline(opts ...PipelineBuilderOption) Pipeline {
	vertexStride := uint64(unsafe.Sizeof(model.GPUVertex{}))
	instanceStride := uint64(unsafe.Sizeof(model.GPUInstance{}))
	defaults := []PipelineBuilderOption{
		WithShader(ShardSource(), "vs_main", "fs_main"),
		WithCullMode(wgpu.CullModeBack),
		WithVertexLayouts(
			wgpu.VertexBufferLayout{
				ArrayStride: vertexStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				},
			},
			wgpu.VertexBufferLayout{
				ArrayStride: instanceStride,
				StepMode:    wgpu.VertexStepModeInstance,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 3},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 5},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 64, ShaderLocation: 6},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 80, ShaderLocation: 7},
				},
			},
		),
	}
	return NewPipeline(ShardPipelineKey, append(defaults, opts...)...)
}
