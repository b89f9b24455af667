package renderer

import (
	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/device"
	"github.com/Carmen-Shannon/oxy-crystal/engine/renderer/pipeline"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the GPU-facing half of the Renderer. The Renderer decides what a frame
// looks like; the backend owns the surface and submits passes.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and the multisample target for a new size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: if the surface could not be configured
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetSampleCount sets the MSAA sample count used by the next ConfigureSurface.
	SetSampleCount(count MSAASampleCount)

	// BeginFrame acquires the swapchain texture and begins a render pass cleared to clear.
	//
	// Parameters:
	//   - clear: the clear color
	//
	// Returns:
	//   - error: if the swapchain texture could not be acquired
	BeginFrame(clear common.Color) error

	// InitMesh uploads the shared vertex buffer every instance draws.
	//
	// Parameters:
	//   - vertexData: the packed vertices
	//   - vertexCount: the number of vertices in vertexData
	//
	// Returns:
	//   - error: if the buffer could not be created
	InitMesh(vertexData []byte, vertexCount int) error

	// RegisterRenderPipeline creates the GPU pipeline for p against the current surface
	// format and sample count, replacing any pipeline p already holds.
	//
	// Parameters:
	//   - p: the pipeline description
	//   - sceneSize: the size in bytes of the scene uniform bound at group 0
	//
	// Returns:
	//   - error: if the shader or pipeline could not be created
	RegisterRenderPipeline(p pipeline.Pipeline, sceneSize int) error

	// DrawInstances records an instanced draw of the mesh into the open render pass.
	//
	// Parameters:
	//   - p: a registered pipeline
	//   - scene: the packed scene uniform
	//   - instances: the packed per-instance data
	//   - instanceCount: the number of instances in instances
	//
	// Returns:
	//   - error: if the pipeline or mesh is not ready
	DrawInstances(p pipeline.Pipeline, scene, instances []byte, instanceCount int) error

	// EndFrame ends the render pass and submits the command buffer.
	EndFrame()

	// Present presents the surface and releases the swapchain texture.
	Present()

	// AdapterInfo describes the selected graphics adapter.
	AdapterInfo() *device.GPUInfo

	// Release frees all GPU resources.
	Release()
}
