// Package renderer draws crystal frames to a window surface.
package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/camera"
	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/Carmen-Shannon/oxy-crystal/engine/device"
	"github.com/Carmen-Shannon/oxy-crystal/engine/material"
	"github.com/Carmen-Shannon/oxy-crystal/engine/model"
	"github.com/Carmen-Shannon/oxy-crystal/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-crystal/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	fallbackFov  = 45
	fallbackNear = 0.1
	fallbackFar  = 100
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width       int
	height      int
	renderScale float32
	background  common.Color
	lastClear   common.Color
	frames      uint64
	drawn       int

	material material.Material
	camera   camera.Camera

	// shard is re-registered whenever the sample count changes.
	shard      pipeline.Pipeline
	shardReady bool
	meshReady  bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
}

// Renderer draws crystal frames.
//
// The Renderer turns a crystal.Frame into GPU work. The backend owns the surface; the
// Renderer owns sizing, the render budget and the frame's colors.
type Renderer interface {
	// Resize reconfigures the surface for a new window size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// ApplyPerformance applies a device render budget: vsync selects the present mode,
	// antialiasing selects MSAA and the render scale sizes the internal target.
	//
	// Parameters:
	//   - p: the performance preset
	ApplyPerformance(p device.PerformanceConfig)

	// RenderFrame runs one full frame lifecycle: begin, clear, draw the visible crystal
	// and facets, end and present. A failed draw is logged and the frame still presents.
	//
	// Parameters:
	//   - f: the frame snapshot to draw
	//
	// Returns:
	//   - error: if the swapchain texture could not be acquired
	RenderFrame(f crystal.Frame) error

	// LastClearColor returns the clear color of the most recent frame.
	LastClearColor() common.Color

	// Frames returns the number of frames presented.
	Frames() uint64

	// LastInstanceCount returns the number of shards drawn in the most recent frame.
	LastInstanceCount() int

	// RenderSize returns the internal render resolution after scaling.
	//
	// Returns:
	//   - int: the scaled width
	//   - int: the scaled height
	RenderSize() (int, int)

	// AdapterInfo describes the graphics adapter, for device detection.
	AdapterInfo() *device.GPUInfo

	// Release frees GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given window.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - w: the window whose surface is rendered to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: if the GPU could not be initialized
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
		if err != nil {
			return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
		}
		r.backend = b
	}

	if err := r.attach(w.Width(), w.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		renderScale: 1,
		background:  crystal.DefaultBackground,
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
		shard:       pipeline.NewShardPipeline(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// attach pushes the pending config into a fresh backend and configures the surface.
func (r *renderer) attach(width, height int) error {
	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetSampleCount(r.msaa)
	r.width, r.height = width, height
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to configure surface: %w", err)
	}
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.reconfigure()
}

func (r *renderer) reconfigure() {
	r.mu.Lock()
	w, h := r.width, r.height
	r.mu.Unlock()
	if err := r.backend.ConfigureSurface(w, h); err != nil {
		log.Printf("[Renderer] warning: %v", err)
	}
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	r.presentMode = mode
	r.mu.Unlock()
	r.backend.SetPresentMode(mode)
	r.reconfigure()
}

func (r *renderer) ApplyPerformance(p device.PerformanceConfig) {
	mode := PresentModeUncapped
	if p.VSync {
		mode = PresentModeVSync
	}
	msaa := MSAAOff
	if p.Antialiasing {
		msaa = MSAA4x
	}

	r.mu.Lock()
	changed := mode != r.presentMode || msaa != r.msaa
	r.presentMode = mode
	r.msaa = msaa
	r.renderScale = common.Clamp(p.RenderScale, 0.1, 1)
	r.mu.Unlock()

	if changed {
		r.mu.Lock()
		r.shardReady = false
		r.mu.Unlock()
		r.backend.SetPresentMode(mode)
		r.backend.SetSampleCount(msaa)
		r.reconfigure()
	}
	log.Printf("[Renderer] applied %s budget (scale %.2f, msaa %d)", p.Name, p.RenderScale, msaa)
}

func (r *renderer) RenderFrame(f crystal.Frame) error {
	r.mu.Lock()
	clear := f.Background(r.background)
	r.lastClear = clear
	r.mu.Unlock()

	if err := r.backend.BeginFrame(clear); err != nil {
		return err
	}
	drawn := r.drawShards(f)
	r.backend.EndFrame()
	r.backend.Present()

	r.mu.Lock()
	r.frames++
	r.drawn = drawn
	r.mu.Unlock()
	return nil
}

// ensureShard uploads the shard mesh and registers the pipeline when either is missing.
func (r *renderer) ensureShard() bool {
	r.mu.Lock()
	meshReady, shardReady := r.meshReady, r.shardReady
	r.mu.Unlock()

	if !meshReady {
		vertices := model.Shard()
		if err := r.backend.InitMesh(model.MarshalVertices(vertices), len(vertices)); err != nil {
			log.Printf("[Renderer] warning: shard mesh: %v", err)
			return false
		}
		r.mu.Lock()
		r.meshReady = true
		r.mu.Unlock()
	}
	if !shardReady {
		var scene model.GPUScene
		if err := r.backend.RegisterRenderPipeline(r.shard, scene.Size()); err != nil {
			log.Printf("[Renderer] warning: shard pipeline: %v", err)
			return false
		}
	}

	r.mu.Lock()
	r.shardReady = true
	r.mu.Unlock()
	return true
}

// drawShards draws the crystal and facets the frame marks visible and returns the instance count.
func (r *renderer) drawShards(f crystal.Frame) int {
	instances := model.Instances(f, r.material)
	if len(instances) == 0 || !r.ensureShard() {
		return 0
	}
	scene := model.Scene(r.projection().Mul4(camera.ViewFromPose(f.Camera)))
	if err := r.backend.DrawInstances(r.shard, scene.Marshal(), model.MarshalInstances(instances), len(instances)); err != nil {
		log.Printf("[Renderer] warning: draw: %v", err)
		return 0
	}
	return len(instances)
}

func (r *renderer) projection() mgl32.Mat4 {
	if r.camera != nil {
		return r.camera.ProjectionMatrix()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	aspect := float32(1)
	if r.height > 0 {
		aspect = float32(r.width) / float32(r.height)
	}
	return common.PerspectiveZO(mgl32.DegToRad(fallbackFov), aspect, fallbackNear, fallbackFar)
}

func (r *renderer) LastInstanceCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drawn
}

func (r *renderer) LastClearColor() common.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastClear
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) RenderSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	scale := func(v int) int {
		return max(1, int(float32(v)*r.renderScale+0.5))
	}
	return scale(r.width), scale(r.height)
}

func (r *renderer) AdapterInfo() *device.GPUInfo {
	return r.backend.AdapterInfo()
}

func (r *renderer) Release() {
	r.shard.Release()
	r.backend.Release()
}
