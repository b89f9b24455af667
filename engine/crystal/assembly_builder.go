package crystal

import (
	"github.com/Carmen-Shannon/oxy-crystal/engine/camera"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/material"
	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
)

// AssemblyBuilderOption is a functional option for configuring an Assembly.
type AssemblyBuilderOption func(*assemblyImpl)

// WithConfig sets the configuration. The assembly keeps its own copy.
//
// Parameters:
//   - cfg: the configuration, with defaults applied
//
// Returns:
//   - AssemblyBuilderOption: functional option to set the configuration
func WithConfig(cfg *config.Config) AssemblyBuilderOption {
	return func(a *assemblyImpl) {
		a.cfg = cfg.Clone()
	}
}

// WithTimeProvider sets the clock that drives the scheduler and every animation.
//
// Parameters:
//   - tp: the time source
//
// Returns:
//   - AssemblyBuilderOption: functional option to set the clock
func WithTimeProvider(tp timer.TimeProvider) AssemblyBuilderOption {
	return func(a *assemblyImpl) {
		a.clock = tp
	}
}

// WithCameraController replaces the default camera controller.
//
// Parameters:
//   - cc: the controller
//
// Returns:
//   - AssemblyBuilderOption: functional option to set the camera controller
func WithCameraController(cc camera.CameraController) AssemblyBuilderOption {
	return func(a *assemblyImpl) {
		a.cam = cc
	}
}

// WithMaterial sets the shared crystal material. It also receives the glow unless
// WithGlowSink is given.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - AssemblyBuilderOption: functional option to set the material
func WithMaterial(m material.Material) AssemblyBuilderOption {
	return func(a *assemblyImpl) {
		a.mat = m
	}
}

// WithGlowSink routes the frame glow to sink instead of the material.
//
// Parameters:
//   - sink: the glow receiver
//
// Returns:
//   - AssemblyBuilderOption: functional option to set the glow sink
func WithGlowSink(sink material.GlowSink) AssemblyBuilderOption {
	return func(a *assemblyImpl) {
		a.sink = sink
	}
}

// WithPhaseListener registers a callback for phase changes.
//
// Parameters:
//   - l: the listener
//
// Returns:
//   - AssemblyBuilderOption: functional option to add the listener
func WithPhaseListener(l PhaseListener) AssemblyBuilderOption {
	return func(a *assemblyImpl) {
		a.listeners = append(a.listeners, l)
	}
}
