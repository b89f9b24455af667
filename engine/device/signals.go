// Package device classifies the host into a performance tier and layout category and
// resolves the render and UI presets for it.
package device

import (
	"fmt"
	"regexp"
	"runtime"
)

// GPUInfo describes the graphics adapter.
type GPUInfo struct {
	Renderer   string `yaml:"renderer"`
	Vendor     string `yaml:"vendor"`
	Integrated bool   `yaml:"integrated"`
}

var integratedGPU = regexp.MustCompile(`(?i)intel|integrated|mali|adreno|powervr`)

// NewGPUInfo builds a GPUInfo, inferring Integrated from the renderer string.
func NewGPUInfo(renderer, vendor string) *GPUInfo {
	return &GPUInfo{
		Renderer:   renderer,
		Vendor:     vendor,
		Integrated: integratedGPU.MatchString(renderer),
	}
}

// Signals are the raw hardware observations classification is computed from.
type Signals struct {
	// UserAgent is a browser user agent or a synthesized platform string.
	UserAgent string

	CPUCores int

	// MemoryGB is 0 when unknown.
	MemoryGB float32

	// GPU is nil when the adapter could not be queried.
	GPU *GPUInfo

	ModernGraphics bool

	ScreenWidth  int
	ScreenHeight int
	PixelRatio   float32
	Touch        bool
}

// SignalSource produces Signals on demand.
type SignalSource interface {
	// Signals reads the current hardware signals.
	//
	// Returns:
	//   - Signals: the observations
	//   - error: if the host could not be queried
	Signals() (Signals, error)
}

// SignalSourceFunc adapts a function to SignalSource.
type SignalSourceFunc func() (Signals, error)

func (f SignalSourceFunc) Signals() (Signals, error) {
	return f()
}

// StaticSource always returns the same Signals.
type StaticSource Signals

func (s StaticSource) Signals() (Signals, error) {
	return Signals(s), nil
}

// NativeSource reads signals from the running process. Screen and GPU are supplied by
// the windowing and graphics layers, which may be absent in headless runs.
type NativeSource struct {
	// Screen returns the primary monitor size and content scale.
	Screen func() (width, height int, pixelRatio float32, err error)

	// GPU returns the graphics adapter description.
	GPU func() (*GPUInfo, error)
}

// PlatformUserAgent synthesizes a user agent string for the current process.
func PlatformUserAgent() string {
	return fmt.Sprintf("oxy-crystal (%s; %s) Go/%s", runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func (n NativeSource) Signals() (Signals, error) {
	s := Signals{
		UserAgent:  PlatformUserAgent(),
		CPUCores:   runtime.NumCPU(),
		PixelRatio: 1,
	}
	if n.Screen != nil {
		w, h, dpr, err := n.Screen()
		if err != nil {
			return s, fmt.Errorf("failed to query screen: %w", err)
		}
		s.ScreenWidth, s.ScreenHeight, s.PixelRatio = w, h, dpr
	}
	if n.GPU != nil {
		gpu, err := n.GPU()
		if err != nil {
			return s, fmt.Errorf("failed to query gpu: %w", err)
		}
		s.GPU = gpu
		s.ModernGraphics = gpu != nil
	}
	return s, nil
}
