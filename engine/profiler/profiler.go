package profiler

import (
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
)

// sampleWindow is the number of per-second FPS samples kept for the average, min and max.
const sampleWindow = 60

// Stats is a snapshot of frame rate statistics.
type Stats struct {
	Current float64
	Average float64
	Min     float64
	Max     float64
	Samples int
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval when logging is enabled.
type Profiler struct {
	mu             *sync.Mutex
	clock          timer.TimeProvider
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	logging        bool
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	samples []float64
	next    int
	current float64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second and the clock to the wall clock.
//
// Parameters:
//   - options: builder options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		mu:             &sync.Mutex{},
		clock:          timer.WallClock{},
		updateInterval: time.Second,
		logging:        true,
		samples:        make([]float64, 0, sampleWindow),
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.clock.Now()
	return p
}

// Tick should be called once per frame to track frame timing.
// Records an FPS sample and, when logging, writes performance statistics once the update
// interval has elapsed: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if a sample was recorded this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := p.clock.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	p.record(fps)

	if p.logging {
		p.logMemory(fps, elapsed)
	}

	p.frameCount = 0
	p.lastTime = currentTime
	return true
}

func (p *Profiler) record(fps float64) {
	p.current = fps
	if len(p.samples) < sampleWindow {
		p.samples = append(p.samples, fps)
		return
	}
	p.samples[p.next] = fps
	p.next = (p.next + 1) % sampleWindow
}

func (p *Profiler) logMemory(fps float64, elapsed time.Duration) {
	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	s := p.statsLocked()
	log.Printf("[Profiler] FPS: %.2f (avg %.2f, min %.2f, max %.2f) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, s.Average, s.Min, s.Max, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}

// Stats returns the frame rate statistics over the sample window.
func (p *Profiler) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statsLocked()
}

func (p *Profiler) statsLocked() Stats {
	s := Stats{Current: p.current, Samples: len(p.samples)}
	if len(p.samples) == 0 {
		return s
	}
	s.Min, s.Max = p.samples[0], p.samples[0]
	sum := 0.0
	for _, v := range p.samples {
		sum += v
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}
	s.Average = sum / float64(len(p.samples))
	return s
}

// Reset clears all samples.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samples = p.samples[:0]
	p.next = 0
	p.current = 0
	p.frameCount = 0
	p.lastTime = p.clock.Now()
}
