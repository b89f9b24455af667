// Package crystal implements the explode and select choreography of a faceted crystal:
// the explosion phase machine, spring-to-idle blending, fracture and idle glow, camera
// transitions and the selection lock, all owned by a single Assembly.
package crystal

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/camera"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/material"
	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
)

// PhaseListener is notified after a tick or request that changed the phase.
type PhaseListener func(phase Phase)

// Assembly is the owned state store of one crystal. It is the single writer of all
// animation state; renderers read the Frame snapshot it produces on every Tick.
type Assembly interface {
	// Tick fires due timers and advances every animation to the clock's current time.
	//
	// Returns:
	//   - Frame: the snapshot for this tick
	Tick() Frame

	// Frame returns the snapshot produced by the most recent Tick.
	//
	// Returns:
	//   - Frame: the last snapshot
	Frame() Frame

	// RequestSelect selects key, or deselects it when it is already selected.
	// Dropped while a transition is in flight.
	//
	// Parameters:
	//   - key: the facet key
	//
	// Returns:
	//   - bool: true if a transition started
	RequestSelect(key string) bool

	// RequestDeselect clears the selection, or reforms when nothing is selected.
	// Dropped while a transition is in flight.
	//
	// Returns:
	//   - bool: true if a transition started
	RequestDeselect() bool

	// RequestExplodeToggle explodes or reforms the crystal.
	// Dropped while a transition is in flight.
	//
	// Returns:
	//   - bool: true if a transition started
	RequestExplodeToggle() bool

	// SetHovered marks key as hovered; "" clears the hover. Ignored while reformed
	// or while a transition is in flight.
	//
	// Parameters:
	//   - key: the facet key
	//
	// Returns:
	//   - bool: true if the hover changed
	SetHovered(key string) bool

	// Navigate moves the hover to the nearest facet in direction d.
	//
	// Parameters:
	//   - d: the direction
	//
	// Returns:
	//   - string: the newly hovered key, "" when nothing changed
	Navigate(d Direction) string

	// Orbit forwards user orbit input to the camera controller.
	//
	// Parameters:
	//   - dAzimuth: horizontal input
	//   - dElevation: vertical input
	Orbit(dAzimuth, dElevation float32)

	// Zoom forwards scroll input to the camera controller.
	//
	// Parameters:
	//   - steps: scroll input, positive toward the crystal
	Zoom(steps float32)

	// ApplyConfig swaps in a new configuration. Authored positions apply immediately.
	//
	// Parameters:
	//   - cfg: the new configuration, with defaults applied
	ApplyConfig(cfg *config.Config)

	// SetPBR records whether the current render budget allows physically based
	// materials and switches the material variant to match. The choice survives
	// ApplyConfig.
	//
	// Parameters:
	//   - usePBR: false limits the material to the plain crystal variant
	SetPBR(usePBR bool)

	// Config returns a copy of the active configuration.
	//
	// Returns:
	//   - *config.Config: the configuration
	Config() *config.Config

	// Scheduler returns the scheduler that Tick drives.
	//
	// Returns:
	//   - *timer.Scheduler: the shared scheduler
	Scheduler() *timer.Scheduler

	// Camera returns the camera controller owned by the assembly.
	//
	// Returns:
	//   - camera.CameraController: the controller
	Camera() camera.CameraController

	// Material returns the shared crystal material.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material
}

type assemblyImpl struct {
	mu *sync.Mutex

	cfg      *config.Config
	clock    timer.TimeProvider
	sched    *timer.Scheduler
	phase    *PhaseMachine
	coord    *SelectionCoordinator
	blender  IdleFloatBlender
	glow     *GlowAnimator
	cam      camera.CameraController
	mat      material.Material
	sink     material.GlowSink
	facets   []*facet
	byKey    map[string]*facet
	labelsEp timer.Epoch

	selected      string
	hovered       string
	orbitEnabled  bool
	detailVisible bool
	usePBR        bool

	lastTick time.Time
	frame    Frame

	listeners []PhaseListener
	events    []Phase
}

var _ Assembly = &assemblyImpl{}

// NewAssembly creates an assembly in the reformed state.
//
// Parameters:
//   - options: functional options to configure the assembly
//
// Returns:
//   - Assembly: the new assembly
func NewAssembly(options ...AssemblyBuilderOption) Assembly {
	a := &assemblyImpl{
		mu:           &sync.Mutex{},
		cfg:          config.Default(),
		clock:        timer.WallClock{},
		orbitEnabled: true,
		usePBR:       true,
	}
	for _, opt := range options {
		opt(a)
	}

	a.sched = timer.NewScheduler(a.clock)
	a.phase = NewPhaseMachine(a.sched, &a.cfg.Timing, a.onPhase)
	a.coord = NewSelectionCoordinator(a.sched, &a.cfg.Timing, (*coordinatorTarget)(a))
	if a.cam == nil {
		a.cam = camera.NewCameraController(camera.WithConfig(a.cfg))
	}
	if a.mat == nil {
		v, ok := material.ParseVariant(a.cfg.Material.Variant)
		if !ok {
			log.Printf("[Assembly] Warning: unknown material variant %q, using %s", a.cfg.Material.Variant, v)
		}
		a.mat = material.NewMaterial(material.WithVariant(v))
	}
	if a.sink == nil {
		a.sink = a.mat
	}
	a.cam.SetOrbitEnabled(a.orbitEnabled)
	a.rebuild()

	a.lastTick = a.clock.Now()
	a.frame = a.snapshot(a.lastTick, GlowNone, 0, 1)
	return a
}

// rebuild derives every config-dependent collaborator from a.cfg. Caller must hold
// the mutex or be the constructor.
func (a *assemblyImpl) rebuild() {
	a.blender = IdleFloatBlender{Idle: a.cfg.Timing.Idle, Float: a.cfg.Effects.IdleFloat}
	prev := a.glow
	a.glow = NewGlowAnimator(a.cfg)
	if prev != nil {
		a.glow.last = prev.last
	}

	a.facets = make([]*facet, len(a.cfg.Facets))
	a.byKey = make(map[string]*facet, len(a.cfg.Facets))
	for i, fc := range a.cfg.Facets {
		f := newFacet(fc, i, a.cfg.Springs, fc.Start)
		at := f.target(a.phase.Phase())
		f.spring.Snap(at)
		f.position = at
		f.showLabel(a.phase.LabelsVisible())
		a.facets[i] = f
		a.byKey[fc.Key] = f
	}
	if _, ok := a.byKey[a.selected]; !ok {
		a.selected = ""
	}
	if _, ok := a.byKey[a.hovered]; !ok {
		a.hovered = ""
	}
	if f, ok := a.byKey[a.hovered]; ok {
		f.hoverLabel(true)
	}
}

func (a *assemblyImpl) Tick() Frame {
	a.mu.Lock()
	now := a.clock.Now()
	a.sched.Update()
	a.advance(now)

	exploded := a.phase.Exploded()
	phase := a.phase.Phase()
	since := now.Sub(a.phase.ExplosionStart())
	t := float32(since.Seconds())

	for _, f := range a.facets {
		springPos := f.spring.Position()
		switch {
		case exploded && phase == PhaseExploded && f.cfg.Key == a.selected:
			// frozen at its last displayed position
		case exploded && phase == PhaseExploded:
			f.position = a.blender.Blend(springPos, f.cfg.Exploded, t, f.index)
		default:
			f.position = springPos
		}
	}

	src := ResolveGlowSource(exploded, phase)
	scale, glow := a.glow.Frame(src, since)
	a.sink.ApplyGlow(glow)
	for _, f := range a.facets {
		f.glow = a.glow.FacetGlow(src, since, f.index, glow)
	}

	a.cam.Update(now)

	a.frame = a.snapshot(now, src, glow, scale)
	frame := a.frame.clone()
	events := a.takeEvents()
	a.mu.Unlock()

	a.dispatch(events)
	return frame
}

// advance steps every spring from the last tick up to to. Call it before retargeting.
// Caller must hold the mutex.
func (a *assemblyImpl) advance(to time.Time) {
	dt := to.Sub(a.lastTick)
	if dt <= 0 {
		return
	}
	a.lastTick = to
	for _, f := range a.facets {
		f.spring.Update(dt)
		f.labelOpacity.Update(dt)
		f.labelScale.Update(dt)
	}
}

// snapshot builds the frame from current state. Caller must hold the mutex.
func (a *assemblyImpl) snapshot(now time.Time, src GlowSource, glow, scale float32) Frame {
	fr := Frame{
		Time:            now,
		Phase:           a.phase.Phase(),
		Exploded:        a.phase.Exploded(),
		Selected:        a.selected,
		Hovered:         a.hovered,
		CrystalVisible:  a.phase.CrystalVisible(),
		FacetsVisible:   a.phase.FacetsVisible(),
		LabelsVisible:   a.phase.LabelsVisible(),
		GlowSource:      src,
		Glow:            glow,
		Facets:          make([]FacetFrame, len(a.facets)),
		Camera:          a.cam.Pose(),
		CameraAnimating: a.cam.Animating(),
		OrbitEnabled:    a.orbitEnabled,
		DetailVisible:   a.detailVisible,
		Transitioning:   a.coord.Transitioning(),
	}
	hl := a.cfg.Effects.Highlight
	for i, f := range a.facets {
		ff := FacetFrame{
			Key:          f.cfg.Key,
			Label:        f.cfg.Label,
			Description:  f.cfg.Description,
			Color:        f.color,
			Position:     f.position,
			Scale:        scale,
			Emissive:     f.glow,
			Selected:     f.cfg.Key == a.selected,
			Hovered:      f.cfg.Key == a.hovered,
			LabelOpacity: f.labelOpacity.Value(),
			LabelScale:   f.labelScale.Value(),
		}
		switch {
		case ff.Selected:
			ff.Emissive += hl.Selected
		case ff.Hovered:
			ff.Emissive += hl.Hovered
		}
		fr.Facets[i] = ff
	}
	return fr
}

func (a *assemblyImpl) Frame() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frame.clone()
}

func (a *assemblyImpl) RequestSelect(key string) bool {
	return a.request(func() bool { return a.coord.RequestSelect(key) })
}

func (a *assemblyImpl) RequestDeselect() bool {
	return a.request(a.coord.RequestDeselect)
}

func (a *assemblyImpl) RequestExplodeToggle() bool {
	return a.request(a.coord.RequestExplodeToggle)
}

func (a *assemblyImpl) request(fn func() bool) bool {
	a.mu.Lock()
	a.advance(a.clock.Now())
	ok := fn()
	events := a.takeEvents()
	a.mu.Unlock()

	a.dispatch(events)
	return ok
}

func (a *assemblyImpl) SetHovered(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.advance(a.clock.Now())
	return a.setHovered(key)
}

// setHovered applies a hover change. Caller must hold the mutex.
func (a *assemblyImpl) setHovered(key string) bool {
	if key == a.hovered || a.coord.Transitioning() || !a.phase.Exploded() {
		return false
	}
	if key != "" {
		if _, ok := a.byKey[key]; !ok {
			log.Printf("[Assembly] Warning: hover of unknown facet %q", key)
			return false
		}
	}
	if f, ok := a.byKey[a.hovered]; ok {
		f.hoverLabel(false)
	}
	a.hovered = key
	if f, ok := a.byKey[key]; ok {
		f.hoverLabel(true)
	}
	return true
}

func (a *assemblyImpl) Navigate(d Direction) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.phase.Exploded() {
		return ""
	}
	next := Navigate(a.cfg.Facets, a.hovered, d)
	a.advance(a.clock.Now())
	if !a.setHovered(next) {
		return ""
	}
	return next
}

func (a *assemblyImpl) Orbit(dAzimuth, dElevation float32) {
	a.cam.Orbit(dAzimuth, dElevation)
}

func (a *assemblyImpl) Zoom(steps float32) {
	a.cam.Zoom(steps)
}

func (a *assemblyImpl) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// copied in place: the phase machine and coordinator hold &a.cfg.Timing
	*a.cfg = *cfg.Clone()
	a.rebuild()
	a.cam.SetConfig(a.cfg)

	a.applyVariant()
	log.Printf("[Assembly] Applied config with %d facets", len(a.facets))
}

func (a *assemblyImpl) SetPBR(usePBR bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.usePBR = usePBR
	a.applyVariant()
}

// applyVariant sets the material to the configured variant under the current render
// budget. Unknown variant names leave the material unchanged. Caller must hold the mutex.
func (a *assemblyImpl) applyVariant() {
	v, ok := material.ParseVariant(a.cfg.Material.Variant)
	if !ok {
		return
	}
	if v = v.ForPerformance(a.usePBR); v != a.mat.Variant() {
		a.mat.SetVariant(v)
	}
}

func (a *assemblyImpl) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg.Clone()
}

func (a *assemblyImpl) Scheduler() *timer.Scheduler {
	return a.sched
}

func (a *assemblyImpl) Camera() camera.CameraController {
	return a.cam
}

func (a *assemblyImpl) Material() material.Material {
	return a.mat
}

// onPhase retargets the facet springs and labels for the new phase. It runs inside
// the phase machine, with the mutex held.
func (a *assemblyImpl) onPhase(p Phase) {
	a.advance(a.sched.Now())
	var preset config.SpringPreset
	switch p {
	case PhaseFractured:
		preset = a.cfg.Springs.Fracture
		a.scheduleLabels()
	case PhaseExploded:
		preset = a.cfg.Springs.Explode
	default:
		preset = a.cfg.Springs.Reform
		a.labelsEp.Advance()
		for _, f := range a.facets {
			f.showLabel(false)
		}
		a.setHoveredLocked("")
	}
	for _, f := range a.facets {
		f.spring.SetTarget(f.target(p), preset)
	}
	a.events = append(a.events, p)
}

// scheduleLabels staggers label appearance after the explosion starts.
func (a *assemblyImpl) scheduleLabels() {
	a.labelsEp.Advance()
	delay := a.cfg.Timing.Labels.AppearDelay.Duration()
	stagger := a.cfg.Timing.Labels.Stagger.Duration()
	for i, f := range a.facets {
		a.sched.After(delay+time.Duration(i)*stagger, &a.labelsEp, func() {
			a.advance(a.sched.Now())
			f.showLabel(true)
		})
	}
}

// setHoveredLocked clears or sets the hover without the transition and phase checks.
func (a *assemblyImpl) setHoveredLocked(key string) {
	if f, ok := a.byKey[a.hovered]; ok {
		f.hoverLabel(false)
	}
	a.hovered = key
	if f, ok := a.byKey[key]; ok {
		f.hoverLabel(true)
	}
}

func (a *assemblyImpl) observeCamera() {
	obs := camera.Observation{Exploded: a.phase.Exploded(), Selected: a.selected}
	if f, ok := a.byKey[a.selected]; ok {
		obs.FacetPosition = f.position
		obs.FacetKnown = true
	}
	a.cam.Observe(a.sched.Now(), obs)
}

func (a *assemblyImpl) takeEvents() []Phase {
	ev := a.events
	a.events = nil
	return ev
}

func (a *assemblyImpl) dispatch(events []Phase) {
	for _, p := range events {
		for _, l := range a.listeners {
			l(p)
		}
	}
}

// coordinatorTarget exposes the assembly's state to the selection coordinator.
// Its methods run with the assembly mutex already held.
type coordinatorTarget assemblyImpl

func (t *coordinatorTarget) Selected() string { return t.selected }

func (t *coordinatorTarget) Exploded() bool { return t.phase.Exploded() }

func (t *coordinatorTarget) HasFacet(key string) bool {
	_, ok := t.byKey[key]
	return ok
}

func (t *coordinatorTarget) SetSelected(key string) {
	a := (*assemblyImpl)(t)
	if key == a.selected {
		return
	}
	a.selected = key
	a.observeCamera()
}

func (t *coordinatorTarget) SetExploded(exploded bool) {
	a := (*assemblyImpl)(t)
	a.phase.SetExploded(exploded)
	a.observeCamera()
}

func (t *coordinatorTarget) SetOrbitEnabled(enabled bool) {
	t.orbitEnabled = enabled
	t.cam.SetOrbitEnabled(enabled)
}

func (t *coordinatorTarget) SetDetailVisible(visible bool) {
	t.detailVisible = visible
}
