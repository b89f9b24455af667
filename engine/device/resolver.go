package device

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
)

const (
	resizeDebounce      = 250 * time.Millisecond
	orientationRedetect = 500 * time.Millisecond
)

// Orientation is the screen's aspect class.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// OrientationOf returns Landscape when w > h.
func OrientationOf(w, h int) Orientation {
	if w > h {
		return Landscape
	}
	return Portrait
}

// Screen describes the display the profile was resolved for.
type Screen struct {
	Width       int         `yaml:"width"`
	Height      int         `yaml:"height"`
	PixelRatio  float32     `yaml:"pixelRatio"`
	Orientation Orientation `yaml:"orientation"`
}

// Profile is a fully resolved device profile.
type Profile struct {
	Category    Category          `yaml:"category"`
	Tier        Tier              `yaml:"tier"`
	Score       float32           `yaml:"score"`
	Mobile      bool              `yaml:"mobile"`
	Tablet      bool              `yaml:"tablet"`
	IOS         bool              `yaml:"ios"`
	IPad        bool              `yaml:"ipad"`
	Android     bool              `yaml:"android"`
	Touch       bool              `yaml:"touch"`
	CPUCores    int               `yaml:"cpuCores"`
	MemoryGB    float32           `yaml:"memoryGB"`
	GPU         *GPUInfo          `yaml:"gpu,omitempty"`
	Screen      Screen            `yaml:"screen"`
	Overridden  bool              `yaml:"overridden"`
	Fallback    bool              `yaml:"fallback"`
	DetectedAt  time.Time         `yaml:"detectedAt"`
	Performance PerformanceConfig `yaml:"performance"`
	UI          UIConfig          `yaml:"ui"`
}

// ResolveProfile classifies signals into a complete Profile.
//
// Parameters:
//   - s: the raw signals
//   - at: the detection time
//
// Returns:
//   - Profile: the resolved profile
func ResolveProfile(s Signals, at time.Time) Profile {
	if s.CPUCores <= 0 {
		s.CPUCores = 2
	}
	if s.PixelRatio <= 0 {
		s.PixelRatio = 1
	}
	tr := ClassifyUserAgent(s.UserAgent)
	score := Score(s)
	tier := TierForScore(score)
	category := CategoryFor(s)
	return Profile{
		Category: category,
		Tier:     tier,
		Score:    score,
		Mobile:   tr.Mobile,
		Tablet:   tr.Tablet,
		IOS:      tr.IOS,
		IPad:     tr.IPad,
		Android:  tr.Android,
		Touch:    s.Touch,
		CPUCores: s.CPUCores,
		MemoryGB: s.MemoryGB,
		GPU:      s.GPU,
		Screen: Screen{
			Width:       s.ScreenWidth,
			Height:      s.ScreenHeight,
			PixelRatio:  s.PixelRatio,
			Orientation: OrientationOf(s.ScreenWidth, s.ScreenHeight),
		},
		DetectedAt:  at,
		Performance: PerformanceFor(tier, category, tr.IPad),
		UI:          UIFor(category),
	}
}

// FallbackProfile is used when the signal source fails.
func FallbackProfile(at time.Time) Profile {
	return Profile{
		Category:    CategoryDesktop,
		Tier:        TierMedium,
		CPUCores:    2,
		Screen:      Screen{PixelRatio: 1, Orientation: Landscape},
		Fallback:    true,
		DetectedAt:  at,
		Performance: PerformanceFor(TierMedium, CategoryDesktop, false),
		UI:          UIFor(CategoryDesktop),
	}
}

// ProfileListener is notified after the effective profile changes.
type ProfileListener func(Profile)

// Resolver owns the current device profile.
type Resolver interface {
	// Profile returns the effective profile, with any override applied.
	Profile() Profile

	// Detected returns the last detected profile, ignoring the override.
	Detected() Profile

	// Detect re-reads the signal source and replaces the whole profile.
	//
	// Returns:
	//   - Profile: the new effective profile
	Detect() Profile

	// Override forces a performance tier until ClearOverride is called. The override is persisted.
	//
	// Parameters:
	//   - tier: the forced tier
	//
	// Returns:
	//   - error: if the override could not be persisted; the override still applies
	Override(tier Tier) error

	// ClearOverride removes the forced tier.
	ClearOverride() error

	// OverrideTier returns the forced tier, if any.
	OverrideTier() (Tier, bool)

	// NotifyResize reports a new viewport size. It is debounced, and a change from the
	// window orientation seen at the last re-detection (initially the screen's) triggers
	// a full re-detection.
	//
	// Parameters:
	//   - w: the viewport width
	//   - h: the viewport height
	NotifyResize(w, h int)

	// OnChange registers a listener for effective profile changes.
	OnChange(fn ProfileListener)

	// TextureScale returns the texture multiplier for the effective tier.
	TextureScale() float32

	// RenderScale returns the resolution multiplier for the effective tier.
	RenderScale() float32

	// CanvasDPR returns the allowed pixel ratio range for the effective tier.
	CanvasDPR() [2]float32
}

type resolverImpl struct {
	mu        *sync.Mutex
	source    SignalSource
	store     OverrideStore
	sched     *timer.Scheduler
	resizeEp  *timer.Epoch
	detected  Profile
	window    Orientation
	override  Tier
	listeners []ProfileListener
}

var _ Resolver = &resolverImpl{}

// NewResolver creates a Resolver and runs an initial detection. A stored override is
// restored from the OverrideStore.
//
// Parameters:
//   - options: builder options
//
// Returns:
//   - Resolver: the resolver
func NewResolver(options ...ResolverBuilderOption) Resolver {
	r := &resolverImpl{
		mu:       &sync.Mutex{},
		resizeEp: &timer.Epoch{},
	}
	for _, opt := range options {
		opt(r)
	}
	if r.source == nil {
		r.source = NativeSource{}
	}
	if r.store == nil {
		r.store = NewMemoryOverrideStore()
	}
	if r.sched == nil {
		r.sched = timer.NewScheduler(timer.WallClock{})
	}

	if tier, ok, err := r.store.Load(); err != nil {
		log.Printf("[Device] warning: ignoring stored override: %v", err)
	} else if ok {
		r.override = tier
	}
	r.detected = r.detect()
	return r
}

func (r *resolverImpl) detect() Profile {
	now := r.sched.Now()
	s, err := r.source.Signals()
	if err != nil {
		log.Printf("[Device] warning: detection failed, using desktop/medium: %v", err)
		return FallbackProfile(now)
	}
	return ResolveProfile(s, now)
}

func (r *resolverImpl) effective() Profile {
	p := r.detected
	if r.override == "" {
		return p
	}
	p.Tier = r.override
	p.Overridden = true
	p.Performance = PerformanceFor(r.override, p.Category, p.IPad)
	return p
}

func (r *resolverImpl) Profile() Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.effective()
}

func (r *resolverImpl) Detected() Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.detected
}

func (r *resolverImpl) Detect() Profile {
	r.mu.Lock()
	r.detected = r.detect()
	p := r.effective()
	listeners := r.snapshotListeners()
	r.mu.Unlock()

	log.Printf("[Device] detected %s/%s (score %.1f)", p.Category, p.Tier, r.detected.Score)
	notify(listeners, p)
	return p
}

func (r *resolverImpl) Override(tier Tier) error {
	if _, ok := ParseTier(string(tier)); !ok {
		return fmt.Errorf("unknown tier %q", tier)
	}
	r.mu.Lock()
	r.override = tier
	p := r.effective()
	listeners := r.snapshotListeners()
	r.mu.Unlock()

	notify(listeners, p)
	if err := r.store.Save(tier); err != nil {
		return fmt.Errorf("failed to persist override: %w", err)
	}
	return nil
}

func (r *resolverImpl) ClearOverride() error {
	r.mu.Lock()
	had := r.override != ""
	r.override = ""
	p := r.effective()
	listeners := r.snapshotListeners()
	r.mu.Unlock()

	if had {
		notify(listeners, p)
	}
	if err := r.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear persisted override: %w", err)
	}
	return nil
}

func (r *resolverImpl) OverrideTier() (Tier, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.override, r.override != ""
}

func (r *resolverImpl) NotifyResize(w, h int) {
	r.resizeEp.Advance()
	o := OrientationOf(w, h)
	r.sched.After(resizeDebounce, r.resizeEp, func() {
		r.mu.Lock()
		last := common.Coalesce(r.window, r.detected.Screen.Orientation)
		r.mu.Unlock()
		if o == last {
			return
		}
		r.sched.After(orientationRedetect, r.resizeEp, func() {
			r.mu.Lock()
			r.window = o
			r.mu.Unlock()
			r.Detect()
		})
	})
}

func (r *resolverImpl) OnChange(fn ProfileListener) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

func (r *resolverImpl) TextureScale() float32 {
	return TextureScale(r.Profile().Tier)
}

func (r *resolverImpl) RenderScale() float32 {
	return RenderScale(r.Profile().Tier)
}

func (r *resolverImpl) CanvasDPR() [2]float32 {
	p := r.Profile()
	return CanvasDPR(p.Tier, p.Screen.PixelRatio)
}

func (r *resolverImpl) snapshotListeners() []ProfileListener {
	return append([]ProfileListener(nil), r.listeners...)
}

func notify(listeners []ProfileListener, p Profile) {
	for _, fn := range listeners {
		fn(p)
	}
}
