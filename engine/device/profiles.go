package device

// Quality is a coarse quality level used by several render settings.
type Quality string

const (
	QualityOff    Quality = "off"
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
	QualityUltra  Quality = "ultra"
)

// PostProcessing toggles individual screen-space effects.
type PostProcessing struct {
	Bloom               bool `yaml:"bloom"`
	ChromaticAberration bool `yaml:"chromaticAberration"`
	Noise               bool `yaml:"noise"`
	Vignette            bool `yaml:"vignette"`
}

// PerformanceConfig is the render budget for a device class.
type PerformanceConfig struct {
	Name                 string         `yaml:"name"`
	RenderScale          float32        `yaml:"renderScale"`
	UseNormalMaps        bool           `yaml:"useNormalMaps"`
	UsePBR               bool           `yaml:"usePBR"`
	TextureQuality       Quality        `yaml:"textureQuality"`
	PostProcessing       PostProcessing `yaml:"postProcessing"`
	MaxLights            int            `yaml:"maxLights"`
	ShadowQuality        Quality        `yaml:"shadowQuality"`
	HDRIQuality          Quality        `yaml:"hdriQuality"`
	Antialiasing         bool           `yaml:"antialiasing"`
	AnisotropicFiltering int            `yaml:"anisotropicFiltering"`
	ReducedParticles     bool           `yaml:"reducedParticles"`
	EnhancedReflections  bool           `yaml:"enhancedReflections"`
	VSync                bool           `yaml:"vsync"`
	TargetFPS            int            `yaml:"targetFPS"`
}

var basePerformance = PerformanceConfig{
	RenderScale:    1,
	UseNormalMaps:  true,
	UsePBR:         true,
	TextureQuality: QualityHigh,
	PostProcessing: PostProcessing{
		Bloom:               true,
		ChromaticAberration: true,
		Noise:               true,
		Vignette:            true,
	},
	MaxLights:            5,
	ShadowQuality:        QualityHigh,
	HDRIQuality:          QualityHigh,
	Antialiasing:         true,
	AnisotropicFiltering: 4,
	VSync:                true,
	TargetFPS:            60,
}

// MobilePerformance is the low-tier preset.
func MobilePerformance() PerformanceConfig {
	p := basePerformance
	p.Name = "mobile"
	p.RenderScale = 0.6
	p.UseNormalMaps = false
	p.UsePBR = false
	p.TextureQuality = QualityLow
	p.PostProcessing = PostProcessing{Noise: true, Vignette: true}
	p.MaxLights = 2
	p.ShadowQuality = QualityOff
	p.HDRIQuality = QualityLow
	p.Antialiasing = false
	p.AnisotropicFiltering = 1
	p.ReducedParticles = true
	p.TargetFPS = 30
	return p
}

// TabletPerformance is the medium-tier preset.
func TabletPerformance() PerformanceConfig {
	p := basePerformance
	p.Name = "tablet"
	p.RenderScale = 0.8
	p.UsePBR = false
	p.TextureQuality = QualityMedium
	p.PostProcessing = PostProcessing{Bloom: true}
	p.MaxLights = 3
	p.ShadowQuality = QualityLow
	p.HDRIQuality = QualityMedium
	p.AnisotropicFiltering = 2
	return p
}

// IPadPerformance is the medium-tier preset for iPads, which carry enough GPU for PBR.
func IPadPerformance() PerformanceConfig {
	p := TabletPerformance()
	p.Name = "ipad"
	p.RenderScale = 0.9
	p.UsePBR = true
	p.PostProcessing = PostProcessing{Bloom: true, Vignette: true}
	p.MaxLights = 4
	p.AnisotropicFiltering = 4
	return p
}

// DesktopPerformance is the high-tier preset.
func DesktopPerformance() PerformanceConfig {
	p := basePerformance
	p.Name = "desktop"
	return p
}

// DesktopXLPerformance is the high-tier preset for very large displays.
func DesktopXLPerformance() PerformanceConfig {
	p := DesktopPerformance()
	p.Name = "desktopXL"
	p.MaxLights = 6
	p.ShadowQuality = QualityUltra
	p.AnisotropicFiltering = 8
	p.EnhancedReflections = true
	return p
}

// PerformanceFor maps a tier and device class to a preset.
//
// Parameters:
//   - tier: the performance tier
//   - category: the layout category
//   - ipad: whether the device is an iPad
//
// Returns:
//   - PerformanceConfig: the matching preset
func PerformanceFor(tier Tier, category Category, ipad bool) PerformanceConfig {
	switch tier {
	case TierHigh:
		if category == CategoryDesktopXL {
			return DesktopXLPerformance()
		}
		return DesktopPerformance()
	case TierMedium:
		if ipad {
			return IPadPerformance()
		}
		return TabletPerformance()
	default:
		return MobilePerformance()
	}
}

// ButtonSize is a UI control size class.
type ButtonSize string

const (
	ButtonMedium ButtonSize = "medium"
	ButtonLarge  ButtonSize = "large"
)

// UIConfig is the layout preset for a device category.
type UIConfig struct {
	ForcePortrait         bool       `yaml:"forcePortrait"`
	ShowAdvancedControls  bool       `yaml:"showAdvancedControls"`
	CompactLayout         bool       `yaml:"compactLayout"`
	ButtonSize            ButtonSize `yaml:"buttonSize"`
	MinimumTouchTarget    int        `yaml:"minimumTouchTarget"`
	MaxVisiblePanels      int        `yaml:"maxVisiblePanels"`
	UseBottomNavigation   bool       `yaml:"useBottomNavigation"`
	HideKeyboardShortcuts bool       `yaml:"hideKeyboardShortcuts"`
	ViewportPadding       int        `yaml:"viewportPadding"`
	ShowFPSCounter        bool       `yaml:"showFPSCounter"`
	UseWideLayout         bool       `yaml:"useWideLayout"`
}

// UIFor returns the layout preset for a category. desktop-xl extends desktop.
func UIFor(category Category) UIConfig {
	switch category {
	case CategoryMobile:
		return UIConfig{
			ForcePortrait:         true,
			CompactLayout:         true,
			ButtonSize:            ButtonLarge,
			MinimumTouchTarget:    44,
			MaxVisiblePanels:      1,
			UseBottomNavigation:   true,
			HideKeyboardShortcuts: true,
			ViewportPadding:       10,
		}
	case CategoryTablet:
		return UIConfig{
			ShowAdvancedControls: true,
			ButtonSize:           ButtonMedium,
			MinimumTouchTarget:   40,
			MaxVisiblePanels:     2,
			ViewportPadding:      20,
			ShowFPSCounter:       true,
		}
	case CategoryDesktopXL:
		ui := UIFor(CategoryDesktop)
		ui.MaxVisiblePanels = 6
		ui.ViewportPadding = 40
		ui.UseWideLayout = true
		return ui
	default:
		return UIConfig{
			ShowAdvancedControls: true,
			ButtonSize:           ButtonMedium,
			MinimumTouchTarget:   32,
			MaxVisiblePanels:     4,
			ViewportPadding:      20,
			ShowFPSCounter:       true,
		}
	}
}

// RenderScale returns the internal resolution multiplier for a tier.
func RenderScale(tier Tier) float32 {
	switch tier {
	case TierHigh:
		return 1
	case TierMedium:
		return 0.8
	default:
		return 0.6
	}
}

// TextureScale returns the texture resolution multiplier for a tier.
func TextureScale(tier Tier) float32 {
	switch tier {
	case TierHigh:
		return 1
	case TierMedium:
		return 0.7
	default:
		return 0.5
	}
}

// CanvasDPR returns the allowed device pixel ratio range for a tier.
//
// Parameters:
//   - tier: the performance tier
//   - pixelRatio: the display's native pixel ratio
//
// Returns:
//   - [2]float32: the minimum and maximum ratio
func CanvasDPR(tier Tier, pixelRatio float32) [2]float32 {
	maxDPR := min(pixelRatio, 2)
	switch tier {
	case TierHigh:
		return [2]float32{1, max(maxDPR, 1)}
	case TierMedium:
		return [2]float32{1, max(min(maxDPR, 1.5), 1)}
	default:
		return [2]float32{1, 1}
	}
}
