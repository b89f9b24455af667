package device

import (
	"regexp"
	"strings"
)

// Tier is a performance bucket.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// ParseTier resolves a tier name.
func ParseTier(s string) (Tier, bool) {
	switch t := Tier(strings.ToLower(s)); t {
	case TierLow, TierMedium, TierHigh:
		return t, true
	}
	return "", false
}

// Category is a layout class.
type Category string

const (
	CategoryMobile    Category = "mobile"
	CategoryTablet    Category = "tablet"
	CategoryDesktop   Category = "desktop"
	CategoryDesktopXL Category = "desktop-xl"
)

const (
	highThreshold   = 5
	mediumThreshold = 2.5
	mobileScoreCap  = 2
	xlScreenWidth   = 2560
	hiResPixels     = 8_000_000
)

var (
	mobileUA    = regexp.MustCompile(`(?i)android|webos|iphone|ipad|ipod|blackberry|iemobile|opera mini`)
	iosUA       = regexp.MustCompile(`iPad|iPhone|iPod`)
	ipadUA      = regexp.MustCompile(`(?i)ipad`)
	androidUA   = regexp.MustCompile(`(?i)android`)
	androidMob  = regexp.MustCompile(`(?i)android.*mobile`)
	recentPhone = regexp.MustCompile(`iPhone1[4-9]|iPhone[2-9][0-9]`)
	recentPad   = regexp.MustCompile(`iPad.*OS 1[5-9]`)
)

// Traits are the boolean classifications derived from a user agent.
type Traits struct {
	Mobile  bool
	Tablet  bool
	IOS     bool
	IPad    bool
	Android bool
}

// ClassifyUserAgent derives Traits from ua. Tablets are also mobile.
func ClassifyUserAgent(ua string) Traits {
	android := androidUA.MatchString(ua)
	ipad := ipadUA.MatchString(ua)
	return Traits{
		Mobile:  mobileUA.MatchString(ua),
		Tablet:  ipad || (android && !androidMob.MatchString(ua)),
		IOS:     iosUA.MatchString(ua),
		IPad:    ipad,
		Android: android,
	}
}

// Score computes the additive capability score of s.
func Score(s Signals) float32 {
	tr := ClassifyUserAgent(s.UserAgent)
	var score float32

	switch {
	case tr.Mobile && !tr.Tablet:
		score = 0
	case tr.Tablet:
		score = 1
	default:
		score = 3
	}

	switch {
	case s.CPUCores >= 8:
		score += 2
	case s.CPUCores >= 4:
		score += 1
	}

	switch {
	case s.MemoryGB >= 8:
		score += 2
	case s.MemoryGB >= 4:
		score += 1
	}

	if s.GPU != nil {
		if !s.GPU.Integrated {
			score += 2
		}
		r := strings.ToLower(s.GPU.Renderer)
		switch {
		case strings.Contains(r, "rtx") || strings.Contains(r, "gtx"):
			score += 2
		case strings.Contains(r, "radeon rx") || strings.Contains(r, "vega"):
			score += 2
		case strings.Contains(r, "apple m1") || strings.Contains(r, "apple m2"):
			score += 1
		}
	}

	if s.ModernGraphics {
		score++
	}

	pixels := float32(s.ScreenWidth) * float32(s.ScreenHeight) * max(s.PixelRatio, 1)
	if pixels > hiResPixels {
		score -= 2
	}

	if tr.Mobile {
		score = min(score, mobileScoreCap)
	}
	if recentPhone.MatchString(s.UserAgent) {
		score += 0.5
	}
	if recentPad.MatchString(s.UserAgent) {
		score += 0.5
	}
	return score
}

// TierForScore buckets a score.
func TierForScore(score float32) Tier {
	switch {
	case score >= highThreshold:
		return TierHigh
	case score >= mediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// CategoryFor derives the layout category of s.
func CategoryFor(s Signals) Category {
	tr := ClassifyUserAgent(s.UserAgent)
	switch {
	case tr.Mobile && !tr.Tablet:
		return CategoryMobile
	case tr.Tablet:
		return CategoryTablet
	case s.ScreenWidth >= xlScreenWidth:
		return CategoryDesktopXL
	default:
		return CategoryDesktop
	}
}
