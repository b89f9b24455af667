package crystal

import (
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
)

// SelectionTarget is the state a SelectionCoordinator drives.
type SelectionTarget interface {
	// Selected returns the selected facet key, or "" when nothing is selected.
	Selected() string

	// Exploded reports whether the assembly is currently exploded.
	Exploded() bool

	// HasFacet reports whether key names a configured facet.
	HasFacet(key string) bool

	SetSelected(key string)
	SetExploded(exploded bool)
	SetOrbitEnabled(enabled bool)
	SetDetailVisible(visible bool)
}

// SelectionCoordinator serializes user requests into timed sequences of state changes.
//
// While a sequence is in flight the coordinator holds its transition lock and every new
// request is dropped without arming any timer.
type SelectionCoordinator struct {
	sched  *timer.Scheduler
	timing *config.Timing
	target SelectionTarget
	epoch  timer.Epoch

	transitioning bool
}

// NewSelectionCoordinator creates a coordinator.
//
// Parameters:
//   - sched: the scheduler that runs sequence steps
//   - timing: the shared timing config; the same values drive the camera and phase animations
//   - target: the state the sequences mutate
//
// Returns:
//   - *SelectionCoordinator: the new coordinator
func NewSelectionCoordinator(sched *timer.Scheduler, timing *config.Timing, target SelectionTarget) *SelectionCoordinator {
	return &SelectionCoordinator{
		sched:  sched,
		timing: timing,
		target: target,
	}
}

// Transitioning reports whether the transition lock is held.
func (c *SelectionCoordinator) Transitioning() bool {
	return c.transitioning
}

// RequestSelect selects key. Selecting the already selected facet deselects it.
//
// Returns:
//   - bool: true if a sequence was started
func (c *SelectionCoordinator) RequestSelect(key string) bool {
	if c.dropped("select " + key) {
		return false
	}
	if !c.target.Exploded() {
		log.Printf("[Selection] Ignoring select of %q while reformed", key)
		return false
	}
	if !c.target.HasFacet(key) {
		log.Printf("[Selection] Warning: unknown facet %q", key)
		return false
	}
	if key == c.target.Selected() {
		c.deselect()
		return true
	}

	c.transitioning = true
	c.target.SetSelected(key)
	c.target.SetOrbitEnabled(false)
	c.after(c.ms(c.timing.Camera.FacetZoom, config.DefaultFacetZoomDuration)+c.ms(c.timing.UI.DetailShowPadding, config.DefaultDetailShowPadding), func() {
		c.target.SetDetailVisible(true)
		c.transitioning = false
	})
	return true
}

// RequestDeselect clears the selection. With nothing selected while exploded it reforms.
//
// Returns:
//   - bool: true if a sequence was started
func (c *SelectionCoordinator) RequestDeselect() bool {
	if c.dropped("deselect") {
		return false
	}
	if c.target.Selected() == "" {
		if !c.target.Exploded() {
			return false
		}
		c.toggle()
		return true
	}
	c.deselect()
	return true
}

// RequestExplodeToggle explodes or reforms the assembly, clearing any selection first.
//
// Returns:
//   - bool: true if a sequence was started
func (c *SelectionCoordinator) RequestExplodeToggle() bool {
	if c.dropped("explode toggle") {
		return false
	}
	c.toggle()
	return true
}

// Reset invalidates every pending sequence step and releases the lock.
func (c *SelectionCoordinator) Reset() {
	c.epoch.Advance()
	c.transitioning = false
}

func (c *SelectionCoordinator) deselect() {
	c.transitioning = true
	c.target.SetDetailVisible(false)
	c.after(c.ms(c.timing.UI.DetailHideDelay, config.DefaultDetailHideDelay), func() {
		c.target.SetSelected("")
		c.after(c.ms(c.timing.Camera.FacetReturn, config.DefaultFacetReturnDuration), func() {
			c.target.SetOrbitEnabled(true)
			c.transitioning = false
		})
	})
}

func (c *SelectionCoordinator) toggle() {
	c.transitioning = true

	if c.target.Selected() == "" {
		next := !c.target.Exploded()
		c.target.SetExploded(next)
		d := c.ms(c.timing.Camera.Reform, config.DefaultReformDuration)
		if next {
			d = c.ms(c.timing.Camera.Explode, config.DefaultExplodeDuration)
		}
		c.after(d, func() {
			c.transitioning = false
		})
		return
	}

	c.target.SetDetailVisible(false)
	c.after(c.ms(c.timing.UI.DetailHideDelay, config.DefaultDetailHideDelay), func() {
		c.target.SetSelected("")
		c.after(c.ms(c.timing.Camera.FacetReturn, config.DefaultFacetReturnDuration), func() {
			c.target.SetExploded(false)
			c.after(c.ms(c.timing.Camera.Reform, config.DefaultReformDuration), func() {
				c.target.SetOrbitEnabled(true)
				c.transitioning = false
			})
		})
	})
}

func (c *SelectionCoordinator) dropped(what string) bool {
	if c.transitioning {
		log.Printf("[Selection] Dropping %s: transition in progress", what)
		return true
	}
	return false
}

func (c *SelectionCoordinator) after(d time.Duration, fn func()) {
	c.sched.After(d, &c.epoch, fn)
}

func (c *SelectionCoordinator) ms(v, def config.Millis) time.Duration {
	return common.Coalesce(v, def).Duration()
}
