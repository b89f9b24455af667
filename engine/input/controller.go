// Package input maps keyboard and pointer events onto crystal requests. Window and terminal
// front ends translate their native events into common key codes and viewport coordinates.
package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/go-gl/mathgl/mgl32"
)

// Action is what a front end should do after an event was handled.
type Action int

const (
	ActionNone Action = iota
	ActionHandled
	ActionToggleHelp
	ActionQuit
)

const (
	defaultDragScale  = 0.01
	defaultClickSlop  = 4
	defaultPickRadius = 48
)

// Controller turns input events into Assembly requests.
type Controller interface {
	// HandleKey handles a key press.
	//
	// Parameters:
	//   - key: a common key code
	//
	// Returns:
	//   - Action: the follow-up for the front end
	HandleKey(key uint32) Action

	// PointerDown starts a drag or click at (x, y).
	PointerDown(x, y float32)

	// PointerMove orbits while dragging and updates the hover otherwise.
	PointerMove(x, y float32)

	// PointerUp ends a drag. A release close to the press selects the facet under the pointer.
	PointerUp(x, y float32)

	// Scroll zooms the camera by delta wheel notches.
	Scroll(delta float32)

	// SetViewport sets the viewport size and projection used for picking.
	SetViewport(width, height int, projection mgl32.Mat4)

	// HelpVisible reports whether the help overlay is toggled on.
	HelpVisible() bool
}

type controllerImpl struct {
	mu         *sync.Mutex
	assembly   crystal.Assembly
	dragScale  float32
	clickSlop  float32
	pickRadius float32

	width      int
	height     int
	projection mgl32.Mat4

	pressed      bool
	pressX       float32
	pressY       float32
	lastX, lastY float32
	help         bool
}

var _ Controller = &controllerImpl{}

// NewController creates a Controller for an assembly.
//
// Parameters:
//   - a: the assembly receiving requests
//   - options: builder options
//
// Returns:
//   - Controller: the controller
func NewController(a crystal.Assembly, options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		mu:         &sync.Mutex{},
		assembly:   a,
		dragScale:  defaultDragScale,
		clickSlop:  defaultClickSlop,
		pickRadius: defaultPickRadius,
		projection: mgl32.Ident4(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *controllerImpl) HandleKey(key uint32) Action {
	a := c.assembly
	switch key {
	case common.KeySpace:
		a.RequestExplodeToggle()
	case common.KeyEnter:
		if h := a.Frame().Hovered; h != "" {
			a.RequestSelect(h)
		}
	case common.KeyEsc, common.KeyBackspace:
		a.RequestDeselect()
	case common.KeyLeft:
		a.Navigate(crystal.DirLeft)
	case common.KeyRight:
		a.Navigate(crystal.DirRight)
	case common.KeyUp:
		a.Navigate(crystal.DirUp)
	case common.KeyDown:
		a.Navigate(crystal.DirDown)
	case common.KeyH:
		c.mu.Lock()
		c.help = !c.help
		c.mu.Unlock()
		return ActionToggleHelp
	case common.KeyQ:
		return ActionQuit
	default:
		if key >= common.Key1 && key <= common.Key9 {
			facets := a.Config().Facets
			if i := int(key - common.Key1); i < len(facets) {
				a.RequestSelect(facets[i].Key)
				return ActionHandled
			}
		}
		return ActionNone
	}
	return ActionHandled
}

func (c *controllerImpl) PointerDown(x, y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pressed = true
	c.pressX, c.pressY = x, y
	c.lastX, c.lastY = x, y
}

func (c *controllerImpl) PointerMove(x, y float32) {
	c.mu.Lock()
	if c.pressed {
		dx, dy := x-c.lastX, y-c.lastY
		c.lastX, c.lastY = x, y
		scale := c.dragScale
		c.mu.Unlock()
		c.assembly.Orbit(-dx*scale, dy*scale)
		return
	}
	key, _ := c.pickLocked(x, y)
	c.mu.Unlock()

	if key != c.assembly.Frame().Hovered {
		c.assembly.SetHovered(key)
	}
}

func (c *controllerImpl) PointerUp(x, y float32) {
	c.mu.Lock()
	if !c.pressed {
		c.mu.Unlock()
		return
	}
	c.pressed = false
	dx, dy := x-c.pressX, y-c.pressY
	click := dx*dx+dy*dy <= c.clickSlop*c.clickSlop
	var key string
	var hit bool
	if click {
		key, hit = c.pickLocked(x, y)
	}
	c.mu.Unlock()

	if !click {
		return
	}
	if hit {
		c.assembly.RequestSelect(key)
		return
	}
	// A click on empty space explodes a reformed crystal.
	if !c.assembly.Frame().Exploded {
		c.assembly.RequestExplodeToggle()
	}
}

func (c *controllerImpl) Scroll(delta float32) {
	c.assembly.Zoom(delta)
}

func (c *controllerImpl) pickLocked(x, y float32) (string, bool) {
	f := c.assembly.Frame()
	if !f.FacetsVisible {
		return "", false
	}
	return Pick(f, c.projection, x, y, c.width, c.height, c.pickRadius)
}

func (c *controllerImpl) SetViewport(width, height int, projection mgl32.Mat4) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
	c.projection = projection
}

func (c *controllerImpl) HelpVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.help
}
