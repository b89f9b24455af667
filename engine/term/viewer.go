// Package term renders an assembly into a terminal with tcell. Facets are drawn as glyphs at
// their projected cell positions and tcell events are forwarded to an input.Controller.
package term

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/camera"
	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/Carmen-Shannon/oxy-crystal/engine/input"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	defaultFrameInterval = 33 * time.Millisecond
	cellAspect           = 2.0

	crystalGlyph = '◆'
	facetGlyph   = '●'

	// labels are emphasized once their hover spring is halfway to its target scale
	labelEmphasisScale = 1.025
	cardMaxWidth       = 40
)

var helpLines = []string{
	"space  explode / reform",
	"1-9    select facet",
	"arrows move hover",
	"enter  select hovered",
	"esc    deselect",
	"drag   orbit",
	"wheel  zoom (camera.enableZoom)",
	"h      toggle help",
	"q      quit",
}

// Viewer draws frames onto a tcell screen.
type Viewer interface {
	// Run ticks the assembly, draws and dispatches events until ctx is cancelled or quit is requested.
	Run(ctx context.Context) error

	// Draw renders the assembly's latest frame without ticking it.
	Draw()

	// HandleEvent dispatches one tcell event.
	//
	// Parameters:
	//   - ev: the event
	//
	// Returns:
	//   - bool: false when the viewer should stop
	HandleEvent(ev tcell.Event) bool

	// Controller returns the input controller fed by this viewer.
	Controller() input.Controller
}

type viewerImpl struct {
	mu            *sync.Mutex
	screen        tcell.Screen
	assembly      crystal.Assembly
	controller    input.Controller
	frameInterval time.Duration
	fovDegrees    float32

	width, height int
	projection    mgl32.Mat4
	buttonDown    bool
}

var _ Viewer = &viewerImpl{}

// NewViewer creates a Viewer on an initialized screen.
//
// Parameters:
//   - screen: an initialized tcell screen
//   - a: the assembly to draw
//   - options: builder options
//
// Returns:
//   - Viewer: the viewer
//   - error: when screen is nil
func NewViewer(screen tcell.Screen, a crystal.Assembly, options ...ViewerBuilderOption) (Viewer, error) {
	if screen == nil {
		return nil, fmt.Errorf("term: nil screen")
	}
	v := &viewerImpl{
		mu:            &sync.Mutex{},
		screen:        screen,
		assembly:      a,
		frameInterval: defaultFrameInterval,
		fovDegrees:    a.Config().Camera.FovDegrees,
	}
	for _, opt := range options {
		opt(v)
	}
	if v.controller == nil {
		v.controller = input.NewController(a, input.WithPickRadius(3), input.WithClickSlop(1), input.WithDragScale(0.05))
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	v.resize()
	return v, nil
}

func (v *viewerImpl) Controller() input.Controller {
	return v.controller
}

func (v *viewerImpl) resize() {
	w, h := v.screen.Size()
	cam := camera.NewCamera(camera.WithFovDegrees(v.fovDegrees), camera.WithViewport(w, h, cellAspect))
	v.mu.Lock()
	v.width, v.height = w, h
	v.projection = cam.ProjectionMatrix()
	v.mu.Unlock()
	v.controller.SetViewport(w, h, v.projection)
}

func (v *viewerImpl) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(v.frameInterval)
	defer ticker.Stop()
	log.Printf("[Term] viewer running at %v per frame", v.frameInterval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.assembly.Tick()
			v.Draw()
		}
	}
}

func (v *viewerImpl) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		key, ok := KeyCode(ev)
		if !ok {
			return true
		}
		if v.controller.HandleKey(key) == input.ActionQuit {
			return false
		}
	case *tcell.EventMouse:
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			v.controller.Scroll(1)
			return true
		case ev.Buttons()&tcell.WheelDown != 0:
			v.controller.Scroll(-1)
			return true
		}
		x, y := ev.Position()
		fx, fy := float32(x), float32(y)
		down := ev.Buttons()&tcell.Button1 != 0
		v.mu.Lock()
		was := v.buttonDown
		v.buttonDown = down
		v.mu.Unlock()
		switch {
		case down && !was:
			v.controller.PointerDown(fx, fy)
		case !down && was:
			v.controller.PointerUp(fx, fy)
		default:
			v.controller.PointerMove(fx, fy)
		}
	}
	return true
}

// KeyCode maps a tcell key event onto a common key code.
//
// Parameters:
//   - ev: the key event
//
// Returns:
//   - uint32: the key code
//   - bool: false when the key has no mapping
func KeyCode(ev *tcell.EventKey) (uint32, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return common.KeyEnter, true
	case tcell.KeyEsc:
		return common.KeyEsc, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return common.KeyBackspace, true
	case tcell.KeyLeft:
		return common.KeyLeft, true
	case tcell.KeyRight:
		return common.KeyRight, true
	case tcell.KeyUp:
		return common.KeyUp, true
	case tcell.KeyDown:
		return common.KeyDown, true
	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == ' ':
			return common.KeySpace, true
		case r == 'h' || r == 'H':
			return common.KeyH, true
		case r == 'q' || r == 'Q':
			return common.KeyQ, true
		case r >= '1' && r <= '9':
			return common.Key1 + uint32(r-'1'), true
		}
	}
	return 0, false
}

func (v *viewerImpl) Draw() {
	f := v.assembly.Frame()
	v.mu.Lock()
	w, h, proj := v.width, v.height, v.projection
	v.mu.Unlock()

	s := v.screen
	bg := tcell.StyleDefault.Background(toColor(f.Background(crystal.DefaultBackground)))
	s.SetStyle(bg)
	s.Clear()

	if f.CrystalVisible {
		if x, y, ok := projectCell(f, proj, mgl32.Vec3{}, w, h); ok {
			glow := common.Clamp(f.Glow, 0, 2)
			c := common.Color{R: 0.8, G: 0.85, B: 1, A: 1}.Scale(0.5 + 0.25*glow)
			s.SetContent(x, y, crystalGlyph, nil, bg.Foreground(toColor(c)).Bold(f.Glow > 0.5))
		}
	}

	if f.FacetsVisible {
		for _, sf := range input.ProjectFacets(f, proj, w, h) {
			x, y := int(sf.X), int(sf.Y)
			ff := sf.Facet
			st := bg.Foreground(toColor(ff.Color.Scale(0.6 + 0.3*common.Clamp(ff.Emissive, 0, 1.5))))
			if ff.Hovered {
				st = st.Bold(true)
			}
			if ff.Selected {
				st = st.Reverse(true)
			}
			s.SetContent(x, y, facetGlyph, nil, st)
			if f.LabelsVisible && ff.LabelOpacity >= 0.5 {
				putString(s, x+2, y, ff.Label, bg.Foreground(toColor(ff.Color)).Bold(ff.LabelScale >= labelEmphasisScale))
			}
		}
	}

	if f.DetailVisible {
		if ff, ok := f.Facet(f.Selected); ok {
			drawDetailCard(s, ff, w, h, bg)
		}
	}

	status := fmt.Sprintf(" %s", f.Phase)
	if f.Selected != "" {
		status += "  selected: " + f.Selected
	}
	if f.Hovered != "" {
		status += "  hover: " + f.Hovered
	}
	if f.Transitioning {
		status += "  ..."
	}
	putString(s, 0, h-1, status, bg.Foreground(tcell.ColorSilver))

	if v.controller.HelpVisible() {
		for i, line := range helpLines {
			putString(s, 1, 1+i, line, bg.Foreground(tcell.ColorWhite))
		}
	}
	s.Show()
}

// drawDetailCard boxes the selected facet's title and description in the lower right
// corner, above the status line.
func drawDetailCard(s tcell.Screen, ff crystal.FacetFrame, w, h int, bg tcell.Style) {
	cw := min(cardMaxWidth, w-2)
	if cw < 8 {
		return
	}
	lines := wrapWords(ff.Description, cw-4)
	ch := len(lines) + 3
	x0, y0 := w-cw-1, h-2-ch
	if y0 < 0 {
		return
	}

	border := bg.Foreground(toColor(ff.Color))
	for x := x0; x < x0+cw; x++ {
		for y := y0; y < y0+ch; y++ {
			s.SetContent(x, y, ' ', nil, bg)
		}
		s.SetContent(x, y0, tcell.RuneHLine, nil, border)
		s.SetContent(x, y0+ch-1, tcell.RuneHLine, nil, border)
	}
	for y := y0; y < y0+ch; y++ {
		s.SetContent(x0, y, tcell.RuneVLine, nil, border)
		s.SetContent(x0+cw-1, y, tcell.RuneVLine, nil, border)
	}
	s.SetContent(x0, y0, tcell.RuneULCorner, nil, border)
	s.SetContent(x0+cw-1, y0, tcell.RuneURCorner, nil, border)
	s.SetContent(x0, y0+ch-1, tcell.RuneLLCorner, nil, border)
	s.SetContent(x0+cw-1, y0+ch-1, tcell.RuneLRCorner, nil, border)

	putString(s, x0+2, y0+1, ff.Label, border.Bold(true))
	for i, line := range lines {
		putString(s, x0+2, y0+2+i, line, bg.Foreground(tcell.ColorWhite))
	}
}

// wrapWords breaks text into lines of at most width runes. Words longer than width are cut.
func wrapWords(text string, width int) []string {
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(text) {
		wr := []rune(word)
		for len(wr) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(wr[:width]))
			wr = wr[width:]
		}
		switch {
		case len(cur) == 0:
			cur = wr
		case len(cur)+1+len(wr) <= width:
			cur = append(append(cur, ' '), wr...)
		default:
			lines = append(lines, string(cur))
			cur = wr
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}

func projectCell(f crystal.Frame, proj mgl32.Mat4, p mgl32.Vec3, w, h int) (int, int, bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	ndc, ok := common.ProjectPoint(proj.Mul4(camera.ViewFromPose(f.Camera)), p)
	if !ok || ndc.X() < -1 || ndc.X() > 1 || ndc.Y() < -1 || ndc.Y() > 1 {
		return 0, 0, false
	}
	return int((ndc.X() + 1) * 0.5 * float32(w)), int((1 - ndc.Y()) * 0.5 * float32(h)), true
}

func putString(s tcell.Screen, x, y int, str string, st tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, st)
		x++
	}
}

func toColor(c common.Color) tcell.Color {
	r, g, b := c.RGB8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
