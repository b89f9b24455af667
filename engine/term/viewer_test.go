package term

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/common"
	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestViewer(t *testing.T) (Viewer, tcell.SimulationScreen, crystal.Assembly, *timer.MockTimeProvider) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	clock := timer.NewMockTimeProvider(t0)
	a := crystal.NewAssembly(crystal.WithTimeProvider(clock))
	a.Tick()
	v, err := NewViewer(screen, a)
	require.NoError(t, err)
	return v, screen, a, clock
}

func settle(a crystal.Assembly, clock *timer.MockTimeProvider, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += 50 * time.Millisecond {
		clock.Advance(50 * time.Millisecond)
		a.Tick()
	}
}

func countRune(screen tcell.SimulationScreen, r rune) int {
	cells, _, _ := screen.GetContents()
	n := 0
	for _, c := range cells {
		if len(c.Runes) > 0 && c.Runes[0] == r {
			n++
		}
	}
	return n
}

func row(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) > 0 {
			sb.WriteRune(c.Runes[0])
		}
	}
	return sb.String()
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestNewViewerRejectsNilScreen(t *testing.T) {
	_, err := NewViewer(nil, crystal.NewAssembly())
	assert.Error(t, err)
}

func TestKeyCode(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want uint32
	}{
		{key(' '), common.KeySpace},
		{key('h'), common.KeyH},
		{key('Q'), common.KeyQ},
		{key('4'), common.Key4},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), common.KeyEnter},
		{tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), common.KeyEsc},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), common.KeyBackspace},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), common.KeyLeft},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), common.KeyDown},
	}
	for _, tc := range cases {
		got, ok := KeyCode(tc.ev)
		assert.True(t, ok, tc.ev.Name())
		assert.Equal(t, tc.want, got, tc.ev.Name())
	}

	_, ok := KeyCode(key('z'))
	assert.False(t, ok)
}

func TestDrawInitialShowsCrystal(t *testing.T) {
	v, screen, _, _ := newTestViewer(t)
	v.Draw()

	assert.Equal(t, 1, countRune(screen, crystalGlyph))
	assert.Zero(t, countRune(screen, facetGlyph))
	assert.Contains(t, row(screen, 23), "initial")
}

func TestExplodeShowsFacets(t *testing.T) {
	v, screen, a, clock := newTestViewer(t)

	assert.True(t, v.HandleEvent(key(' ')))
	settle(a, clock, 3*time.Second)
	v.Draw()

	assert.Zero(t, countRune(screen, crystalGlyph))
	assert.Positive(t, countRune(screen, facetGlyph))
	assert.Contains(t, row(screen, 23), "exploded")

	assert.True(t, v.HandleEvent(key('3')))
	a.Tick()
	v.Draw()
	assert.Contains(t, row(screen, 23), "selected: craft")
}

func TestHelpOverlay(t *testing.T) {
	v, screen, _, _ := newTestViewer(t)
	assert.True(t, v.HandleEvent(key('h')))
	v.Draw()
	assert.Contains(t, row(screen, 1), "explode / reform")

	v.HandleEvent(key('h'))
	v.Draw()
	assert.NotContains(t, row(screen, 1), "explode / reform")
}

func TestQuitKeys(t *testing.T) {
	v, _, _, _ := newTestViewer(t)
	assert.False(t, v.HandleEvent(key('q')))
	assert.False(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
}

func TestMouseClickOnEmptySpaceExplodes(t *testing.T) {
	v, _, a, _ := newTestViewer(t)
	v.HandleEvent(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))
	assert.True(t, a.Tick().Exploded)
}

func TestRunStopsOnCancel(t *testing.T) {
	v, _, a, _ := newTestViewer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := v.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, a.Frame().Exploded)
}

func TestRunStopsOnQuit(t *testing.T) {
	v, screen, _, _ := newTestViewer(t)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- v.Run(context.Background()) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("viewer did not stop on q")
	}
}

func screenText(screen tcell.SimulationScreen) string {
	_, _, h := screen.GetContents()
	rows := make([]string, h)
	for y := range h {
		rows[y] = row(screen, y)
	}
	return strings.Join(rows, "\n")
}

func findText(screen tcell.SimulationScreen, text string) (tcell.SimCell, bool) {
	cells, w, h := screen.GetContents()
	for y := range h {
		if x := strings.Index(row(screen, y), text); x >= 0 {
			return cells[y*w+len([]rune(row(screen, y)[:x]))], true
		}
	}
	return tcell.SimCell{}, false
}

func TestDetailCardFollowsSelectionTiming(t *testing.T) {
	v, screen, a, clock := newTestViewer(t)
	cfg := a.Config()
	craft, ok := cfg.Facet("craft")
	require.True(t, ok)
	showAfter := cfg.Timing.Camera.FacetZoom.Duration() + cfg.Timing.UI.DetailShowPadding.Duration()

	v.HandleEvent(key(' '))
	settle(a, clock, 3*time.Second)
	require.True(t, v.HandleEvent(key('3')))
	a.Tick()
	v.Draw()
	assert.NotContains(t, screenText(screen), craft.Description)

	settle(a, clock, showAfter-50*time.Millisecond)
	v.Draw()
	assert.NotContains(t, screenText(screen), craft.Description, "card waits for the zoom and padding")

	settle(a, clock, 50*time.Millisecond)
	v.Draw()
	assert.Contains(t, screenText(screen), craft.Description)
	assert.Contains(t, screenText(screen), string(tcell.RuneULCorner))

	require.True(t, v.HandleEvent(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone)))
	a.Tick()
	v.Draw()
	assert.NotContains(t, screenText(screen), craft.Description, "card hides as soon as deselect starts")
}

func TestHoveredLabelEmphasisFollowsLabelScale(t *testing.T) {
	v, screen, a, clock := newTestViewer(t)
	v.HandleEvent(key(' '))
	settle(a, clock, 3*time.Second)

	require.True(t, a.SetHovered("craft"))
	a.Tick()
	v.Draw()
	cell, ok := findText(screen, "Craft")
	require.True(t, ok)
	_, _, attr := cell.Style.Decompose()
	assert.Zero(t, attr&tcell.AttrBold, "label scale has not moved yet")

	settle(a, clock, time.Second)
	v.Draw()
	cell, ok = findText(screen, "Craft")
	require.True(t, ok)
	_, _, attr = cell.Style.Decompose()
	assert.NotZero(t, attr&tcell.AttrBold)
}

func TestWrapWords(t *testing.T) {
	assert.Equal(t, []string{"Building scalable", "design systems"}, wrapWords("Building scalable design systems", 17))
	assert.Equal(t, []string{"abcd", "ef", "g"}, wrapWords("abcdef g", 4))
	assert.Empty(t, wrapWords("   ", 10))
}

func TestMouseWheelZooms(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	cfg.Camera.EnableZoom = true
	a := crystal.NewAssembly(crystal.WithConfig(cfg), crystal.WithTimeProvider(timer.NewMockTimeProvider(t0)))
	v, err := NewViewer(screen, a)
	require.NoError(t, err)

	before := a.Camera().Radius()
	assert.True(t, v.HandleEvent(tcell.NewEventMouse(10, 10, tcell.WheelUp, tcell.ModNone)))
	assert.Less(t, a.Camera().Radius(), before)
	assert.False(t, a.Tick().Exploded, "wheel is not a click")
}
