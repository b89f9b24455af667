package window

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleQueue(t *testing.T) {
	w := &engineWindow{titleMu: &sync.Mutex{}, title: "oxy-crystal"}

	_, ok := w.takeTitle()
	assert.False(t, ok)

	w.SetTitle("first")
	w.SetTitle("oxy-crystal · craft")
	assert.Equal(t, "oxy-crystal · craft", w.Title())

	title, ok := w.takeTitle()
	assert.True(t, ok)
	assert.Equal(t, "oxy-crystal · craft", title)
	assert.Equal(t, "oxy-crystal · craft", w.Title())

	_, ok = w.takeTitle()
	assert.False(t, ok)
}

func TestWindowBuilderOptions(t *testing.T) {
	w := &engineWindow{width: 1280, height: 720}
	WithTitle("crystal")(w)
	WithSize(1024, 0)(w)
	assert.Equal(t, "crystal", w.title)
	assert.Equal(t, 1024, w.width)
	assert.Equal(t, 720, w.height)

	WithSizeLimits(320, 240, 800, 600)(w)
	assert.Equal(t, 320, w.minWidth)
	assert.Equal(t, 240, w.minHeight)
	assert.Equal(t, 800, w.maxWidth)
	assert.Equal(t, 600, w.maxHeight)
	assert.Equal(t, 800, w.width, "initial size is clamped into the limits")
	assert.Equal(t, 600, w.height)

	WithSizeLimits(640, 480, 100, 100)(w)
	assert.Equal(t, 640, w.maxWidth, "max never drops below min")
	assert.Equal(t, 640, w.width)
}
