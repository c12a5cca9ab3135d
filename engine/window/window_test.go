package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-cubemap/common"
	"github.com/stretchr/testify/assert"
)

func TestNewEngineWindow_Options(t *testing.T) {
	w := newEngineWindow(
		WithTitle(""),
		WithSize(800, 0),
		WithSizeLimits(100, 100, 1000, 900),
	)
	assert.Equal(t, "oxy-cubemap", w.Title())
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 720, w.Height())
	assert.Equal(t, 1000, w.maxWidth)
	assert.Equal(t, 900, w.maxHeight)
}

func TestEngineWindow_TitleQueue(t *testing.T) {
	w := newEngineWindow(WithTitle("start"))

	_, ok := w.takeTitle()
	assert.False(t, ok, "initial title is applied at creation")

	w.SetTitle("start")
	_, ok = w.takeTitle()
	assert.False(t, ok, "unchanged titles are not re-applied")

	w.SetTitle("loading")
	w.SetTitle("sky.png (NONE)")
	title, ok := w.takeTitle()
	assert.True(t, ok)
	assert.Equal(t, "sky.png (NONE)", title, "only the latest title is applied")

	_, ok = w.takeTitle()
	assert.False(t, ok)
}

func TestEngineWindow_WithoutPlatformWindow(t *testing.T) {
	w := newEngineWindow()
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
	assert.NotPanics(t, w.RequestClose)
	assert.NotPanics(t, w.ProcessMessages)
}

func TestEngineWindow_DispatchKey(t *testing.T) {
	w := newEngineWindow()
	var down, up []uint32
	w.SetKeyDownCallback(func(keyCode uint32) { down = append(down, keyCode) })
	w.SetKeyUpCallback(func(keyCode uint32) { up = append(up, keyCode) })

	w.dispatchKey(common.KeyN, true)
	w.dispatchKey(common.KeyN, false)
	w.dispatchKey(common.KeyEsc, true)

	assert.Equal(t, []uint32{common.KeyN}, down, "escape is not forwarded")
	assert.Equal(t, []uint32{common.KeyN}, up)
}

func TestEngineWindow_Resized(t *testing.T) {
	w := newEngineWindow()
	var got [2]int
	w.SetResizeCallback(func(width, height int) { got = [2]int{width, height} })

	w.resized(640, 480)
	assert.Equal(t, [2]int{640, 480}, got)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
}
