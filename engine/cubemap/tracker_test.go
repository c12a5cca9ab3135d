package cubemap

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/asset"
	"github.com/stretchr/testify/assert"
)

func TestLoadTracker_LoadedOnce(t *testing.T) {
	assets := newFakeAssets()
	tr := NewLoadTracker(0)

	assert.Equal(t, TransitionNone, tr.Poll(0, assets), "idle tracker reports nothing")

	h := assets.Load("sky.png")
	tr.Begin(h, 1)
	assert.True(t, tr.Pending())
	assert.Equal(t, TransitionNone, tr.Poll(1.5, assets))

	assets.complete(h, stackedMeta(4))
	assert.Equal(t, TransitionLoaded, tr.Poll(2, assets))
	assert.True(t, tr.Loaded())
	assert.Equal(t, TransitionNone, tr.Poll(2.1, assets), "loaded is reported once per handle")
}

func TestLoadTracker_Failed(t *testing.T) {
	assets := newFakeAssets()
	tr := NewLoadTracker(0)

	h := assets.Load("missing.png")
	tr.Begin(h, 0)
	assets.fail(h)

	assert.Equal(t, TransitionFailed, tr.Poll(0.1, assets))
	assert.True(t, tr.Failed())
	assert.Equal(t, TransitionNone, tr.Poll(0.2, assets))
}

func TestLoadTracker_Timeout(t *testing.T) {
	assets := newFakeAssets()

	tr := NewLoadTracker(2)
	tr.Begin(assets.Load("slow.ktx2"), 10)
	assert.Equal(t, TransitionNone, tr.Poll(11.9, assets))
	assert.InDelta(t, 1.9, tr.Elapsed(11.9), 1e-9)
	assert.Equal(t, TransitionFailed, tr.Poll(12, assets))

	forever := NewLoadTracker(0)
	forever.Begin(assets.Load("slow.ktx2"), 0)
	assert.Equal(t, TransitionNone, forever.Poll(1e6, assets), "no timeout waits forever")
	assert.True(t, forever.Pending())
}

func TestLoadTracker_BeginAbandonsPrevious(t *testing.T) {
	assets := newFakeAssets()
	tr := NewLoadTracker(0)

	first := assets.Load("a.png")
	tr.Begin(first, 0)
	second := assets.Load("b.png")
	tr.Begin(second, 1)

	assets.complete(first, stackedMeta(4))
	assert.Equal(t, TransitionNone, tr.Poll(2, assets), "completion of an abandoned load is ignored")

	assets.complete(second, stackedMeta(4))
	assert.Equal(t, TransitionLoaded, tr.Poll(3, assets))
}

func TestLoadTracker_UnknownHandle(t *testing.T) {
	tr := NewLoadTracker(0)
	tr.Begin(asset.NewHandle(42, "gone.png", nil), 0)
	assert.Equal(t, TransitionFailed, tr.Poll(0, newFakeAssets()))
}
