package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEngine_HeadlessTicks(t *testing.T) {
	var (
		mu      sync.Mutex
		elapsed []float64
	)
	e := NewEngine(WithTickRate(200))
	e.SetTickCallback(func(now float64) {
		mu.Lock()
		elapsed = append(elapsed, now)
		n := len(elapsed)
		mu.Unlock()
		if n == 5 {
			e.Quit()
		}
	})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(elapsed), 5)
	for i := 1; i < len(elapsed); i++ {
		assert.GreaterOrEqual(t, elapsed[i], elapsed[i-1], "elapsed time is monotonic")
	}
	assert.Greater(t, elapsed[0], 0.0)
}

func TestEngine_QuitIsIdempotent(t *testing.T) {
	e := NewEngine()
	e.Quit()
	e.Quit()

	select {
	case <-e.Done():
	default:
		t.Fatal("done channel not closed")
	}

	finished := make(chan struct{})
	go func() {
		e.Run()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("run after quit did not return")
	}
}

func TestEngine_PanickingCallbackStops(t *testing.T) {
	e := NewEngine(WithTickRate(500), WithTickCallback(func(float64) {
		panic("boom")
	}))

	finished := make(chan struct{})
	go func() {
		e.Run()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop after panic")
	}
}

func TestEngine_Scenes(t *testing.T) {
	primary := scene.NewScene("main")
	e := NewEngine(WithScene(0, primary))
	e.AddScene(1, scene.NewScene("overlay"))

	assert.Equal(t, primary, e.Scene(0))
	assert.Len(t, e.Scenes(), 2)

	e.RemoveScene(1)
	assert.Nil(t, e.Scene(1))
	assert.Nil(t, e.Window())
	assert.Equal(t, 0.0, e.Elapsed())
	assert.NotNil(t, e.Profiler())
}

func TestEngine_SetTickRate(t *testing.T) {
	e := NewEngine().(*engine)
	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)
	e.SetTickRate(250)
	assert.Equal(t, 4*time.Millisecond, e.engineTickRate)
}

func TestEngine_RunLogsActiveScenes(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	hidden := scene.NewScene("hidden")
	hidden.SetActive(false)
	e := NewEngine(
		WithTickRate(200),
		WithLogger(zap.New(core)),
		WithScene(2, scene.NewScene("overlay")),
		WithScene(0, scene.NewScene("main")),
		WithScene(1, hidden),
	)
	e.SetTickCallback(func(float64) { e.Quit() })

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not stop")
	}

	var names []string
	for _, entry := range logs.FilterMessage("scene").All() {
		names = append(names, entry.ContextMap()["name"].(string))
	}
	assert.Equal(t, []string{"main", "overlay"}, names)
}
