package cubemap

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/asset"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newAssetServer(t *testing.T, fsys fstest.MapFS, options ...asset.ServerBuilderOption) asset.Server {
	t.Helper()
	s := asset.NewServer(append([]asset.ServerBuilderOption{asset.WithFS(fsys), asset.WithLogger(zap.NewNop())}, options...)...)
	t.Cleanup(s.Close)
	return s
}

func TestController_MalformedImageFromServer(t *testing.T) {
	assets := newAssetServer(t, fstest.MapFS{
		"a.png": {Data: encodePNG(t, 100, 250)},
	})
	core, logs := observer.New(zapcore.DebugLevel)
	ctrl := NewController(texture.StaticProbe(texture.CapabilityNone), assets,
		WithCandidates(testTable),
		WithFailurePolicy(FailureRetry),
		WithLogger(zap.New(core)),
	)
	defer ctrl.Close()

	ctrl.Tick(0)
	h := ctrl.State().Handle
	require.Eventually(t, func() bool {
		return assets.Status(h) == asset.StatusLoaded
	}, 2*time.Second, 5*time.Millisecond)

	for i := 1; i <= 60; i++ {
		ctrl.Tick(float64(i) * 0.04)
	}

	stats := ctrl.Stats()
	assert.Equal(t, 1, stats.Loads, "the same decoded image is not requested again")
	assert.Equal(t, 1, stats.Failures)
	assert.Equal(t, 1, stats.Malformed)
	assert.Equal(t, 1, countLevel(logs, zapcore.ErrorLevel))
}

func TestController_TimeoutRetryLoadsAfresh(t *testing.T) {
	release := make(chan struct{})
	var decodes atomic.Int32
	assets := newAssetServer(t, fstest.MapFS{
		"sky.raw": {Data: []byte{1}},
	}, asset.WithWorkers(2), asset.WithBackend(".raw", func(r io.Reader) (texture.Metadata, error) {
		if decodes.Add(1) == 1 {
			<-release
		}
		return stackedMeta(4), nil
	}))
	t.Cleanup(func() { close(release) })

	ctrl := NewController(texture.StaticProbe(texture.CapabilityNone), assets,
		WithCandidates(texture.CandidateTable{{Path: "sky.raw"}}),
		WithFailurePolicy(FailureRetry),
		WithLoadTimeout(1),
		WithRetryDelay(0.5),
		WithSwapDelay(100),
		WithLogger(zap.NewNop()),
	)
	defer ctrl.Close()

	ctrl.Tick(0)
	first := ctrl.State().Handle
	ctrl.Tick(1)
	require.Equal(t, 1, ctrl.Stats().Failures)

	ctrl.Tick(1.6)
	second := ctrl.State().Handle
	require.True(t, second.IsValid())
	assert.False(t, second.Same(first), "the stalled entry is reclaimed instead of reused")

	require.Eventually(t, func() bool {
		ctrl.Tick(2)
		return ctrl.State().Loaded
	}, 2*time.Second, 5*time.Millisecond)

	stats := ctrl.Stats()
	assert.Equal(t, 2, stats.Loads)
	assert.Equal(t, 1, stats.Retries)
	assert.EqualValues(t, 2, decodes.Load())
}
