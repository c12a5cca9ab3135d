package texture

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReinterpretStackedCube(t *testing.T) {
	m := NewFlatMetadata(1024, 6144, wgpu.TextureFormatRGBA8UnormSrgb)

	changed, err := Reinterpret(&m)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, uint32(6), m.ArrayLayerCount)
	assert.Equal(t, uint32(1024), m.Width)
	assert.Equal(t, uint32(1024), m.Height)
	assert.Equal(t, wgpu.TextureViewDimensionCube, m.ViewDimension)
	assert.True(t, m.IsCube())
}

func TestReinterpretLayerCountDerivation(t *testing.T) {
	tests := []struct {
		height uint32
		layers uint32
		view   wgpu.TextureViewDimension
	}{
		{height: 6 * 64, layers: 6, view: wgpu.TextureViewDimensionCube},
		{height: 3 * 64, layers: 3, view: wgpu.TextureViewDimension2DArray},
		{height: 12 * 64, layers: 12, view: wgpu.TextureViewDimensionCubeArray},
		{height: 64, layers: 1, view: wgpu.TextureViewDimension2D},
	}
	for _, tt := range tests {
		m := NewFlatMetadata(64, tt.height, wgpu.TextureFormatRGBA8UnormSrgb)
		_, err := Reinterpret(&m)
		require.NoError(t, err)
		assert.Equal(t, tt.layers, m.ArrayLayerCount, "height %d", tt.height)
		assert.Equal(t, tt.view, m.ViewDimension, "height %d", tt.height)
	}
}

func TestReinterpretIsIdempotent(t *testing.T) {
	m := NewFlatMetadata(256, 1536, wgpu.TextureFormatRGBA8UnormSrgb)
	_, err := Reinterpret(&m)
	require.NoError(t, err)
	first := m

	changed, err := Reinterpret(&m)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first, m)
}

func TestReinterpretSkipsNativeArrays(t *testing.T) {
	m := Metadata{
		Width:           512,
		Height:          512,
		ArrayLayerCount: 6,
		MipLevelCount:   10,
		ViewDimension:   wgpu.TextureViewDimensionCube,
	}
	changed, err := Reinterpret(&m)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, uint32(512), m.Height)
}

func TestReinterpretRejectsMalformedLayout(t *testing.T) {
	m := NewFlatMetadata(100, 650, wgpu.TextureFormatRGBA8UnormSrgb)
	changed, err := Reinterpret(&m)
	assert.ErrorIs(t, err, ErrMalformedLayout)
	assert.False(t, changed)
	assert.Equal(t, uint32(1), m.ArrayLayerCount)

	zero := NewFlatMetadata(0, 10, wgpu.TextureFormatRGBA8UnormSrgb)
	_, err = Reinterpret(&zero)
	assert.ErrorIs(t, err, ErrMalformedLayout)

	changed, err = Reinterpret(nil)
	assert.NoError(t, err)
	assert.False(t, changed)
}
