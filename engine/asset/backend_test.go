package asset

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"testing"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func encodeKTX2(h ktx2Header) []byte {
	var buf bytes.Buffer
	buf.Write(ktx2Identifier[:])
	_ = binary.Write(&buf, binary.LittleEndian, h)
	return buf.Bytes()
}

func encodeASTC(blockX, blockY uint8, w, h uint32) []byte {
	b := []byte{0x13, 0xAB, 0xA1, 0x5C, blockX, blockY, 1}
	for _, v := range []uint32{w, h, 1} {
		b = append(b, byte(v), byte(v>>8), byte(v>>16))
	}
	return b
}

func TestImageBackend_Decode(t *testing.T) {
	meta, err := newImageBackend().Decode(bytes.NewReader(encodePNG(t, 4, 24)))
	require.NoError(t, err)
	assert.Equal(t, uint32(4), meta.Width)
	assert.Equal(t, uint32(24), meta.Height)
	assert.Equal(t, uint32(1), meta.ArrayLayerCount)
	assert.Equal(t, wgpu.TextureViewDimension2D, meta.ViewDimension)

	_, err = newImageBackend().Decode(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestKTX2Backend_Decode(t *testing.T) {
	tests := []struct {
		name   string
		header ktx2Header
		layers uint32
		view   wgpu.TextureViewDimension
		format wgpu.TextureFormat
	}{
		{
			name:   "cubemap",
			header: ktx2Header{VkFormat: 145, PixelWidth: 256, PixelHeight: 256, FaceCount: 6, LevelCount: 9},
			layers: 6,
			view:   wgpu.TextureViewDimensionCube,
			format: wgpu.TextureFormatBC7RGBAUnorm,
		},
		{
			name:   "cube array",
			header: ktx2Header{VkFormat: 157, PixelWidth: 64, PixelHeight: 64, LayerCount: 2, FaceCount: 6},
			layers: 12,
			view:   wgpu.TextureViewDimensionCubeArray,
			format: wgpu.TextureFormatASTC4x4Unorm,
		},
		{
			name:   "flat",
			header: ktx2Header{VkFormat: 123, PixelWidth: 64, PixelHeight: 384, FaceCount: 1},
			layers: 1,
			view:   wgpu.TextureViewDimension2D,
			format: wgpu.TextureFormatRGB9E5Ufloat,
		},
		{
			name:   "2d array unknown format",
			header: ktx2Header{VkFormat: 9999, PixelWidth: 8, PixelHeight: 8, LayerCount: 3, FaceCount: 1},
			layers: 3,
			view:   wgpu.TextureViewDimension2DArray,
			format: wgpu.TextureFormatUndefined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := newKTX2Backend().Decode(bytes.NewReader(encodeKTX2(tt.header)))
			require.NoError(t, err)
			assert.Equal(t, tt.layers, meta.ArrayLayerCount)
			assert.Equal(t, tt.view, meta.ViewDimension)
			assert.Equal(t, tt.format, meta.Format)
			assert.GreaterOrEqual(t, meta.MipLevelCount, uint32(1))
		})
	}
}

func TestKTX2Backend_DecodeErrors(t *testing.T) {
	_, err := newKTX2Backend().Decode(bytes.NewReader(ktx2Identifier[:]))
	assert.Error(t, err, "truncated header")

	bad := encodeKTX2(ktx2Header{PixelWidth: 8, PixelHeight: 8, FaceCount: 1})
	bad[0] = 0
	_, err = newKTX2Backend().Decode(bytes.NewReader(bad))
	assert.ErrorContains(t, err, "identifier")

	_, err = newKTX2Backend().Decode(bytes.NewReader(encodeKTX2(ktx2Header{PixelWidth: 8, FaceCount: 4})))
	assert.ErrorContains(t, err, "face count")

	_, err = newKTX2Backend().Decode(bytes.NewReader(encodeKTX2(ktx2Header{FaceCount: 6})))
	assert.Error(t, err)
}

func TestASTCBackend_Decode(t *testing.T) {
	meta, err := newASTCBackend().Decode(bytes.NewReader(encodeASTC(4, 4, 512, 3072)))
	require.NoError(t, err)
	assert.Equal(t, texture.NewFlatMetadata(512, 3072, wgpu.TextureFormatASTC4x4Unorm), meta)

	_, err = newASTCBackend().Decode(bytes.NewReader(encodeASTC(3, 7, 16, 16)))
	assert.ErrorContains(t, err, "block footprint")

	_, err = newASTCBackend().Decode(bytes.NewReader(encodeASTC(4, 4, 0, 16)))
	assert.Error(t, err)

	_, err = newASTCBackend().Decode(bytes.NewReader([]byte{0x13, 0xAB}))
	assert.Error(t, err)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".ktx2", extension("textures/Ryfjallet_cubemap_bc7.KTX2"))
	assert.Equal(t, ".png", extension("Ryfjallet_cubemap.png"))
	assert.Equal(t, "", extension("noext"))
}
