package asset

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// ktx2Identifier is the 12-byte file identifier that opens every KTX2 file.
var ktx2Identifier = [12]byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x32, 0x30, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}

// ktx2HeaderSize is the size of the identifier plus the fixed header fields.
const ktx2HeaderSize = 48

// ktx2Header is the fixed part of a KTX2 header, after the identifier.
// Reference: https://registry.khronos.org/KTX/specs/2.0/ktxspec.v2.html#_header
type ktx2Header struct {
	VkFormat               uint32
	TypeSize               uint32
	PixelWidth             uint32
	PixelHeight            uint32
	PixelDepth             uint32
	LayerCount             uint32
	FaceCount              uint32
	LevelCount             uint32
	SupercompressionScheme uint32
}

// vkFormatToWGPU maps the Vulkan formats used by the reference assets to WebGPU formats.
var vkFormatToWGPU = map[uint32]wgpu.TextureFormat{
	37:  wgpu.TextureFormatRGBA8Unorm,
	43:  wgpu.TextureFormatRGBA8UnormSrgb,
	97:  wgpu.TextureFormatRGBA16Float,
	122: wgpu.TextureFormatRG11B10Ufloat,
	123: wgpu.TextureFormatRGB9E5Ufloat,
	145: wgpu.TextureFormatBC7RGBAUnorm,
	146: wgpu.TextureFormatBC7RGBAUnormSrgb,
	147: wgpu.TextureFormatETC2RGB8Unorm,
	148: wgpu.TextureFormatETC2RGB8UnormSrgb,
	151: wgpu.TextureFormatETC2RGBA8Unorm,
	152: wgpu.TextureFormatETC2RGBA8UnormSrgb,
	157: wgpu.TextureFormatASTC4x4Unorm,
	158: wgpu.TextureFormatASTC4x4UnormSrgb,
}

// ktx2Backend decodes KTX2 container headers. KTX2 is self-describing: cubemaps report six faces
// and arrays report their layer count, so the controller leaves the result as it is.
type ktx2Backend struct{}

var _ assetBackend = ktx2Backend{}

func newKTX2Backend() assetBackend {
	return ktx2Backend{}
}

func (ktx2Backend) Decode(r io.Reader) (texture.Metadata, error) {
	var buf [ktx2HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return texture.Metadata{}, fmt.Errorf("ktx2: failed to read header: %w", err)
	}
	if !bytes.Equal(buf[:12], ktx2Identifier[:]) {
		return texture.Metadata{}, errors.New("ktx2: invalid file identifier")
	}

	var h ktx2Header
	if err := binary.Read(bytes.NewReader(buf[12:]), binary.LittleEndian, &h); err != nil {
		return texture.Metadata{}, fmt.Errorf("ktx2: failed to parse header: %w", err)
	}
	return h.metadata()
}

// metadata converts the header into texture metadata.
func (h ktx2Header) metadata() (texture.Metadata, error) {
	if h.PixelWidth == 0 {
		return texture.Metadata{}, errors.New("ktx2: zero pixel width")
	}
	if h.PixelDepth > 1 {
		return texture.Metadata{}, fmt.Errorf("ktx2: 3D textures are not supported (depth %d)", h.PixelDepth)
	}
	if h.FaceCount != 1 && h.FaceCount != texture.CubeFaceCount {
		return texture.Metadata{}, fmt.Errorf("ktx2: invalid face count %d", h.FaceCount)
	}

	layers := max(h.LayerCount, 1)
	m := texture.Metadata{
		Width:           h.PixelWidth,
		Height:          max(h.PixelHeight, 1),
		ArrayLayerCount: layers * h.FaceCount,
		MipLevelCount:   max(h.LevelCount, 1),
		Format:          vkFormatToWGPU[h.VkFormat],
	}

	switch {
	case h.FaceCount == texture.CubeFaceCount && h.LayerCount > 1:
		m.ViewDimension = wgpu.TextureViewDimensionCubeArray
	case h.FaceCount == texture.CubeFaceCount:
		m.ViewDimension = wgpu.TextureViewDimensionCube
	case h.LayerCount > 1:
		m.ViewDimension = wgpu.TextureViewDimension2DArray
	default:
		m.ViewDimension = wgpu.TextureViewDimension2D
	}
	return m, nil
}
