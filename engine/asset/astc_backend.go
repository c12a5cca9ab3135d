package asset

import (
	"errors"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// astcMagic opens every .astc file.
var astcMagic = [4]byte{0x13, 0xAB, 0xA1, 0x5C}

// astcHeaderSize is the size of the .astc file header.
const astcHeaderSize = 16

// astcBlockFormats maps 2D block footprints to WebGPU formats.
var astcBlockFormats = map[[2]uint8]wgpu.TextureFormat{
	{4, 4}:   wgpu.TextureFormatASTC4x4Unorm,
	{5, 5}:   wgpu.TextureFormatASTC5x5Unorm,
	{6, 6}:   wgpu.TextureFormatASTC6x6Unorm,
	{8, 8}:   wgpu.TextureFormatASTC8x8Unorm,
	{10, 10}: wgpu.TextureFormatASTC10x10Unorm,
	{12, 12}: wgpu.TextureFormatASTC12x12Unorm,
}

// astcBackend decodes raw .astc container headers. The container has no layer metadata, so a
// stacked cubemap arrives as one tall 2D image.
type astcBackend struct{}

var _ assetBackend = astcBackend{}

func newASTCBackend() assetBackend {
	return astcBackend{}
}

func (astcBackend) Decode(r io.Reader) (texture.Metadata, error) {
	var data [astcHeaderSize]byte
	if _, err := io.ReadFull(r, data[:]); err != nil {
		return texture.Metadata{}, fmt.Errorf("astc: failed to read header: %w", err)
	}
	if data[0] != astcMagic[0] || data[1] != astcMagic[1] || data[2] != astcMagic[2] || data[3] != astcMagic[3] {
		return texture.Metadata{}, errors.New("astc: invalid magic")
	}

	blockX, blockY, blockZ := data[4], data[5], data[6]
	sizeX := decodeU24LE(data[7:10])
	sizeY := decodeU24LE(data[10:13])
	sizeZ := decodeU24LE(data[13:16])

	if blockX == 0 || blockY == 0 || blockZ == 0 {
		return texture.Metadata{}, errors.New("astc: invalid header: zero block dimension")
	}
	if sizeX == 0 || sizeY == 0 || sizeZ == 0 {
		return texture.Metadata{}, errors.New("astc: invalid header: zero image dimension")
	}
	if blockZ != 1 || sizeZ != 1 {
		return texture.Metadata{}, fmt.Errorf("astc: volume textures are not supported (%dx%dx%d)", sizeX, sizeY, sizeZ)
	}

	format, ok := astcBlockFormats[[2]uint8{blockX, blockY}]
	if !ok {
		return texture.Metadata{}, fmt.Errorf("astc: unsupported block footprint %dx%d", blockX, blockY)
	}
	return texture.NewFlatMetadata(sizeX, sizeY, format), nil
}

func decodeU24LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}
