package texture

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// CubeFaceCount is the number of square faces in a cubemap.
const CubeFaceCount = 6

// ErrMalformedLayout is returned by Reinterpret when a flat image cannot be split into square
// layers, i.e. its width is zero or its height is not an exact multiple of its width.
var ErrMalformedLayout = errors.New("texture: image height is not a multiple of its width")

// Metadata describes the shape of a loaded texture as the renderer will consume it.
// The asset server produces it from file headers; Reinterpret mutates it in place.
type Metadata struct {
	// Width is the width of one layer in texels.
	Width uint32

	// Height is the height of one layer in texels.
	Height uint32

	// ArrayLayerCount is the number of array layers (6 for a single cubemap).
	ArrayLayerCount uint32

	// MipLevelCount is the number of mip levels stored in the source.
	MipLevelCount uint32

	// ViewDimension is how the texture view addresses the layers.
	ViewDimension wgpu.TextureViewDimension

	// Format is the GPU texture format of the stored texels.
	Format wgpu.TextureFormat
}

// NewFlatMetadata returns metadata for a single-layer 2D image.
//
// Parameters:
//   - width: image width in texels
//   - height: image height in texels
//   - format: the GPU texture format of the decoded texels
//
// Returns:
//   - Metadata: flat single-layer metadata
func NewFlatMetadata(width, height uint32, format wgpu.TextureFormat) Metadata {
	return Metadata{
		Width:           width,
		Height:          height,
		ArrayLayerCount: 1,
		MipLevelCount:   1,
		ViewDimension:   wgpu.TextureViewDimension2D,
		Format:          format,
	}
}

func (m Metadata) String() string {
	return fmt.Sprintf("%dx%d x%d layers, %d mips, view %s",
		m.Width, m.Height, m.ArrayLayerCount, m.MipLevelCount, viewDimensionName(m.ViewDimension))
}

// IsFlat reports whether the texture has a single layer.
func (m Metadata) IsFlat() bool {
	return m.ArrayLayerCount <= 1
}

// IsCube reports whether the view addresses the layers as one or more cubes.
func (m Metadata) IsCube() bool {
	return m.ViewDimension == wgpu.TextureViewDimensionCube || m.ViewDimension == wgpu.TextureViewDimensionCubeArray
}

// Reinterpret converts a flat image of square faces stacked vertically into an array texture.
// The layer count is Height / Width; Height becomes the face size and the view dimension is set
// to Cube for exactly six layers, CubeArray for larger multiples of six, and 2DArray otherwise.
//
// Metadata that already reports more than one layer (self-describing array containers such as
// KTX2 cubemaps) is left untouched, which makes the call idempotent.
//
// Parameters:
//   - m: the metadata to rewrite in place
//
// Returns:
//   - bool: true if the metadata was rewritten
//   - error: ErrMalformedLayout if the image cannot be split into square layers
func Reinterpret(m *Metadata) (bool, error) {
	if m == nil || !m.IsFlat() {
		return false, nil
	}
	if m.Width == 0 || m.Height%m.Width != 0 {
		return false, fmt.Errorf("%w: %dx%d", ErrMalformedLayout, m.Width, m.Height)
	}

	layers := m.Height / m.Width
	m.ArrayLayerCount = layers
	m.Height = m.Width
	m.ViewDimension = stackedViewDimension(layers)
	return true, nil
}

// stackedViewDimension picks the view dimension for a stack of square layers.
func stackedViewDimension(layers uint32) wgpu.TextureViewDimension {
	switch {
	case layers == CubeFaceCount:
		return wgpu.TextureViewDimensionCube
	case layers > CubeFaceCount && layers%CubeFaceCount == 0:
		return wgpu.TextureViewDimensionCubeArray
	case layers > 1:
		return wgpu.TextureViewDimension2DArray
	default:
		return wgpu.TextureViewDimension2D
	}
}

func viewDimensionName(d wgpu.TextureViewDimension) string {
	switch d {
	case wgpu.TextureViewDimension1D:
		return "1d"
	case wgpu.TextureViewDimension2D:
		return "2d"
	case wgpu.TextureViewDimension2DArray:
		return "2d-array"
	case wgpu.TextureViewDimensionCube:
		return "cube"
	case wgpu.TextureViewDimensionCubeArray:
		return "cube-array"
	case wgpu.TextureViewDimension3D:
		return "3d"
	default:
		return "undefined"
	}
}
