package asset

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imageBackend decodes flat raster images (PNG, JPEG, BMP, TIFF, WebP).
// These formats carry no layer metadata, so the result is always a single-layer 2D texture
// that the cubemap controller reinterprets once loaded.
type imageBackend struct{}

var _ assetBackend = imageBackend{}

func newImageBackend() assetBackend {
	return imageBackend{}
}

func (imageBackend) Decode(r io.Reader) (texture.Metadata, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return texture.Metadata{}, fmt.Errorf("failed to decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return texture.Metadata{}, fmt.Errorf("%s image has empty bounds %dx%d", format, cfg.Width, cfg.Height)
	}
	return texture.NewFlatMetadata(uint32(cfg.Width), uint32(cfg.Height), wgpu.TextureFormatRGBA8UnormSrgb), nil
}
