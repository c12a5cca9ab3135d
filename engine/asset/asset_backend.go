package asset

import (
	"errors"
	"io"
	"path"
	"strings"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"
)

// ErrUnsupportedFormat is returned when no decoder backend is registered for an asset's extension.
var ErrUnsupportedFormat = errors.New("asset: unsupported file format")

// ErrClosed is the load error of assets requested after the Server was closed.
var ErrClosed = errors.New("asset: server closed")

// assetBackend decodes the texture metadata of one container format.
// Concrete implementations (imageBackend, ktx2Backend, astcBackend) read only as much of the
// stream as the header requires.
type assetBackend interface {
	// Decode reads the container header from r and describes the stored texture.
	//
	// Parameters:
	//   - r: the reader positioned at the start of the file
	//
	// Returns:
	//   - texture.Metadata: the decoded metadata
	//   - error: error if the header is invalid or truncated
	Decode(r io.Reader) (texture.Metadata, error)
}

// DecodeFunc adapts a function to the decoder backend used by the Server.
type DecodeFunc func(r io.Reader) (texture.Metadata, error)

// Decode calls f(r).
func (f DecodeFunc) Decode(r io.Reader) (texture.Metadata, error) {
	return f(r)
}

// defaultBackends maps lower-case file extensions to the built-in decoder backends.
func defaultBackends() map[string]assetBackend {
	img := newImageBackend()
	return map[string]assetBackend{
		".png":  img,
		".jpg":  img,
		".jpeg": img,
		".bmp":  img,
		".tif":  img,
		".tiff": img,
		".webp": img,
		".ktx2": newKTX2Backend(),
		".astc": newASTCBackend(),
	}
}

// extension returns the lower-case extension of an asset identifier.
func extension(p string) string {
	return strings.ToLower(path.Ext(p))
}
