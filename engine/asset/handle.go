package asset

import "fmt"

// LoadStatus is the completion state of an asset load as reported by a Server.
type LoadStatus int

const (
	// StatusPending means the load was issued and has not finished decoding.
	StatusPending LoadStatus = iota

	// StatusLoaded means the asset decoded successfully and its metadata is available.
	StatusLoaded

	// StatusFailed means the asset could not be read or decoded, or the handle is unknown.
	StatusFailed
)

func (s LoadStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// RefCounter tracks shared ownership of an asset. Handles call it when they are cloned or released.
type RefCounter interface {
	// Retain adds one reference to the asset with the given ID.
	//
	// Parameters:
	//   - id: the asset ID
	Retain(id uint64)

	// Release drops one reference to the asset with the given ID. When the last reference
	// is dropped the owner may reclaim the asset.
	//
	// Parameters:
	//   - id: the asset ID
	Release(id uint64)
}

// Handle is a cloneable, reference-counted reference to an asset owned by a Server.
// The zero Handle is invalid and all of its methods are no-ops.
//
// Every holder that keeps a Handle beyond the current call must own a reference: take one with
// Clone and give it back with Release.
type Handle struct {
	id    uint64
	path  string
	owner RefCounter
}

// NewHandle builds a Handle for an asset owned by a custom RefCounter.
// Server implementations use this; callers obtain handles from Server.Load.
//
// Parameters:
//   - id: the non-zero asset ID
//   - path: the asset identifier the handle was loaded from
//   - owner: the reference counter for the asset (nil disables counting)
//
// Returns:
//   - Handle: the handle
func NewHandle(id uint64, path string, owner RefCounter) Handle {
	return Handle{id: id, path: path, owner: owner}
}

// ID returns the asset ID, or 0 for the zero Handle.
func (h Handle) ID() uint64 {
	return h.id
}

// Path returns the identifier the asset was loaded from.
func (h Handle) Path() string {
	return h.path
}

// IsValid reports whether the handle refers to an asset.
func (h Handle) IsValid() bool {
	return h.id != 0
}

// Same reports whether h and other refer to the same asset of the same owner.
func (h Handle) Same(other Handle) bool {
	return h.id == other.id && h.owner == other.owner
}

// Clone takes a new reference to the asset and returns a handle that owns it.
func (h Handle) Clone() Handle {
	if h.id != 0 && h.owner != nil {
		h.owner.Retain(h.id)
	}
	return h
}

// Release gives back the reference owned by this handle.
func (h Handle) Release() {
	if h.id != 0 && h.owner != nil {
		h.owner.Release(h.id)
	}
}

func (h Handle) String() string {
	if h.id == 0 {
		return "Handle(nil)"
	}
	return fmt.Sprintf("Handle(%d, %s)", h.id, h.path)
}
