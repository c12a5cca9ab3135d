package cubemap

import "github.com/Carmen-Shannon/oxy-cubemap/engine/asset"

// TextureSlot is a consumer that samples a cubemap texture, such as a skybox or one half of an
// environment map light.
type TextureSlot interface {
	// SlotName identifies the slot in logs.
	SlotName() string

	// Texture returns the handle the slot currently samples.
	Texture() asset.Handle

	// SetTexture replaces the handle the slot samples. The slot does not manage references.
	SetTexture(h asset.Handle)
}

// Binder propagates a loaded texture handle to every registered TextureSlot.
// Each slot holds its own reference, taken with Handle.Clone, so consumers keep sampling the
// previous texture until the next Bind.
type Binder struct {
	slots []TextureSlot
}

// NewBinder creates a Binder with the given slots registered.
func NewBinder(slots ...TextureSlot) *Binder {
	b := &Binder{}
	b.Register(slots...)
	return b
}

// Register adds slots to the binder. Nil slots are ignored.
func (b *Binder) Register(slots ...TextureSlot) {
	for _, s := range slots {
		if s != nil {
			b.slots = append(b.slots, s)
		}
	}
}

// Bind points every registered slot at h and releases each slot's previous reference.
//
// Parameters:
//   - h: the loaded handle to bind
//
// Returns:
//   - int: the number of slots updated
func (b *Binder) Bind(h asset.Handle) int {
	for _, s := range b.slots {
		old := s.Texture()
		s.SetTexture(h.Clone())
		old.Release()
	}
	return len(b.slots)
}

// Unbind clears every slot and releases the references the binder gave them.
func (b *Binder) Unbind() {
	for _, s := range b.slots {
		old := s.Texture()
		s.SetTexture(asset.Handle{})
		old.Release()
	}
}

// Slots returns the registered slots.
func (b *Binder) Slots() []TextureSlot {
	return b.slots
}

// Len returns the number of registered slots.
func (b *Binder) Len() int {
	return len(b.slots)
}
