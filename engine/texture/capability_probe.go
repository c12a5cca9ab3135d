package texture

// CapabilityProbe reports the compressed-texture capabilities of the active render device.
// Implementations must be side-effect free and must never fail; an empty set is a valid result.
type CapabilityProbe interface {
	// Supported queries the device for its supported capability set.
	// Callers query on every selection attempt instead of caching the result.
	//
	// Returns:
	//   - Capability: the supported capability set
	Supported() Capability
}

// StaticProbe is a CapabilityProbe that always reports the same set.
// Used for headless runs without a GPU adapter and in tests.
type StaticProbe Capability

var _ CapabilityProbe = StaticProbe(CapabilityNone)

func (p StaticProbe) Supported() Capability {
	return Capability(p)
}

// ProbeFunc adapts a plain function to the CapabilityProbe interface.
type ProbeFunc func() Capability

var _ CapabilityProbe = ProbeFunc(nil)

func (f ProbeFunc) Supported() Capability {
	if f == nil {
		return CapabilityNone
	}
	return f()
}
