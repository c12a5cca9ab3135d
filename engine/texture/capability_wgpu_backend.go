package texture

import "github.com/cogentcore/webgpu/wgpu"

// featureEnumerator is the subset of *wgpu.Device and *wgpu.Adapter used by the wgpu probe.
type featureEnumerator interface {
	EnumerateFeatures() []wgpu.FeatureName
}

// wgpuCapabilityProbe reads compression features from a WebGPU device on every query.
type wgpuCapabilityProbe struct {
	source featureEnumerator
}

var _ CapabilityProbe = &wgpuCapabilityProbe{}

// NewWGPUCapabilityProbe creates a CapabilityProbe backed by a WebGPU device or adapter.
// Passing a *wgpu.Device reports the features enabled on the device, which is what the
// renderer can actually upload; passing a *wgpu.Adapter reports what could be requested.
//
// Parameters:
//   - source: a *wgpu.Device or *wgpu.Adapter (or any type exposing EnumerateFeatures)
//
// Returns:
//   - CapabilityProbe: the probe
func NewWGPUCapabilityProbe(source featureEnumerator) CapabilityProbe {
	return &wgpuCapabilityProbe{source: source}
}

func (p *wgpuCapabilityProbe) Supported() Capability {
	if p.source == nil {
		return CapabilityNone
	}
	return CapabilityFromFeatures(p.source.EnumerateFeatures())
}

// CapabilityFromFeatures maps WebGPU feature names to a Capability set.
// Unrelated features are ignored.
//
// Parameters:
//   - features: the feature names reported by a device or adapter
//
// Returns:
//   - Capability: the compressed-texture capabilities present in features
func CapabilityFromFeatures(features []wgpu.FeatureName) Capability {
	var c Capability
	for _, f := range features {
		switch f {
		case wgpu.FeatureNameTextureCompressionASTC:
			c = c.Union(CapabilityASTC)
		case wgpu.FeatureNameTextureCompressionBC:
			c = c.Union(CapabilityBC)
		case wgpu.FeatureNameTextureCompressionETC2:
			c = c.Union(CapabilityETC2)
		}
	}
	return c
}

// CompressionFeatures returns the subset of features that correspond to a Capability bit.
// The bootstrap layer uses it to request every compression feature an adapter offers
// when creating the device.
//
// Parameters:
//   - features: the feature names reported by an adapter
//
// Returns:
//   - []wgpu.FeatureName: the compression features among them
func CompressionFeatures(features []wgpu.FeatureName) []wgpu.FeatureName {
	out := make([]wgpu.FeatureName, 0, 3)
	for _, f := range features {
		switch f {
		case wgpu.FeatureNameTextureCompressionASTC,
			wgpu.FeatureNameTextureCompressionBC,
			wgpu.FeatureNameTextureCompressionETC2:
			out = append(out, f)
		}
	}
	return out
}
