package gpu

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/logger"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"

	"go.uber.org/zap"
)

// Device owns the WebGPU instance, adapter and device the cubemap viewer samples textures with.
// The device is created with every texture compression feature the adapter offers, so the
// capability probe reports exactly what uploads can use.
type Device struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device

	log *zap.Logger
}

// NewDevice creates the WebGPU device.
//
// Parameters:
//   - surfaceDescriptor: the window surface to stay compatible with (nil for headless)
//   - forceFallbackAdapter: request the software fallback adapter
//   - log: the logger (nil uses the shared logger)
//
// Returns:
//   - *Device: the device
//   - error: error if no adapter or device could be obtained
func NewDevice(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, log *zap.Logger) (*Device, error) {
	runtime.LockOSThread()
	d := &Device{
		instance: wgpu.CreateInstance(nil),
		log:      logger.Or(log).Named("gpu"),
	}

	if surfaceDescriptor != nil {
		d.surface = d.instance.CreateSurface(surfaceDescriptor)
	}

	a, err := d.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    d.surface,
	})
	if err != nil {
		d.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	d.adapter = a

	offered := a.EnumerateFeatures()
	dev, err := a.RequestDevice(deviceDescriptor(offered))
	if err != nil {
		d.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	d.device = dev

	d.log.Info("device ready",
		zap.Stringer("adapter_capabilities", texture.CapabilityFromFeatures(offered)),
		zap.Stringer("device_capabilities", texture.CapabilityFromFeatures(dev.EnumerateFeatures())),
	)
	return d, nil
}

// deviceDescriptor requests every compression feature among the offered ones with default limits.
func deviceDescriptor(offered []wgpu.FeatureName) *wgpu.DeviceDescriptor {
	return &wgpu.DeviceDescriptor{
		Label:            "Cubemap Device",
		RequiredFeatures: texture.CompressionFeatures(offered),
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	}
}

// Probe returns a capability probe that queries the device's enabled features on every call.
func (d *Device) Probe() texture.CapabilityProbe {
	if d.device == nil {
		return texture.StaticProbe(texture.CapabilityNone)
	}
	return texture.NewWGPUCapabilityProbe(d.device)
}

// Release frees the device, adapter, surface and instance in reverse creation order.
func (d *Device) Release() {
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.surface != nil {
		d.surface.Release()
		d.surface = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}
