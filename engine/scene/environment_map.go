package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/asset"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/cubemap"
)

// EnvironmentMapConfig holds the assets and tunable properties of an EnvironmentMapLight.
type EnvironmentMapConfig struct {
	// Diffuse is the asset path of the diffuse irradiance cubemap.
	Diffuse string `yaml:"diffuse"`

	// Specular is the asset path of the prefiltered specular cubemap.
	Specular string `yaml:"specular"`

	// Intensity scales the light contributed by both maps.
	Intensity float32 `yaml:"intensity"`
}

// DefaultEnvironmentMapConfig returns the default environment map configuration.
func DefaultEnvironmentMapConfig() EnvironmentMapConfig {
	return EnvironmentMapConfig{
		Diffuse:   cubemap.DefaultDiffuseMap,
		Specular:  cubemap.DefaultSpecularMap,
		Intensity: 1.0,
	}
}

// Maps returns the asset paths in the form the environment loader expects.
func (c EnvironmentMapConfig) Maps() cubemap.EnvironmentMaps {
	return cubemap.EnvironmentMaps{Diffuse: c.Diffuse, Specular: c.Specular}
}

// mapSlot is one half of an environment map light.
type mapSlot struct {
	mu      sync.RWMutex
	name    string
	texture asset.Handle
}

var _ cubemap.TextureSlot = &mapSlot{}

func (m *mapSlot) SlotName() string {
	return m.name
}

func (m *mapSlot) Texture() asset.Handle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.texture
}

func (m *mapSlot) SetTexture(h asset.Handle) {
	m.mu.Lock()
	m.texture = h
	m.mu.Unlock()
}

// EnvironmentMapLight is image-based lighting from a diffuse and a specular cubemap.
// Each map is bound independently as it finishes loading.
type EnvironmentMapLight struct {
	mu       sync.RWMutex
	cfg      EnvironmentMapConfig
	diffuse  *mapSlot
	specular *mapSlot
}

// NewEnvironmentMapLight creates an EnvironmentMapLight with no maps bound.
// A zero intensity takes the default value; empty paths disable that map.
//
// Parameters:
//   - cfg: the environment map configuration
//
// Returns:
//   - *EnvironmentMapLight: the light
func NewEnvironmentMapLight(cfg EnvironmentMapConfig) *EnvironmentMapLight {
	if cfg.Intensity <= 0 {
		cfg.Intensity = DefaultEnvironmentMapConfig().Intensity
	}
	return &EnvironmentMapLight{
		cfg:      cfg,
		diffuse:  &mapSlot{name: "environment_map.diffuse"},
		specular: &mapSlot{name: "environment_map.specular"},
	}
}

// DiffuseSlot returns the slot the diffuse map is bound to.
func (e *EnvironmentMapLight) DiffuseSlot() cubemap.TextureSlot {
	return e.diffuse
}

// SpecularSlot returns the slot the specular map is bound to.
func (e *EnvironmentMapLight) SpecularSlot() cubemap.TextureSlot {
	return e.specular
}

// Ready reports whether both maps are bound.
func (e *EnvironmentMapLight) Ready() bool {
	return e.diffuse.Texture().IsValid() && e.specular.Texture().IsValid()
}

// Config returns a copy of the configuration.
func (e *EnvironmentMapLight) Config() EnvironmentMapConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg
}

// SetIntensity sets the light intensity. Negative values are clamped to 0.
func (e *EnvironmentMapLight) SetIntensity(intensity float32) {
	e.mu.Lock()
	e.cfg.Intensity = max(intensity, 0)
	e.mu.Unlock()
}
