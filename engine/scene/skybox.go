package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/asset"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/cubemap"
)

// SkyboxConfig holds the user-tunable properties of a Skybox.
type SkyboxConfig struct {
	// Name identifies the skybox in logs.
	Name string `yaml:"name"`

	// Brightness scales the sampled cubemap color.
	Brightness float32 `yaml:"brightness"`
}

// DefaultSkyboxConfig returns the default skybox configuration.
func DefaultSkyboxConfig() SkyboxConfig {
	return SkyboxConfig{
		Name:       "skybox",
		Brightness: 1.0,
	}
}

// Skybox is a camera background that samples a cubemap texture.
// Safe for concurrent use.
type Skybox struct {
	mu      sync.RWMutex
	cfg     SkyboxConfig
	texture asset.Handle
}

var _ cubemap.TextureSlot = &Skybox{}

// NewSkybox creates a Skybox with no texture bound.
// Zero fields of cfg take their default values.
//
// Parameters:
//   - cfg: the skybox configuration
//
// Returns:
//   - *Skybox: the skybox
func NewSkybox(cfg SkyboxConfig) *Skybox {
	def := DefaultSkyboxConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.Brightness <= 0 {
		cfg.Brightness = def.Brightness
	}
	return &Skybox{cfg: cfg}
}

func (s *Skybox) SlotName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Name
}

func (s *Skybox) Texture() asset.Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.texture
}

func (s *Skybox) SetTexture(h asset.Handle) {
	s.mu.Lock()
	s.texture = h
	s.mu.Unlock()
}

// Config returns a copy of the skybox configuration.
func (s *Skybox) Config() SkyboxConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetBrightness sets the brightness multiplier. Negative values are clamped to 0.
func (s *Skybox) SetBrightness(brightness float32) {
	s.mu.Lock()
	s.cfg.Brightness = max(brightness, 0)
	s.mu.Unlock()
}
