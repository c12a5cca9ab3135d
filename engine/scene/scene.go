package scene

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/cubemap"
)

// Scene groups the cubemap consumers of one view: the skyboxes that follow the cycling cubemap
// and an optional environment map light. Scenes can be toggled with the Active flag.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active.
	Active() bool

	// SetActive sets whether this scene is active.
	SetActive(active bool)

	// Skyboxes returns the scene's skyboxes.
	//
	// Returns:
	//   - []*Skybox: the skyboxes in the order they were added
	Skyboxes() []*Skybox

	// AddSkybox adds a skybox to the scene.
	//
	// Parameters:
	//   - sky: the skybox to add (nil is ignored)
	AddSkybox(sky *Skybox)

	// EnvironmentMap returns the scene's environment map light, or nil.
	EnvironmentMap() *EnvironmentMapLight

	// CubemapSlots returns every slot that follows the cycling cubemap.
	//
	// Returns:
	//   - []cubemap.TextureSlot: the skybox slots
	CubemapSlots() []cubemap.TextureSlot

	// Describe summarises what each consumer currently samples.
	//
	// Returns:
	//   - string: one "slot=path" entry per consumer
	Describe() string
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu sync.RWMutex

	name   string
	active bool

	skyboxes []*Skybox
	envMap   *EnvironmentMapLight
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the specified options applied.
// The scene is active by default.
//
// Parameters:
//   - name: the scene's identifier
//   - options: a variadic list of SceneBuilderOption functions to configure the Scene
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:   name,
		active: true,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	s.active = active
	s.mu.Unlock()
}

func (s *scene) Skyboxes() []*Skybox {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Skybox, len(s.skyboxes))
	copy(out, s.skyboxes)
	return out
}

func (s *scene) AddSkybox(sky *Skybox) {
	if sky == nil {
		return
	}
	s.mu.Lock()
	s.skyboxes = append(s.skyboxes, sky)
	s.mu.Unlock()
}

func (s *scene) EnvironmentMap() *EnvironmentMapLight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.envMap
}

func (s *scene) CubemapSlots() []cubemap.TextureSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slots := make([]cubemap.TextureSlot, 0, len(s.skyboxes))
	for _, sky := range s.skyboxes {
		slots = append(slots, sky)
	}
	return slots
}

func (s *scene) Describe() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots := make([]cubemap.TextureSlot, 0, len(s.skyboxes)+2)
	for _, sky := range s.skyboxes {
		slots = append(slots, sky)
	}
	if s.envMap != nil {
		slots = append(slots, s.envMap.DiffuseSlot(), s.envMap.SpecularSlot())
	}

	parts := make([]string, 0, len(slots))
	for _, slot := range slots {
		path := "-"
		if h := slot.Texture(); h.IsValid() {
			path = h.Path()
		}
		parts = append(parts, fmt.Sprintf("%s=%s", slot.SlotName(), path))
	}
	return strings.Join(parts, " ")
}
