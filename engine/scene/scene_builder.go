package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithSkybox adds a skybox built from cfg.
//
// Parameters:
//   - cfg: the skybox configuration
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSkybox(cfg SkyboxConfig) SceneBuilderOption {
	return func(s *scene) {
		s.skyboxes = append(s.skyboxes, NewSkybox(cfg))
	}
}

// WithEnvironmentMap sets the environment map light built from cfg.
//
// Parameters:
//   - cfg: the environment map configuration
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithEnvironmentMap(cfg EnvironmentMapConfig) SceneBuilderOption {
	return func(s *scene) {
		s.envMap = NewEnvironmentMapLight(cfg)
	}
}
