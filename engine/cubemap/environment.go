package cubemap

import (
	"github.com/Carmen-Shannon/oxy-cubemap/engine/asset"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/logger"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"

	"go.uber.org/zap"
)

// Default environment map assets.
const (
	DefaultDiffuseMap  = "environment_maps/pisa_diffuse_rgb9e5_zstd.ktx2"
	DefaultSpecularMap = "environment_maps/pisa_specular_rgb9e5_zstd.ktx2"
)

// EnvironmentMaps names the diffuse and specular cubemaps of an environment map light.
type EnvironmentMaps struct {
	Diffuse  string
	Specular string
}

// DefaultEnvironmentMaps returns the default diffuse and specular asset paths.
func DefaultEnvironmentMaps() EnvironmentMaps {
	return EnvironmentMaps{Diffuse: DefaultDiffuseMap, Specular: DefaultSpecularMap}
}

// trackedMap is one environment cubemap being loaded into its slot.
type trackedMap struct {
	name    string
	path    string
	handle  asset.Handle
	tracker *LoadTracker
	binder  *Binder
	bound   bool
	failed  bool
}

// EnvironmentLoader loads the diffuse and specular environment maps once and binds each to its
// slot as soon as it completes. It shares the controller's tick goroutine and is not safe for
// concurrent use.
type EnvironmentLoader struct {
	assets  Assets
	timeout float64
	log     *zap.Logger
	maps    []*trackedMap
}

// NewEnvironmentLoader creates an EnvironmentLoader. Maps with an empty path are skipped.
// Panics if assets is nil.
//
// Parameters:
//   - assets: the asset server
//   - maps: the diffuse and specular asset paths
//   - diffuse: the slot receiving the diffuse map
//   - specular: the slot receiving the specular map
//   - options: the options for the loader, see environment_builder.go
//
// Returns:
//   - *EnvironmentLoader: the loader
func NewEnvironmentLoader(assets Assets, maps EnvironmentMaps, diffuse, specular TextureSlot, options ...EnvironmentLoaderBuilderOption) *EnvironmentLoader {
	if assets == nil {
		panic("cubemap: NewEnvironmentLoader requires an asset server")
	}

	e := &EnvironmentLoader{
		assets: assets,
	}
	for _, option := range options {
		option(e)
	}
	e.log = logger.Or(e.log).Named("environment")
	for _, m := range []struct {
		name string
		path string
		slot TextureSlot
	}{
		{"diffuse", maps.Diffuse, diffuse},
		{"specular", maps.Specular, specular},
	} {
		if m.path == "" {
			continue
		}
		e.maps = append(e.maps, &trackedMap{
			name:    m.name,
			path:    m.path,
			tracker: NewLoadTracker(e.timeout),
			binder:  NewBinder(m.slot),
		})
	}
	return e
}

// Start requests every map that has not been requested yet.
func (e *EnvironmentLoader) Start(now float64) {
	for _, m := range e.maps {
		if m.handle.IsValid() {
			continue
		}
		m.handle = e.assets.Load(m.path)
		m.tracker.Begin(m.handle, now)
		e.log.Info("loading environment map", zap.String("map", m.name), zap.String("path", m.path))
	}
}

// Tick polls the outstanding maps and binds the ones that finished.
func (e *EnvironmentLoader) Tick(now float64) {
	for _, m := range e.maps {
		if !m.handle.IsValid() {
			continue
		}
		switch m.tracker.Poll(now, e.assets) {
		case TransitionLoaded:
			e.bind(m, m.tracker.Elapsed(now))
		case TransitionFailed:
			m.failed = true
			e.log.Warn("environment map failed to load", zap.String("map", m.name), zap.String("path", m.path))
		}
	}
}

func (e *EnvironmentLoader) bind(m *trackedMap, elapsed float64) {
	meta, ok := e.assets.GetMutable(m.handle)
	if !ok {
		m.failed = true
		e.log.Warn("environment map has no metadata", zap.String("map", m.name))
		return
	}
	if _, err := texture.Reinterpret(meta); err != nil {
		m.failed = true
		e.log.Error("cannot reinterpret environment map", zap.String("map", m.name), zap.Error(err))
		return
	}
	if !meta.IsCube() {
		e.log.Warn("environment map is not a cube", zap.String("map", m.name), zap.Stringer("metadata", meta))
	}
	m.binder.Bind(m.handle)
	m.bound = true
	e.log.Info("environment map loaded",
		zap.String("map", m.name),
		zap.Stringer("metadata", meta),
		zap.Float64("load_seconds", elapsed),
	)
}

// Reload tracks a map again after the asset server started decoding it anew.
// The slot keeps its texture until the new decode completes.
//
// Parameters:
//   - now: elapsed seconds since startup
//   - path: the reloaded asset identifier
//
// Returns:
//   - bool: true if path belongs to one of the maps
func (e *EnvironmentLoader) Reload(now float64, path string) bool {
	found := false
	for _, m := range e.maps {
		if !m.handle.IsValid() || m.handle.Path() != path {
			continue
		}
		m.failed = false
		m.tracker.Begin(m.handle, now)
		e.log.Info("reloading environment map", zap.String("map", m.name), zap.String("path", path))
		found = true
	}
	return found
}

// Loading reports whether any map is still outstanding. It becomes false once every map is
// bound or has failed, which retires the loading indicator.
func (e *EnvironmentLoader) Loading() bool {
	for _, m := range e.maps {
		if !m.bound && !m.failed {
			return true
		}
	}
	return false
}

// Ready reports whether every map is bound.
func (e *EnvironmentLoader) Ready() bool {
	for _, m := range e.maps {
		if !m.bound {
			return false
		}
	}
	return true
}

// Close releases the loader's handles and the references held by the slots.
func (e *EnvironmentLoader) Close() {
	for _, m := range e.maps {
		m.binder.Unbind()
		m.handle.Release()
		m.handle = asset.Handle{}
		m.bound = false
		m.failed = false
	}
}
