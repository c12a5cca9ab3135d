// Package config loads the YAML configuration of the cubemap viewer.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/cubemap"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/scene"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error returned from Validate.
var ErrInvalid = errors.New("config: invalid configuration")

// Candidate is the YAML form of a texture.Candidate.
type Candidate struct {
	Path     string `yaml:"path"`
	Requires string `yaml:"requires"`
}

// WindowConfig configures the status window.
type WindowConfig struct {
	Title    string `yaml:"title"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Headless bool   `yaml:"headless"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"`
}

// Config is the complete viewer configuration.
type Config struct {
	AssetRoot     string                     `yaml:"asset_root"`
	WatchAssets   bool                       `yaml:"watch_assets"`
	Workers       int                        `yaml:"workers"`
	TickRate      int                        `yaml:"tick_rate"`
	SwapDelay     float64                    `yaml:"swap_delay"`
	RearmPolicy   string                     `yaml:"rearm_policy"`
	LoadTimeout   float64                    `yaml:"load_timeout"`
	FailurePolicy string                     `yaml:"failure_policy"`
	RetryDelay    float64                    `yaml:"retry_delay"`
	Candidates    []Candidate                `yaml:"candidates"`
	Skybox        scene.SkyboxConfig         `yaml:"skybox"`
	Environment   scene.EnvironmentMapConfig `yaml:"environment_map"`
	Window        WindowConfig               `yaml:"window"`
	Log           LogConfig                  `yaml:"log"`
	Profiling     bool                       `yaml:"profiling"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	candidates := make([]Candidate, 0, len(texture.DefaultCubemapCandidates))
	for _, c := range texture.DefaultCubemapCandidates {
		candidates = append(candidates, Candidate{Path: c.Path, Requires: c.Requires.String()})
	}
	return Config{
		AssetRoot:     "assets",
		Workers:       2,
		TickRate:      60,
		SwapDelay:     cubemap.DefaultSwapDelay,
		RearmPolicy:   cubemap.RearmDelay.String(),
		FailurePolicy: cubemap.FailureAdvance.String(),
		RetryDelay:    cubemap.DefaultRetryDelay,
		Candidates:    candidates,
		Skybox:        scene.DefaultSkyboxConfig(),
		Environment:   scene.DefaultEnvironmentMapConfig(),
		Window: WindowConfig{
			Title:  "oxy-cubemap",
			Width:  1280,
			Height: 720,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Keys missing from the file keep their default values; unknown keys are an error.
//
// Parameters:
//   - path: the YAML file path
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, parsed, or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: error if the document cannot be parsed or validated
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and policy names.
func (c Config) Validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.TickRate < 1 {
		errs = append(errs, fmt.Errorf("tick_rate must be at least 1, got %d", c.TickRate))
	}
	if c.SwapDelay < 0 {
		errs = append(errs, fmt.Errorf("swap_delay must not be negative, got %v", c.SwapDelay))
	}
	if c.LoadTimeout < 0 {
		errs = append(errs, fmt.Errorf("load_timeout must not be negative, got %v", c.LoadTimeout))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("retry_delay must not be negative, got %v", c.RetryDelay))
	}
	if _, err := cubemap.ParseRearmPolicy(c.RearmPolicy); err != nil {
		errs = append(errs, err)
	}
	if _, err := cubemap.ParseFailurePolicy(c.FailurePolicy); err != nil {
		errs = append(errs, err)
	}
	if len(c.Candidates) == 0 {
		errs = append(errs, errors.New("at least one candidate is required"))
	}
	if _, err := c.CandidateTable(); err != nil {
		errs = append(errs, err)
	}
	if !c.Window.Headless && (c.Window.Width < 1 || c.Window.Height < 1) {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// CandidateTable converts the configured candidates into a texture.CandidateTable.
//
// Returns:
//   - texture.CandidateTable: the candidate table
//   - error: error if a candidate has no path or an unknown capability name
func (c Config) CandidateTable() (texture.CandidateTable, error) {
	table := make(texture.CandidateTable, 0, len(c.Candidates))
	for i, cand := range c.Candidates {
		if cand.Path == "" {
			return nil, fmt.Errorf("candidate %d has no path", i)
		}
		req, err := texture.ParseCapability(cand.Requires)
		if err != nil {
			return nil, fmt.Errorf("candidate %d (%s): %w", i, cand.Path, err)
		}
		table = append(table, texture.Candidate{Path: cand.Path, Requires: req})
	}
	return table, nil
}

// ControllerOptions converts the swap and failure settings into controller builder options.
// The configuration must have passed Validate.
func (c Config) ControllerOptions() []cubemap.ControllerBuilderOption {
	table, _ := c.CandidateTable()
	rearm, _ := cubemap.ParseRearmPolicy(c.RearmPolicy)
	failure, _ := cubemap.ParseFailurePolicy(c.FailurePolicy)
	return []cubemap.ControllerBuilderOption{
		cubemap.WithCandidates(table),
		cubemap.WithSwapDelay(c.SwapDelay),
		cubemap.WithRearmPolicy(rearm),
		cubemap.WithLoadTimeout(c.LoadTimeout),
		cubemap.WithFailurePolicy(failure),
		cubemap.WithRetryDelay(c.RetryDelay),
	}
}
