package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	table, err := cfg.CandidateTable()
	require.NoError(t, err)
	assert.Equal(t, texture.DefaultCubemapCandidates, table)
	assert.Len(t, cfg.ControllerOptions(), 6)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
asset_root: /srv/assets
watch_assets: true
swap_delay: 1.5
rearm_policy: immediate
load_timeout: 10
failure_policy: hold
retry_delay: 2.5
candidates:
  - path: sky.png
  - path: sky_bc7.ktx2
    requires: bc
  - path: sky_both.ktx2
    requires: ASTC|ETC2
window:
  headless: true
log:
  development: true
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, "/srv/assets", cfg.AssetRoot)
	assert.True(t, cfg.WatchAssets)
	assert.Equal(t, 1.5, cfg.SwapDelay)
	assert.Equal(t, "immediate", cfg.RearmPolicy)
	assert.Equal(t, "hold", cfg.FailurePolicy)
	assert.Equal(t, 2.5, cfg.RetryDelay)
	assert.True(t, cfg.Window.Headless)
	assert.Equal(t, 1280, cfg.Window.Width, "unset keys keep defaults")
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, "debug", cfg.Log.Level)

	table, err := cfg.CandidateTable()
	require.NoError(t, err)
	assert.Equal(t, texture.CandidateTable{
		{Path: "sky.png", Requires: texture.CapabilityNone},
		{Path: "sky_bc7.ktx2", Requires: texture.CapabilityBC},
		{Path: "sky_both.ktx2", Requires: texture.CapabilityASTC | texture.CapabilityETC2},
	}, table)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"negative delay", "swap_delay: -1"},
		{"negative retry delay", "retry_delay: -0.5"},
		{"zero workers", "workers: 0"},
		{"unknown rearm policy", "rearm_policy: later"},
		{"unknown failure policy", "failure_policy: explode"},
		{"unknown capability", "candidates: [{path: a.ktx2, requires: PVRTC}]"},
		{"missing path", "candidates: [{requires: BC}]"},
		{"empty table", "candidates: []"},
		{"bad window", "window: {width: 0}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse([]byte("swap_dely: 2"))
	assert.Error(t, err, "unknown keys are rejected")
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cubemap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 30\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TickRate)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
