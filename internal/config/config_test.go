package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/ccm/internal/edm"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.System != "coupled" {
		t.Errorf("expected system coupled, got %s", cfg.System)
	}
	if cfg.E != 3 {
		t.Errorf("expected E 3, got %d", cfg.E)
	}
	if cfg.MaxTp != DefaultMaxTp {
		t.Errorf("expected MaxTp %d, got %d", DefaultMaxTp, cfg.MaxTp)
	}
	if cfg.Schedule != edm.DefaultSchedule() {
		t.Errorf("expected default schedule, got %+v", cfg.Schedule)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fig3a")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Steps != 5000 || cfg.E != 3 {
		t.Errorf("fig3a preset: steps %d E %d", cfg.Steps, cfg.E)
	}

	cfg.E = 9
	if Presets["fig3a"].E != 3 {
		t.Error("GetPreset returned a shared pointer")
	}

	sine := GetPreset("sine")
	sine.Params["period"] = 11
	if Presets["sine"].Params["period"] != 7 {
		t.Error("GetPreset shares the params map")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i] < presets[i-1] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			if err := GetPreset(name).Validate(); err != nil {
				t.Errorf("preset %s invalid: %v", name, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero E", func(c *Config) { c.E = 0 }},
		{"zero Tp", func(c *Config) { c.Tp = 0 }},
		{"too few steps", func(c *Config) { c.Steps = 3 }},
		{"negative transient", func(c *Config) { c.Transient = -1 }},
		{"zero schedule step", func(c *Config) { c.Schedule.Step = 0 }},
		{"reversed schedule", func(c *Config) { c.Schedule = edm.Schedule{Start: 11, Stop: 4, Step: 0.5} }},
		{"zero max E", func(c *Config) { c.MaxE = 0 }},
		{"zero max Tp", func(c *Config) { c.MaxTp = 0 }},
		{"unnamed target", func(c *Config) { c.Target = "" }},
		{"no random samples", func(c *Config) { c.Random = &edm.RandomLibs{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")

	cfg := GetPreset("random-libs")
	cfg.Lengths = []int{20, 40, 80}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.System, loaded.System)
	require.Equal(t, cfg.Lengths, loaded.Lengths)
	require.Equal(t, cfg.Schedule, loaded.Schedule)
	require.NotNil(t, loaded.Random)
	require.Equal(t, *cfg.Random, *loaded.Random)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system: noise\ne: 4\n"), 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "noise", loaded.System)
	require.Equal(t, 4, loaded.E)
	require.Equal(t, DefaultSteps, loaded.Steps)
	require.Equal(t, edm.DefaultSchedule(), loaded.Schedule)
}

func TestLoadReversedSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reversed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schedule:\n  start: 11\n  stop: 4\n  step: 0.5\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	require.NotPanics(t, func() {
		require.Empty(t, cfg.Options().LibraryLengths(5000))
	})
}

func TestLoadOntoPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("e: 4\nparams:\n  phase: 1\n"), 0644))

	base := GetPreset("sine")
	cfg, err := LoadOnto(path, base)
	require.NoError(t, err)
	require.Equal(t, "sine", cfg.System)
	require.Equal(t, 400, cfg.Steps)
	require.Equal(t, 4, cfg.E)
	require.Equal(t, 7.0, cfg.Params["period"])
	require.Equal(t, 1.0, cfg.Params["phase"])

	require.Equal(t, 3, base.E)
	require.NotContains(t, base.Params, "phase")
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestOptionsAndSpec(t *testing.T) {
	cfg := GetPreset("lorenz")
	opts := cfg.Options()
	if opts.E != cfg.E || opts.Schedule != cfg.Schedule {
		t.Errorf("Options() = %+v", opts)
	}
	spec := cfg.Spec()
	if spec.System != "lorenz" || spec.Transient != 500 || spec.Dt != 0.02 {
		t.Errorf("Spec() = %+v", spec)
	}
	if got := cfg.SimplexLib(4000); got != (4000-3)/2 {
		t.Errorf("SimplexLib = %d", got)
	}
}
