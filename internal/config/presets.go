package config

import (
	"slices"

	"github.com/san-kum/ccm/internal/edm"
)

var Presets = map[string]*Config{
	"fig3a": {
		System: "coupled", Steps: 5000, Source: "x", Target: "y",
		E: 3, Tp: 1, MaxE: 10, MaxTp: 10, Schedule: edm.DefaultSchedule(),
	},
	"noise": {
		System: "noise", Steps: 5000, Seed: 42, Source: "x", Target: "y",
		E: 3, Tp: 1, MaxE: 10, MaxTp: 10, Schedule: edm.DefaultSchedule(),
	},
	"logistic-simplex": {
		System: "logistic", Steps: 1000, Transient: 100, Source: "x", Target: "x",
		E: 2, Tp: 1, Lib: 500, MaxE: 8, MaxTp: 10, Schedule: edm.DefaultSchedule(),
	},
	"sine": {
		System: "sine", Steps: 400, Source: "x", Target: "x",
		E: 3, Tp: 1, MaxE: 6, MaxTp: 10, Schedule: edm.DefaultSchedule(),
		Params: map[string]float64{"period": 7},
	},
	"lorenz": {
		System: "lorenz", Steps: 4000, Transient: 500, Dt: 0.02, Integrator: "rk4",
		Source: "x", Target: "z", E: 3, Tp: 1, MaxE: 6, MaxTp: 10, Schedule: edm.DefaultSchedule(),
	},
	"random-libs": {
		System: "coupled", Steps: 2000, Source: "x", Target: "y",
		E: 3, Tp: 1, MaxE: 10, MaxTp: 10, Schedule: edm.Schedule{Start: 4, Stop: 10, Step: 1},
		Random: &edm.RandomLibs{Samples: 20, Seed: 1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p.clone()
}

func (c *Config) clone() *Config {
	cfg := *c
	cfg.Lengths = slices.Clone(c.Lengths)
	if c.Params != nil {
		cfg.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			cfg.Params[k] = v
		}
	}
	if c.Random != nil {
		r := *c.Random
		cfg.Random = &r
	}
	return &cfg
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
