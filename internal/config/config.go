package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ccm/internal/edm"
	"github.com/san-kum/ccm/internal/systems"
)

const (
	DefaultSystem = "coupled"
	DefaultSteps  = 5000
	DefaultE      = 3
	DefaultTp     = 1
	DefaultMaxE   = 10
	DefaultMaxTp  = 10
	DefaultDt     = 0.01
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is one analysis session: where the series come from and how they
// are embedded and scanned.
type Config struct {
	System     string             `yaml:"system"`
	Steps      int                `yaml:"steps"`
	Transient  int                `yaml:"transient"`
	Dt         float64            `yaml:"dt"`
	Integrator string             `yaml:"integrator"`
	Seed       uint64             `yaml:"seed"`
	Params     map[string]float64 `yaml:"params,omitempty"`

	// Input is a CSV file read instead of generating System.
	Input  string `yaml:"input,omitempty"`
	Source string `yaml:"source"`
	Target string `yaml:"target"`

	E        int             `yaml:"e"`
	Tp       int             `yaml:"tp"`
	Lib      int             `yaml:"lib"`
	MaxE     int             `yaml:"max_e"`
	MaxTp    int             `yaml:"max_tp"`
	Schedule edm.Schedule    `yaml:"schedule"`
	Lengths  []int           `yaml:"lengths,omitempty"`
	Workers  int             `yaml:"workers"`
	Random   *edm.RandomLibs `yaml:"random,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		System:     DefaultSystem,
		Steps:      DefaultSteps,
		Dt:         DefaultDt,
		Integrator: "rk4",
		Source:     "x",
		Target:     "y",
		E:          DefaultE,
		Tp:         DefaultTp,
		MaxE:       DefaultMaxE,
		MaxTp:      DefaultMaxTp,
		Schedule:   edm.DefaultSchedule(),
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads the file at path over base. Keys absent from the file keep
// base's values; base itself is not modified.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.E < 1:
		return fmt.Errorf("%w: e must be at least 1, got %d", ErrInvalidConfig, c.E)
	case c.Tp < 1:
		return fmt.Errorf("%w: tp must be at least 1, got %d", ErrInvalidConfig, c.Tp)
	case c.Input == "" && c.Steps <= c.E:
		return fmt.Errorf("%w: steps %d too few for e=%d", ErrInvalidConfig, c.Steps, c.E)
	case c.Transient < 0:
		return fmt.Errorf("%w: transient must not be negative", ErrInvalidConfig)
	case c.MaxE < 1:
		return fmt.Errorf("%w: max_e must be at least 1, got %d", ErrInvalidConfig, c.MaxE)
	case c.MaxTp < 1:
		return fmt.Errorf("%w: max_tp must be at least 1, got %d", ErrInvalidConfig, c.MaxTp)
	case len(c.Lengths) == 0 && c.Schedule.Step <= 0:
		return fmt.Errorf("%w: schedule step must be positive", ErrInvalidConfig)
	case len(c.Lengths) == 0 && c.Schedule.Stop < c.Schedule.Start:
		return fmt.Errorf("%w: schedule stop %g before start %g", ErrInvalidConfig, c.Schedule.Stop, c.Schedule.Start)
	case c.Source == "" || c.Target == "":
		return fmt.Errorf("%w: source and target must be named", ErrInvalidConfig)
	case c.Random != nil && c.Random.Samples < 1:
		return fmt.Errorf("%w: random.samples must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// Options builds the edm session for this configuration.
func (c *Config) Options() edm.Options {
	return edm.Options{
		E:        c.E,
		Tp:       c.Tp,
		Schedule: c.Schedule,
		Lengths:  c.Lengths,
		Workers:  c.Workers,
		Random:   c.Random,
	}
}

// Spec describes the generator run for this configuration.
func (c *Config) Spec() systems.Spec {
	return systems.Spec{
		System:     c.System,
		Steps:      c.Steps,
		Transient:  c.Transient,
		Dt:         c.Dt,
		Integrator: c.Integrator,
		Seed:       c.Seed,
		Params:     c.Params,
	}
}

// SimplexLib returns the simplex library size, defaulting to half the
// embedded rows.
func (c *Config) SimplexLib(n int) int {
	if c.Lib > 0 {
		return c.Lib
	}
	return (n - c.E) / 2
}
