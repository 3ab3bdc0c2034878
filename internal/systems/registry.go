package systems

import (
	"context"
	"fmt"
	"slices"

	"github.com/san-kum/ccm/internal/dynamo"
	"github.com/san-kum/ccm/internal/integrators"
	"github.com/san-kum/ccm/internal/sim"
)

// Spec describes one generated data set.
type Spec struct {
	System     string
	Steps      int
	Transient  int
	Dt         float64
	Integrator string
	Seed       uint64
	Params     map[string]float64
}

// Dataset is a generated trajectory split into named scalar series.
type Dataset struct {
	Names  []string
	Series map[string][]float64
}

type entry struct {
	description string
	vars        []string
	newMap      func(seed uint64) dynamo.Map
	newSystem   func() dynamo.System
}

type Registry struct {
	entries map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]entry)}

	r.entries["coupled"] = entry{
		description: "coupled logistic maps, x forces y",
		vars:        []string{"x", "y"},
		newMap:      func(uint64) dynamo.Map { return NewCoupledLogistic() },
	}
	r.entries["logistic"] = entry{
		description: "chaotic logistic map",
		vars:        []string{"x"},
		newMap:      func(uint64) dynamo.Map { return NewLogistic() },
	}
	r.entries["noise"] = entry{
		description: "two independent white-noise series",
		vars:        []string{"x", "y"},
		newMap:      func(seed uint64) dynamo.Map { return NewNoise(seed) },
	}
	r.entries["sine"] = entry{
		description: "exactly periodic sine",
		vars:        []string{"phase", "x"},
		newMap:      func(uint64) dynamo.Map { return NewPeriodic() },
	}
	r.entries["lorenz"] = entry{
		description: "lorenz attractor",
		vars:        []string{"x", "y", "z"},
		newSystem:   func() dynamo.System { return NewLorenz() },
	}
	r.entries["rossler"] = entry{
		description: "rossler attractor",
		vars:        []string{"x", "y", "z"},
		newSystem:   func() dynamo.System { return NewRossler() },
	}

	return r
}

// List returns the registered system names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) Describe(name string) string {
	return r.entries[name].description
}

// Vars returns the names of the state variables of a system.
func (r *Registry) Vars(name string) ([]string, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", name)
	}
	return slices.Clone(e.vars), nil
}

// Generate runs the system described by spec, drops the transient and
// splits the trajectory into named series.
func (r *Registry) Generate(ctx context.Context, spec Spec) (*Dataset, error) {
	e, ok := r.entries[spec.System]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s (available: %v)", spec.System, r.List())
	}

	var (
		tr  *dynamo.Trajectory
		err error
	)
	steps := spec.Steps + spec.Transient
	if e.newMap != nil {
		m := e.newMap(spec.Seed)
		if err := applyParams(m, spec.Params); err != nil {
			return nil, err
		}
		tr, err = sim.Iterate(ctx, m, m.DefaultState(), steps)
	} else {
		sys := e.newSystem()
		if err := applyParams(sys, spec.Params); err != nil {
			return nil, err
		}
		integ, ok := integrators.ByName(spec.Integrator)
		if !ok {
			return nil, fmt.Errorf("unknown integrator: %s", spec.Integrator)
		}
		dt := spec.Dt
		if dt == 0 {
			dt = 0.01
		}
		tr, err = sim.Integrate(ctx, sys, integ, sys.DefaultState(), dt, steps)
	}
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", spec.System, err)
	}
	tr.Discard(spec.Transient)

	ds := &Dataset{Names: slices.Clone(e.vars), Series: make(map[string][]float64, len(e.vars))}
	for i, name := range e.vars {
		s, err := tr.Series(i)
		if err != nil {
			return nil, err
		}
		ds.Series[name] = s
	}
	return ds, nil
}

func applyParams(target any, params map[string]float64) error {
	if len(params) == 0 {
		return nil
	}
	c, ok := target.(dynamo.Configurable)
	if !ok {
		return fmt.Errorf("system takes no parameters")
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := c.SetParam(k, params[k]); err != nil {
			return err
		}
	}
	return nil
}
