package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Map is a discrete-time system x[t] = f(x[t-1]).
type Map interface {
	Next(x State) State
	StateDim() int
	DefaultState() State
}

// System is a continuous-time system dx/dt = f(x, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
	DefaultState() State
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Trajectory is a sequence of states sampled at a fixed step.
type Trajectory struct {
	States []State
	Dt     float64
}

func (tr *Trajectory) Len() int { return len(tr.States) }

// Series extracts state variable i as a scalar time series.
func (tr *Trajectory) Series(i int) ([]float64, error) {
	out := make([]float64, len(tr.States))
	for k, s := range tr.States {
		if i < 0 || i >= len(s) {
			return nil, fmt.Errorf("%w: variable %d of %d", ErrDimensionMismatch, i, len(s))
		}
		out[k] = s[i]
	}
	return out, nil
}

// Discard drops the first n states, typically a transient.
func (tr *Trajectory) Discard(n int) {
	if n <= 0 {
		return
	}
	if n > len(tr.States) {
		n = len(tr.States)
	}
	tr.States = tr.States[n:]
}
