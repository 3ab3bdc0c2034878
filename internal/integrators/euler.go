package integrators

import "github.com/san-kum/ccm/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}

// ByName returns a fresh integrator for the given name.
func ByName(name string) (dynamo.Integrator, bool) {
	switch name {
	case "rk4", "":
		return NewRK4(), true
	case "euler":
		return NewEuler(), true
	}
	return nil, false
}
