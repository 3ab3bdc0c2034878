// Package dynamo provides the primitives used to generate input series.
//
//   - [State]: vector representing system state
//   - [Map]: discrete-time system such as the coupled logistic map
//   - [System]: continuous-time ODE system, advanced by an [Integrator]
//   - [Trajectory]: sampled states, from which scalar series are extracted
//
// # Example
//
//	m := systems.NewCoupledLogistic()
//	tr, _ := sim.Iterate(ctx, m, m.DefaultState(), 5000)
//	x, _ := tr.Series(0)
//	y, _ := tr.Series(1)
package dynamo
