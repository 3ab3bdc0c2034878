// Package systems provides the generators of the series that the cross
// mapping and simplex tools consume.
//
//   - [CoupledLogistic]: two logistic maps with asymmetric coupling
//   - [Logistic]: a single chaotic logistic map
//   - [Noise]: independent white noise, the no-causality control
//   - [Periodic]: an exactly repeating sine
//   - [Lorenz], [Rossler]: continuous attractors sampled through an integrator
//
// Every generator implements [dynamo.Configurable]. [Registry] maps CLI
// names to generators and splits trajectories into named series.
package systems
