// Package edm implements nearest-neighbor analog prediction on
// delay-coordinate embeddings (empirical dynamic modelling).
//
// The package is organised bottom-up:
//
//   - [Embed]: builds the shadow manifold of a scalar series
//   - [FindNeighbors] and [DistanceMatrix]: library restricted neighbor search
//   - [Weights] and [WeightedEstimate]: exponentially weighted analog estimate
//   - [ScanConvergence]: convergent cross mapping over a library schedule
//   - [Simplex], [EmbeddingSkill], [PredictionDecay]: simplex projection
//
// # Cross mapping
//
// Estimating x from the manifold of y tests whether x drives y: if it does,
// y's history encodes x and the estimate improves as the library grows.
//
//	curve, err := edm.ScanConvergence(y, x, 3)
//	for _, p := range curve {
//	    fmt.Println(p.L, p.Rho)
//	}
//
// All operations are deterministic. The only randomness lives behind
// [RandomLibs], which takes an explicit seed.
package edm
