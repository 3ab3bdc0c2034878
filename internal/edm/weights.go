package edm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Weights turns ranked neighbors into non-negative weights summing to 1.
// Each weight is exp(-d/d1) where d1 is the nearest distance. When d1 is
// zero the zero-distance neighbors share the weight equally and all others
// get nothing.
func Weights(neighbors []Neighbor) []float64 {
	w := make([]float64, len(neighbors))
	if len(neighbors) == 0 {
		return w
	}

	d1 := neighbors[0].Distance
	if d1 == 0 {
		for k, nb := range neighbors {
			if nb.Distance == 0 {
				w[k] = 1
			}
		}
	} else {
		for k, nb := range neighbors {
			w[k] = math.Exp(-nb.Distance / d1)
		}
	}

	floats.Scale(1/floats.Sum(w), w)
	return w
}

// WeightedEstimate is the weighted average of target at the neighbor
// indices. target must cover every neighbor index.
func WeightedEstimate(neighbors []Neighbor, target []float64) float64 {
	w := Weights(neighbors)
	est := 0.0
	for k, nb := range neighbors {
		est += w[k] * target[nb.Index]
	}
	return est
}
