package edm

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Pearson returns the correlation coefficient of x and y. Inputs with zero
// variance, or fewer than two samples, have no measurable skill and give 0.
func Pearson(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}

func meanAbsError(pred, obs []float64) float64 {
	if len(pred) == 0 {
		return 0
	}
	return floats.Distance(pred, obs, 1) / float64(len(pred))
}

func rootMeanSquare(pred, obs []float64) float64 {
	if len(pred) == 0 {
		return 0
	}
	return floats.Distance(pred, obs, 2) / math.Sqrt(float64(len(pred)))
}
