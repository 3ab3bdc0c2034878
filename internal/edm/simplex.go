package edm

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Skill summarises forecast accuracy for one (E, Tp) pair.
type Skill struct {
	E    int     `json:"e"`
	Tp   int     `json:"tp"`
	Rho  float64 `json:"rho"`
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
}

// Forecast holds out-of-sample simplex predictions aligned with the
// observations they target.
type Forecast struct {
	Skill
	Lib       int       `json:"lib"`
	Predicted []float64 `json:"predicted"`
	Observed  []float64 `json:"observed"`
}

// horizon returns the manifold of the rows of series that have an observed
// value tp steps past their window, and the target aligned with those rows.
func horizon(series []float64, e, tp int) (*Manifold, []float64, error) {
	if tp < 1 {
		return nil, nil, fmt.Errorf("%w: Tp=%d", ErrInvalidHorizon, tp)
	}
	if e < 1 || tp-1 >= len(series) {
		return nil, nil, fmt.Errorf("%w: E=%d for series of length %d", ErrInvalidDimension, e, len(series))
	}
	m, err := Embed(series[:len(series)-tp+1], e)
	if err != nil {
		return nil, nil, err
	}
	return m, series[e-1+tp:], nil
}

// Simplex forecasts series tp steps ahead of every window outside the
// first lib rows, using neighbors drawn from those lib rows only.
func Simplex(series []float64, e, lib, tp int) (*Forecast, error) {
	m, target, err := horizon(series, e, tp)
	if err != nil {
		return nil, err
	}
	if lib < e+1 || lib > m.Rows() {
		return nil, &LibraryError{L: lib, E: e, Wrapped: ErrInsufficientLibrary}
	}
	if lib == m.Rows() {
		return nil, fmt.Errorf("%w: library %d covers all rows", ErrNoPredictions, lib)
	}

	n := m.Rows() - lib
	f := &Forecast{
		Skill:     Skill{E: e, Tp: tp},
		Lib:       lib,
		Predicted: make([]float64, n),
		Observed:  make([]float64, n),
	}
	dist := make([]float64, lib+1)
	for k := 0; k < n; k++ {
		q := m.rawRow(lib + k)
		for j := 0; j < lib; j++ {
			dist[j] = floats.Distance(q, m.rawRow(j), 2)
		}
		// Slot lib stands in for the query so rankNeighbors drops it.
		f.Predicted[k] = WeightedEstimate(rankNeighbors(dist, lib, e+1), target)
		f.Observed[k] = target[lib+k]
	}

	f.Rho = Pearson(f.Predicted, f.Observed)
	f.MAE = meanAbsError(f.Predicted, f.Observed)
	f.RMSE = rootMeanSquare(f.Predicted, f.Observed)
	return f, nil
}

// SimplexScan is the self-forecast analogue of ScanConvergenceWith: each
// library row is predicted opts.Tp steps ahead from the other rows of the
// same library.
func SimplexScan(ctx context.Context, series []float64, opts Options) (Curve, error) {
	tp := opts.Tp
	if tp == 0 {
		tp = 1
	}
	m, target, err := horizon(series, opts.E, tp)
	if err != nil {
		return nil, err
	}

	lengths := opts.LibraryLengths(len(series) - tp + 1)
	return scan(ctx, opts, lengths, func(l int) (Point, error) {
		return crossMapPoint(m, target, l)
	})
}

// EmbeddingSkill runs Simplex for E = 1..maxE with a fixed library and horizon.
func EmbeddingSkill(series []float64, maxE, lib, tp int) ([]Skill, error) {
	out := make([]Skill, 0, maxE)
	for e := 1; e <= maxE; e++ {
		f, err := Simplex(series, e, lib, tp)
		if err != nil {
			return nil, fmt.Errorf("E=%d: %w", e, err)
		}
		out = append(out, f.Skill)
	}
	return out, nil
}

// BestEmbedding returns the E with the highest rho, preferring the smaller
// E on ties. It returns 0 for an empty slice.
func BestEmbedding(skills []Skill) int {
	best := -1
	for i, s := range skills {
		if best < 0 || s.Rho > skills[best].Rho {
			best = i
		}
	}
	if best < 0 {
		return 0
	}
	return skills[best].E
}

// PredictionDecay runs Simplex for Tp = 1..maxTp at a fixed E and library.
// Forecast skill of a chaotic series falls off with the horizon.
func PredictionDecay(series []float64, e, lib, maxTp int) ([]Skill, error) {
	out := make([]Skill, 0, maxTp)
	for tp := 1; tp <= maxTp; tp++ {
		f, err := Simplex(series, e, lib, tp)
		if err != nil {
			return nil, fmt.Errorf("Tp=%d: %w", tp, err)
		}
		out = append(out, f.Skill)
	}
	return out, nil
}
