package edm

import (
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// RandomLibs replaces prefix libraries with random subsets of manifold
// rows. Every library row is also a query row. Each library length draws
// from its own PCG stream keyed by (Seed, L), so results do not depend on
// worker scheduling.
type RandomLibs struct {
	Samples int    `yaml:"samples" json:"samples"`
	Seed    uint64 `yaml:"seed" json:"seed"`
}

func (r *RandomLibs) point(m *Manifold, target []float64, l int) (Point, error) {
	e := m.Dim()
	if l > m.Rows() || l-1 < e+1 {
		return Point{}, &LibraryError{L: l, E: e, Wrapped: ErrInsufficientLibrary}
	}

	samples := r.Samples
	if samples < 1 {
		samples = 1
	}

	rng := rand.New(rand.NewPCG(r.Seed, uint64(l)))
	rhos := make([]float64, samples)
	for s := range rhos {
		idx := rng.Perm(m.Rows())[:l]
		slices.Sort(idx)

		d, err := DistanceMatrix(m.subset(idx), l)
		if err != nil {
			return Point{}, err
		}

		est := make([]float64, l)
		obs := make([]float64, l)
		for q := 0; q < l; q++ {
			nb := neighborsFromMatrix(d, q, e)
			for k := range nb {
				nb[k].Index = idx[nb[k].Index]
			}
			est[q] = WeightedEstimate(nb, target)
			obs[q] = target[idx[q]]
		}
		rhos[s] = Pearson(est, obs)
	}

	mean, std := stat.MeanStdDev(rhos, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return Point{L: l, Rho: mean, Spread: std}, nil
}

// subset builds a manifold from the given rows of m, in order.
func (m *Manifold) subset(rows []int) *Manifold {
	data := mat.NewDense(len(rows), m.dim, nil)
	for i, r := range rows {
		data.SetRow(i, m.rawRow(r))
	}
	return &Manifold{data: data, rows: len(rows), dim: m.dim}
}
