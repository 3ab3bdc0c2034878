package edm

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Neighbor is a library row ranked by its distance to a query row.
type Neighbor struct {
	Index    int
	Distance float64
}

// DistanceMatrix returns the symmetric lib x lib matrix of Euclidean
// distances between the first lib rows of m. The diagonal is zero.
func DistanceMatrix(m *Manifold, lib int) (*mat.SymDense, error) {
	if lib < 1 || lib > m.rows {
		return nil, &LibraryError{L: lib, E: m.dim, Wrapped: ErrInsufficientLibrary}
	}

	d := mat.NewSymDense(lib, nil)
	for i := 0; i < lib; i++ {
		ri := m.rawRow(i)
		for j := i + 1; j < lib; j++ {
			d.SetSym(i, j, floats.Distance(ri, m.rawRow(j), 2))
		}
	}
	return d, nil
}

// FindNeighbors ranks the first lib rows of m by distance to row query and
// returns the e+1 nearest, excluding the query row itself. Ties are broken
// by ascending row index.
func FindNeighbors(m *Manifold, lib, query, e int) ([]Neighbor, error) {
	if err := checkLibrary(m, lib, query, e); err != nil {
		return nil, err
	}

	q := m.rawRow(query)
	dist := make([]float64, lib)
	for j := 0; j < lib; j++ {
		if j != query {
			dist[j] = floats.Distance(q, m.rawRow(j), 2)
		}
	}
	return rankNeighbors(dist, query, e+1), nil
}

// neighborsFromMatrix is FindNeighbors reading distances from a
// precomputed DistanceMatrix.
func neighborsFromMatrix(d *mat.SymDense, query, e int) []Neighbor {
	lib := d.SymmetricDim()
	dist := make([]float64, lib)
	for j := 0; j < lib; j++ {
		dist[j] = d.At(query, j)
	}
	return rankNeighbors(dist, query, e+1)
}

func checkLibrary(m *Manifold, lib, query, e int) error {
	if e < 1 {
		return fmt.Errorf("%w: E=%d", ErrInvalidDimension, e)
	}
	if lib > m.rows || lib-1 < e+1 {
		return &LibraryError{L: lib, E: e, Wrapped: ErrInsufficientLibrary}
	}
	if query < 0 || query >= lib {
		return fmt.Errorf("%w: row %d, library %d", ErrQueryOutOfRange, query, lib)
	}
	return nil
}

// rankNeighbors sorts candidate rows by (distance, index) and keeps the
// first k that are not the query. The self match is removed by index, so an
// exact duplicate of the query is kept as a genuine neighbor.
func rankNeighbors(dist []float64, query, k int) []Neighbor {
	cand := make([]Neighbor, 0, len(dist)-1)
	for j, v := range dist {
		if j == query {
			continue
		}
		cand = append(cand, Neighbor{Index: j, Distance: v})
	}

	slices.SortStableFunc(cand, func(a, b Neighbor) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return a.Index - b.Index
	})

	if k > len(cand) {
		k = len(cand)
	}
	return cand[:k:k]
}
