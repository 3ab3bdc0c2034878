package edm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Manifold is a delay-coordinate reconstruction of a scalar series. Row i
// holds the window series[i : i+E]. It is never mutated after Embed.
type Manifold struct {
	data *mat.Dense
	rows int
	dim  int
}

// Embed builds the (N-E) x E manifold of series. The final sample is left
// out of every row so that each row has a one-step-ahead successor.
func Embed(series []float64, e int) (*Manifold, error) {
	n := len(series)
	if e < 1 || e >= n {
		return nil, fmt.Errorf("%w: E=%d for series of length %d", ErrInvalidDimension, e, n)
	}

	rows := n - e
	data := make([]float64, rows*e)
	for i := 0; i < rows; i++ {
		copy(data[i*e:(i+1)*e], series[i:i+e])
	}

	return &Manifold{
		data: mat.NewDense(rows, e, data),
		rows: rows,
		dim:  e,
	}, nil
}

func (m *Manifold) Rows() int { return m.rows }
func (m *Manifold) Dim() int  { return m.dim }

// Row returns a copy of row i.
func (m *Manifold) Row(i int) []float64 {
	return mat.Row(nil, i, m.data)
}

// Matrix exposes the manifold as a read-only gonum matrix.
func (m *Manifold) Matrix() mat.Matrix {
	return m.data
}

// rawRow aliases the backing storage; callers must not write to it.
func (m *Manifold) rawRow(i int) []float64 {
	return m.data.RawRowView(i)
}

// Slice returns the first n rows as a plain [][]float64, for display.
func (m *Manifold) Slice(n int) [][]float64 {
	if n > m.rows || n < 0 {
		n = m.rows
	}
	out := make([][]float64, n)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}
