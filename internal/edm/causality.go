package edm

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DefaultMargin is the rise in rho from the smallest to the largest library
// that counts as convergence.
const DefaultMargin = 0.1

// Result holds both cross mapping directions for a pair of series.
type Result struct {
	// XFromY estimates x from the manifold of y. Convergence means x drives y.
	XFromY Curve `json:"x_from_y"`
	// YFromX estimates y from the manifold of x. Convergence means y drives x.
	YFromX Curve `json:"y_from_x"`
}

// Labeled pairs a curve with the name it is shown under.
type Labeled struct {
	Name  string
	Curve Curve
}

// Curves returns both directions labeled by direction name.
func (r *Result) Curves() []Labeled {
	return []Labeled{
		{Name: string(DirXFromY), Curve: r.XFromY},
		{Name: string(DirYFromX), Curve: r.YFromX},
	}
}

// Direction names one side of a cross mapping.
type Direction string

const (
	DirXFromY Direction = "x_from_y"
	DirYFromX Direction = "y_from_x"
)

// CrossMap scans both directions concurrently with the same session.
func CrossMap(ctx context.Context, x, y []float64, opts Options) (*Result, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: len(x)=%d, len(y)=%d", ErrLengthMismatch, len(x), len(y))
	}

	res := &Result{}
	g, ctx := errgroup.WithContext(ctx)
	direction := func(dir Direction, source, target []float64, dst *Curve) func() error {
		o := opts
		if opts.CrossProgress != nil {
			o.Progress = func(p Point) { opts.CrossProgress(dir, p) }
		}
		o.Logger = opts.logger().With("direction", string(dir))
		return func() error {
			c, err := ScanConvergenceWith(ctx, source, target, o)
			*dst = c
			return err
		}
	}
	g.Go(direction(DirXFromY, y, x, &res.XFromY))
	g.Go(direction(DirYFromX, x, y, &res.YFromX))
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Converged reports whether rho rose by more than margin across the curve
// and ended positive.
func Converged(c Curve, margin float64) bool {
	if len(c) < 2 {
		return false
	}
	first, last := c[0].Rho, c.Final().Rho
	return last > 0 && last-first > margin
}

// Dominant names the direction with the higher final rho: "x->y" when x
// drives y, "y->x" otherwise. Equal skill gives "none".
func (r *Result) Dominant() string {
	a, b := r.XFromY.Final().Rho, r.YFromX.Final().Rho
	switch {
	case a > b:
		return "x->y"
	case b > a:
		return "y->x"
	}
	return "none"
}
