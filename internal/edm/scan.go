package edm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Point is one library length on a convergence curve.
type Point struct {
	L   int     `json:"l"`
	Rho float64 `json:"rho"`
	// Spread is the standard deviation of rho across random libraries.
	// It is zero for deterministic prefix libraries.
	Spread float64 `json:"spread,omitempty"`
}

// Curve is a convergence curve ordered by ascending L.
type Curve []Point

// Final returns the point with the largest library, or a zero Point.
func (c Curve) Final() Point {
	if len(c) == 0 {
		return Point{}
	}
	return c[len(c)-1]
}

// Rhos returns the correlation column of the curve.
func (c Curve) Rhos() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Rho
	}
	return out
}

// Options scopes one analysis run. The zero value is not usable; E must be set.
type Options struct {
	E int
	// Tp is the forecast horizon used by simplex projection. Cross mapping
	// never shifts the target.
	Tp       int
	Schedule Schedule
	// Lengths overrides Schedule when non-empty.
	Lengths []int
	// Workers bounds concurrent library lengths; <= 0 means GOMAXPROCS.
	Workers int
	// Random switches to stochastic library subsampling.
	Random *RandomLibs
	Logger *slog.Logger
	// Progress is invoked once per finished point, possibly concurrently
	// and in any order.
	Progress func(Point)
	// CrossProgress replaces Progress under CrossMap and names the
	// direction each point belongs to.
	CrossProgress func(Direction, Point)
}

// DefaultOptions returns a deterministic session with the default schedule.
func DefaultOptions(e int) Options {
	return Options{E: e, Tp: 1, Schedule: DefaultSchedule()}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// LibraryLengths resolves the library lengths scanned for a series of
// length n.
func (o Options) LibraryLengths(n int) []int {
	if len(o.Lengths) == 0 {
		sched := o.Schedule
		if sched.Step == 0 {
			sched = DefaultSchedule()
		}
		return sched.Lengths(n, o.E)
	}

	out := make([]int, 0, len(o.Lengths))
	for _, l := range o.Lengths {
		if l < n-o.E {
			out = append(out, l)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// ScanConvergence cross maps target from the manifold of source over the
// default library schedule. A rising curve is evidence that target drives
// source.
func ScanConvergence(source, target []float64, e int) (Curve, error) {
	return ScanConvergenceWith(context.Background(), source, target, DefaultOptions(e))
}

// ScanConvergenceWith is ScanConvergence with an explicit session. Library
// lengths too small for E+1 neighbors are skipped; an invalid dimension
// aborts the scan.
func ScanConvergenceWith(ctx context.Context, source, target []float64, opts Options) (Curve, error) {
	m, err := Embed(source, opts.E)
	if err != nil {
		return nil, err
	}
	if len(target) < m.Rows() {
		return nil, fmt.Errorf("%w: %d < %d", ErrLengthMismatch, len(target), m.Rows())
	}

	point := func(l int) (Point, error) {
		return crossMapPoint(m, target, l)
	}
	if opts.Random != nil {
		point = func(l int) (Point, error) {
			return opts.Random.point(m, target, l)
		}
	}
	return scan(ctx, opts, opts.LibraryLengths(len(source)), point)
}

// scan evaluates every library length on a bounded worker pool and
// reassembles the points in ascending L.
func scan(ctx context.Context, opts Options, lengths []int, point func(int) (Point, error)) (Curve, error) {
	log := opts.logger()
	slots := make([]*Point, len(lengths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, l := range lengths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := point(l)
			if errors.Is(err, ErrInsufficientLibrary) {
				log.Debug("skipping library length", "L", l, "E", opts.E, "err", err)
				return nil
			}
			if err != nil {
				return err
			}
			slots[i] = &p
			if opts.Progress != nil {
				opts.Progress(p)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	curve := make(Curve, 0, len(slots))
	for _, p := range slots {
		if p != nil {
			curve = append(curve, *p)
		}
	}
	return curve, nil
}

// crossMapPoint estimates target at query rows 0..L-E-1 from neighbors in
// the first L rows of m and correlates the estimates with the truth.
func crossMapPoint(m *Manifold, target []float64, l int) (Point, error) {
	e := m.Dim()
	if l > m.Rows() || l-1 < e+1 {
		return Point{}, &LibraryError{L: l, E: e, Wrapped: ErrInsufficientLibrary}
	}

	d, err := DistanceMatrix(m, l)
	if err != nil {
		return Point{}, err
	}

	queries := l - e
	est := make([]float64, queries)
	obs := make([]float64, queries)
	for i := 0; i < queries; i++ {
		est[i] = WeightedEstimate(neighborsFromMatrix(d, i, e), target)
		obs[i] = target[i]
	}
	return Point{L: l, Rho: Pearson(est, obs)}, nil
}
