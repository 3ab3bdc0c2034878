package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/ccm/internal/dynamo"
)

// Iterate runs a discrete map from x0. The returned trajectory holds steps
// states and x0 is the first of them.
func Iterate(ctx context.Context, m dynamo.Map, x0 dynamo.State, steps int) (*dynamo.Trajectory, error) {
	if err := validate(m.StateDim(), x0, steps); err != nil {
		return nil, err
	}

	tr := &dynamo.Trajectory{States: make([]dynamo.State, 0, steps), Dt: 1}
	x := x0.Clone()
	tr.States = append(tr.States, x)

	for i := 1; i < steps; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return tr, err
			}
		}

		x = m.Next(x)
		if !x.IsValid() {
			return tr, &dynamo.StepError{Step: i, State: x, Wrapped: dynamo.ErrUnstable}
		}
		tr.States = append(tr.States, x)
	}
	return tr, nil
}

// Integrate advances a continuous system with integ and samples it every dt.
func Integrate(ctx context.Context, sys dynamo.System, integ dynamo.Integrator, x0 dynamo.State, dt float64, steps int) (*dynamo.Trajectory, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %f", dt)
	}
	if err := validate(sys.StateDim(), x0, steps); err != nil {
		return nil, err
	}

	tr := &dynamo.Trajectory{States: make([]dynamo.State, 0, steps), Dt: dt}
	x := x0.Clone()
	t := 0.0
	tr.States = append(tr.States, x)

	for i := 1; i < steps; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return tr, err
			}
		}

		x = integ.Step(sys, x, t, dt)
		t += dt
		if !x.IsValid() {
			return tr, &dynamo.StepError{Step: i, State: x, Wrapped: dynamo.ErrUnstable}
		}
		tr.States = append(tr.States, x)
	}
	return tr, nil
}

func validate(dim int, x0 dynamo.State, steps int) error {
	if steps < 1 {
		return fmt.Errorf("%w: %d", dynamo.ErrInvalidSteps, steps)
	}
	if len(x0) != dim {
		return fmt.Errorf("%w: state has %d values, system wants %d", dynamo.ErrDimensionMismatch, len(x0), dim)
	}
	return nil
}
