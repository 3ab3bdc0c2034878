package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/ccm/internal/dynamo"
)

type halving struct{}

func (h *halving) Next(x dynamo.State) dynamo.State { return dynamo.State{x[0] / 2} }
func (h *halving) StateDim() int                    { return 1 }
func (h *halving) DefaultState() dynamo.State       { return dynamo.State{1} }

type exploding struct{}

func (e *exploding) Next(x dynamo.State) dynamo.State { return dynamo.State{x[0] * 1e300} }
func (e *exploding) StateDim() int                    { return 1 }
func (e *exploding) DefaultState() dynamo.State       { return dynamo.State{1e10} }

type decay struct{}

func (d *decay) Derive(x dynamo.State, t float64) dynamo.State { return dynamo.State{-x[0]} }
func (d *decay) StateDim() int                                 { return 1 }
func (d *decay) DefaultState() dynamo.State                    { return dynamo.State{1} }

type euler struct{}

func (e *euler) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	return dynamo.State{x[0] + dt*dx[0]}
}

func TestIterate(t *testing.T) {
	tr, err := Iterate(context.Background(), &halving{}, dynamo.State{1}, 5)
	if err != nil {
		t.Fatalf("iterate failed: %v", err)
	}

	want := []float64{1, 0.5, 0.25, 0.125, 0.0625}
	got, _ := tr.Series(0)
	if len(got) != len(want) {
		t.Fatalf("expected %d states, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("state %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestIterateUnstable(t *testing.T) {
	_, err := Iterate(context.Background(), &exploding{}, dynamo.State{1e10}, 10)

	var stepErr *dynamo.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %v", err)
	}
	if !errors.Is(err, dynamo.ErrUnstable) {
		t.Errorf("expected ErrUnstable, got %v", err)
	}
	if stepErr.Step != 1 {
		t.Errorf("expected failure at step 1, got %d", stepErr.Step)
	}
}

func TestIterateInvalid(t *testing.T) {
	tests := []struct {
		name  string
		x0    dynamo.State
		steps int
		want  error
	}{
		{"zero steps", dynamo.State{1}, 0, dynamo.ErrInvalidSteps},
		{"negative steps", dynamo.State{1}, -3, dynamo.ErrInvalidSteps},
		{"wrong dimension", dynamo.State{1, 2}, 5, dynamo.ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Iterate(context.Background(), &halving{}, tt.x0, tt.steps)
			if !errors.Is(err, tt.want) {
				t.Errorf("Iterate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestIterateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr, err := Iterate(ctx, &halving{}, dynamo.State{1}, 5000)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if tr.Len() >= 5000 {
		t.Error("iteration did not stop early")
	}
}

func TestIntegrate(t *testing.T) {
	tr, err := Integrate(context.Background(), &decay{}, &euler{}, dynamo.State{1}, 0.1, 11)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if tr.Len() != 11 {
		t.Errorf("expected 11 states, got %d", tr.Len())
	}

	final := tr.States[tr.Len()-1][0]
	if math.Abs(final-math.Exp(-1)) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", math.Exp(-1), final)
	}

	if _, err := Integrate(context.Background(), &decay{}, &euler{}, dynamo.State{1}, 0, 11); err == nil {
		t.Error("expected error for zero dt")
	}
}

func TestTrajectorySeriesAndDiscard(t *testing.T) {
	tr := &dynamo.Trajectory{States: []dynamo.State{{1, 2}, {3, 4}, {5, 6}}}

	if _, err := tr.Series(2); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	tr.Discard(1)
	y, err := tr.Series(1)
	if err != nil {
		t.Fatalf("series failed: %v", err)
	}
	if len(y) != 2 || y[0] != 4 || y[1] != 6 {
		t.Errorf("Series(1) = %v, want [4 6]", y)
	}

	tr.Discard(10)
	if tr.Len() != 0 {
		t.Errorf("expected empty trajectory, got %d states", tr.Len())
	}
}
