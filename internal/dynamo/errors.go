package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for series generation.
var (
	// ErrUnstable indicates the trajectory diverged (NaN or Inf detected).
	ErrUnstable = errors.New("dynamo: trajectory unstable (state diverged)")

	// ErrUnknownParam indicates a parameter name the system does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrDimensionMismatch indicates mismatched state dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrInvalidSteps indicates a non-positive number of steps.
	ErrInvalidSteps = errors.New("dynamo: step count must be positive")
)

// StepError wraps an error with the step at which it occurred.
type StepError struct {
	Step    int
	State   State
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
