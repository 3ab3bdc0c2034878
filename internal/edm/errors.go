package edm

import (
	"errors"
	"fmt"
)

// Domain errors for embedding and neighbor operations.
var (
	// ErrInvalidDimension indicates an embedding dimension below 1 or not
	// smaller than the series length. Analyses cannot recover from it.
	ErrInvalidDimension = errors.New("edm: invalid embedding dimension")

	// ErrInsufficientLibrary indicates a library too small to supply E+1
	// neighbors distinct from the query row.
	ErrInsufficientLibrary = errors.New("edm: library too small for E+1 neighbors")

	// ErrQueryOutOfRange indicates a query row outside the library.
	ErrQueryOutOfRange = errors.New("edm: query row outside library")

	// ErrLengthMismatch indicates a target series shorter than the rows it must cover.
	ErrLengthMismatch = errors.New("edm: target series shorter than manifold")

	// ErrInvalidHorizon indicates a non-positive prediction horizon.
	ErrInvalidHorizon = errors.New("edm: prediction horizon must be positive")

	// ErrNoPredictions indicates that no row remains outside the library
	// with an observed value at the forecast horizon.
	ErrNoPredictions = errors.New("edm: no out-of-sample rows to predict")
)

// LibraryError records the library length and dimension that produced
// ErrInsufficientLibrary.
type LibraryError struct {
	L, E    int
	Wrapped error
}

func (e *LibraryError) Error() string {
	return fmt.Sprintf("library L=%d with E=%d: %v", e.L, e.E, e.Wrapped)
}

func (e *LibraryError) Unwrap() error {
	return e.Wrapped
}
