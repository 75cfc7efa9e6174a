package dataset

import "errors"

var (
	// ErrEmpty is returned when a matrix has no rows or no features
	ErrEmpty = errors.New("empty matrix")

	// ErrRagged is returned when rows have inconsistent lengths
	ErrRagged = errors.New("ragged matrix")

	// ErrNonFinite is returned when a matrix contains NaN or Inf values
	ErrNonFinite = errors.New("non-finite value in matrix")

	// ErrDimensionMismatch is returned when feature dimensionalities disagree
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
