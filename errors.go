package codi

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when engine construction is given
	// malformed or dimensionally-inconsistent variability sources
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidArgument is returned for bad generate arguments: a
	// non-positive per-seed count or a training matrix whose
	// dimensionality disagrees with the fitted sources
	ErrInvalidArgument = errors.New("invalid argument")
)

// GenerationError ties a failure to the pipeline stage that raised it,
// so callers see which operation broke without unwrapping by hand.
type GenerationError struct {
	Op      string // engine operation, e.g. "generate_samples"
	Err     error  // cause, reachable through errors.Is/As
	Context string // optional detail such as the seed strategy
}

func (e *GenerationError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Context)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError wraps err with the operation name and optional
// context detail.
func NewGenerationError(op string, err error, context string) error {
	return &GenerationError{Op: op, Err: err, Context: context}
}

// IsConfiguration reports whether err stems from engine construction.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsInvalidArgument reports whether err stems from bad generate
// arguments.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
