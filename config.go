package codi

import (
	"github.com/objones25/codi/dataset"
	"github.com/objones25/codi/variability"
)

// Config holds engine configuration. Sources is the only field without
// a usable default.
type Config struct {
	// Sources maps a source id to its reference feature matrix. Every
	// matrix must be non-empty, rectangular, finite, and share one
	// feature dimensionality. Required.
	Sources map[string]dataset.Matrix

	// Kinds optionally overrides the model kind per source id; missing
	// entries fit parametrically.
	Kinds map[string]variability.ModelKind

	// Selection says how each synthetic draw picks its source. The
	// zero value picks uniformly at random among all sources.
	Selection variability.Selection

	// RandomState seeds all randomness for the engine's lifetime. Zero
	// seeds from the wall clock, making every run different.
	RandomState int64

	// SeedCount caps the number of seeds for the random and stratified
	// strategies; <= 0 means the full training-set size.
	SeedCount int

	// Parallelism bounds concurrent per-seed synthesis workers; <= 1
	// runs sequentially. Output is identical at every setting.
	Parallelism int
}

// DefaultConfig returns the default engine configuration. Sources must
// be set by the caller.
func DefaultConfig() Config {
	return Config{
		Selection:   variability.Selection{Mode: variability.SelectRandom},
		RandomState: 0,
		SeedCount:   0,
		Parallelism: 1,
	}
}
