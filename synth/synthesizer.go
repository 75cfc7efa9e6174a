// Package synth combines a seed feature vector with a sampled
// perturbation to produce one synthetic sample.
package synth

import (
	"fmt"
	"math/rand"

	"github.com/objones25/codi/dataset"
	"github.com/objones25/codi/variability"
)

// Synthesize draws one perturbation from the model and adds it to the
// seed vector. The combination rule is additive and fixed; the returned
// label is always the seed's label, since variability is a
// feature-space phenomenon, not a class shift. Purely functional: the
// seed vector is never mutated and the result is a fresh slice.
func Synthesize(seedVec []float64, label string, m variability.Model, rng *rand.Rand) ([]float64, string, error) {
	if len(seedVec) != m.Dim() {
		return nil, "", fmt.Errorf("%w: seed has %d features, model expects %d",
			dataset.ErrDimensionMismatch, len(seedVec), m.Dim())
	}

	p := m.SamplePerturbation(rng)
	out := make([]float64, len(seedVec))
	for j, v := range seedVec {
		out[j] = v + p[j]
	}
	return out, label, nil
}
