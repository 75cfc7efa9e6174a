package variability

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/objones25/codi/dataset"
	"github.com/objones25/codi/internal/monitor"
)

// ModelKind selects the fitting strategy for a variability source.
type ModelKind string

const (
	// KindParametric fits a per-feature Normal from the reference rows.
	// A perturbation draws every feature independently from
	// Normal(mean_j, std_j).
	KindParametric ModelKind = "parametric"

	// KindEmpirical stores the reference rows centered by their column
	// means. A perturbation is a uniformly resampled centered row.
	KindEmpirical ModelKind = "empirical"

	// KindProjection draws a random linear combination of the reference
	// rows with Normal(0, 1/sqrt(m)) coefficients, m the number of
	// rows. Reference rows are expected to be per-feature zero-mean
	// calibration deviations; that contract is the caller's.
	KindProjection ModelKind = "projection"
)

// Model is a fitted perturbation distribution over feature space.
// Implementations are immutable after fitting and safe for concurrent
// sampling as long as each caller supplies its own RNG.
type Model interface {
	// Dim returns the feature dimensionality of the model.
	Dim() int

	// SamplePerturbation draws one perturbation vector of length Dim.
	// All randomness flows through rng; the returned slice is freshly
	// allocated on every call.
	SamplePerturbation(rng *rand.Rand) []float64
}

// Fit fits a model of the given kind to a reference matrix. The
// reference must be non-empty, rectangular and finite.
func Fit(ref dataset.Matrix, kind ModelKind) (Model, error) {
	if err := dataset.Validate(ref); err != nil {
		return nil, fmt.Errorf("invalid reference data: %w", err)
	}

	var m Model
	switch kind {
	case KindParametric, "":
		m = fitParametric(ref)
	case KindEmpirical:
		m = fitEmpirical(ref)
	case KindProjection:
		m = fitProjection(ref)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	monitor.ModelFits.WithLabelValues(string(kind)).Inc()
	return m, nil
}

type parametricModel struct {
	mean []float64
	std  []float64
}

func fitParametric(ref dataset.Matrix) *parametricModel {
	cols := ref.Cols()
	m := &parametricModel{
		mean: make([]float64, cols),
		std:  make([]float64, cols),
	}
	col := make([]float64, ref.Rows())
	for j := 0; j < cols; j++ {
		for i, row := range ref {
			col[i] = row[j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if math.IsNaN(std) {
			// single-row reference: degenerate, zero spread
			std = 0
		}
		m.mean[j] = mean
		m.std[j] = std
	}
	return m
}

func (m *parametricModel) Dim() int {
	return len(m.mean)
}

func (m *parametricModel) SamplePerturbation(rng *rand.Rand) []float64 {
	p := make([]float64, len(m.mean))
	for j := range p {
		p[j] = m.mean[j] + rng.NormFloat64()*m.std[j]
	}
	return p
}

type empiricalModel struct {
	centered dataset.Matrix
}

func fitEmpirical(ref dataset.Matrix) *empiricalModel {
	all := make([]int, ref.Rows())
	for i := range all {
		all[i] = i
	}
	mean := dataset.Mean(ref, all)

	centered := make(dataset.Matrix, ref.Rows())
	for i, row := range ref {
		centered[i] = make([]float64, len(row))
		for j, v := range row {
			centered[i][j] = v - mean[j]
		}
	}
	return &empiricalModel{centered: centered}
}

func (m *empiricalModel) Dim() int {
	return m.centered.Cols()
}

func (m *empiricalModel) SamplePerturbation(rng *rand.Rand) []float64 {
	row := m.centered[rng.Intn(len(m.centered))]
	p := make([]float64, len(row))
	copy(p, row)
	return p
}

type projectionModel struct {
	rows  dataset.Matrix
	scale float64
}

func fitProjection(ref dataset.Matrix) *projectionModel {
	return &projectionModel{
		rows:  ref.Clone(),
		scale: 1 / math.Sqrt(float64(ref.Rows())),
	}
}

func (m *projectionModel) Dim() int {
	return m.rows.Cols()
}

func (m *projectionModel) SamplePerturbation(rng *rand.Rand) []float64 {
	p := make([]float64, m.rows.Cols())
	for _, row := range m.rows {
		c := rng.NormFloat64() * m.scale
		for j, v := range row {
			p[j] += c * v
		}
	}
	return p
}

// compositeModel sums one perturbation from every member model. Used
// for combined source selection.
type compositeModel struct {
	members []Model
}

func (m *compositeModel) Dim() int {
	return m.members[0].Dim()
}

func (m *compositeModel) SamplePerturbation(rng *rand.Rand) []float64 {
	p := make([]float64, m.Dim())
	for _, member := range m.members {
		q := member.SamplePerturbation(rng)
		for j, v := range q {
			p[j] += v
		}
	}
	return p
}
