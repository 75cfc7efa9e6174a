package variability

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objones25/codi/dataset"
)

func TestFitValidation(t *testing.T) {
	t.Run("empty reference", func(t *testing.T) {
		_, err := Fit(dataset.Matrix{}, KindParametric)
		assert.ErrorIs(t, err, dataset.ErrEmpty)
	})

	t.Run("ragged reference", func(t *testing.T) {
		_, err := Fit(dataset.Matrix{{1, 2}, {3}}, KindParametric)
		assert.ErrorIs(t, err, dataset.ErrRagged)
	})

	t.Run("non-finite reference", func(t *testing.T) {
		_, err := Fit(dataset.Matrix{{1, math.NaN()}}, KindEmpirical)
		assert.ErrorIs(t, err, dataset.ErrNonFinite)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := Fit(dataset.Matrix{{1}}, ModelKind("bogus"))
		assert.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("empty kind defaults to parametric", func(t *testing.T) {
		m, err := Fit(dataset.Matrix{{1, 2}}, "")
		require.NoError(t, err)
		assert.IsType(t, &parametricModel{}, m)
	})
}

func TestParametricModel(t *testing.T) {
	ref := dataset.Matrix{
		{0, 10},
		{2, 10},
		{4, 10},
	}
	m, err := Fit(ref, KindParametric)
	require.NoError(t, err)
	require.Equal(t, 2, m.Dim())

	pm := m.(*parametricModel)
	assert.InDelta(t, 2.0, pm.mean[0], 1e-12)
	assert.InDelta(t, 2.0, pm.std[0], 1e-12) // sample std of {0,2,4}
	assert.InDelta(t, 10.0, pm.mean[1], 1e-12)
	assert.InDelta(t, 0.0, pm.std[1], 1e-12)

	// Zero-spread feature always reproduces its mean.
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		p := m.SamplePerturbation(rng)
		require.Len(t, p, 2)
		assert.InDelta(t, 10.0, p[1], 1e-12)
	}
}

func TestParametricSingleRow(t *testing.T) {
	m, err := Fit(dataset.Matrix{{3, -1}}, KindParametric)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	p := m.SamplePerturbation(rng)
	assert.Equal(t, []float64{3, -1}, p)
}

func TestEmpiricalModel(t *testing.T) {
	ref := dataset.Matrix{
		{1, 0},
		{3, 0},
	}
	m, err := Fit(ref, KindEmpirical)
	require.NoError(t, err)

	// Centered rows are {-1,0} and {1,0}; every draw must be one of them.
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		p := m.SamplePerturbation(rng)
		require.Len(t, p, 2)
		assert.InDelta(t, 1.0, math.Abs(p[0]), 1e-12)
		assert.Equal(t, 0.0, p[1])
	}
}

func TestEmpiricalSampleIsCopy(t *testing.T) {
	m, err := Fit(dataset.Matrix{{1, 2}}, KindEmpirical)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	p := m.SamplePerturbation(rng)
	p[0] = 99
	q := m.SamplePerturbation(rng)
	assert.Equal(t, 0.0, q[0]) // single centered row is all zeros
}

func TestProjectionModel(t *testing.T) {
	t.Run("zero reference is a no-op", func(t *testing.T) {
		ref := dataset.Matrix{{0, 0, 0}, {0, 0, 0}}
		m, err := Fit(ref, KindProjection)
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(3))
		p := m.SamplePerturbation(rng)
		assert.Equal(t, []float64{0, 0, 0}, p)
	})

	t.Run("spans the reference rows", func(t *testing.T) {
		ref := dataset.Matrix{{1, 0}, {-1, 0}}
		m, err := Fit(ref, KindProjection)
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 50; i++ {
			p := m.SamplePerturbation(rng)
			assert.Equal(t, 0.0, p[1]) // second feature never perturbed
		}
	})

	t.Run("does not alias the reference", func(t *testing.T) {
		ref := dataset.Matrix{{1, 2}}
		m, err := Fit(ref, KindProjection)
		require.NoError(t, err)
		ref[0][0] = 1000

		rng := rand.New(rand.NewSource(3))
		p := m.SamplePerturbation(rng)
		assert.Less(t, math.Abs(p[0]), 100.0)
	})
}

func TestSamplingDeterminism(t *testing.T) {
	ref := dataset.Matrix{{1, 2}, {3, 4}, {5, 6}}
	for _, kind := range []ModelKind{KindParametric, KindEmpirical, KindProjection} {
		t.Run(string(kind), func(t *testing.T) {
			m, err := Fit(ref, kind)
			require.NoError(t, err)

			a := rand.New(rand.NewSource(99))
			b := rand.New(rand.NewSource(99))
			for i := 0; i < 10; i++ {
				assert.Equal(t, m.SamplePerturbation(a), m.SamplePerturbation(b))
			}
		})
	}
}
