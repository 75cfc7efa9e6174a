package variability

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objones25/codi/dataset"
)

func testSources() map[string]dataset.Matrix {
	return map[string]dataset.Matrix{
		"batch":  {{1, 0}, {-1, 0}},
		"site":   {{0, 1}, {0, -1}},
		"signal": {{2, 2}, {-2, -2}},
	}
}

func TestNewRegistry(t *testing.T) {
	t.Run("fits all sources", func(t *testing.T) {
		r, err := NewRegistry(testSources(), nil)
		require.NoError(t, err)
		assert.Equal(t, 2, r.Dim())
		assert.Equal(t, []string{"batch", "signal", "site"}, r.Names())
		assert.True(t, r.Has("batch"))
		assert.False(t, r.Has("plate"))
	})

	t.Run("no sources", func(t *testing.T) {
		_, err := NewRegistry(nil, nil)
		assert.ErrorIs(t, err, ErrNoSources)
	})

	t.Run("inconsistent dimensions", func(t *testing.T) {
		sources := map[string]dataset.Matrix{
			"a": {{1, 2}},
			"b": {{1, 2, 3}},
		}
		_, err := NewRegistry(sources, nil)
		assert.ErrorIs(t, err, dataset.ErrDimensionMismatch)
	})

	t.Run("invalid source data", func(t *testing.T) {
		sources := map[string]dataset.Matrix{"a": {}}
		_, err := NewRegistry(sources, nil)
		assert.ErrorIs(t, err, dataset.ErrEmpty)
	})

	t.Run("per-source kinds", func(t *testing.T) {
		kinds := map[string]ModelKind{"batch": KindEmpirical}
		r, err := NewRegistry(testSources(), kinds)
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(1))
		m, err := r.Resolve(Selection{Mode: SelectExplicit, Name: "batch"}, rng)
		require.NoError(t, err)
		assert.IsType(t, &empiricalModel{}, m)
	})
}

func TestResolve(t *testing.T) {
	r, err := NewRegistry(testSources(), nil)
	require.NoError(t, err)

	t.Run("explicit", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		m, err := r.Resolve(Selection{Mode: SelectExplicit, Name: "site"}, rng)
		require.NoError(t, err)
		assert.Equal(t, 2, m.Dim())
	})

	t.Run("explicit unknown", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		_, err := r.Resolve(Selection{Mode: SelectExplicit, Name: "plate"}, rng)
		assert.ErrorIs(t, err, ErrUnknownSource)
	})

	t.Run("random is reproducible", func(t *testing.T) {
		a := rand.New(rand.NewSource(5))
		b := rand.New(rand.NewSource(5))
		for i := 0; i < 20; i++ {
			ma, err := r.Resolve(Selection{Mode: SelectRandom}, a)
			require.NoError(t, err)
			mb, err := r.Resolve(Selection{Mode: SelectRandom}, b)
			require.NoError(t, err)
			assert.Same(t, ma, mb)
		}
	})

	t.Run("combined sums all sources", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		m, err := r.Resolve(Selection{Mode: SelectCombined}, rng)
		require.NoError(t, err)
		assert.Equal(t, 2, m.Dim())

		p := m.SamplePerturbation(rng)
		require.Len(t, p, 2)
	})
}

func TestFitCached(t *testing.T) {
	ref := dataset.Matrix{{7, 8}, {9, 10}}

	a, err := fitCached(ref, KindParametric)
	require.NoError(t, err)
	b, err := fitCached(ref.Clone(), KindParametric)
	require.NoError(t, err)
	assert.Same(t, a, b)

	// Different kind, different entry.
	c, err := fitCached(ref, KindEmpirical)
	require.NoError(t, err)
	assert.NotSame(t, a, c)

	// Default kind normalizes to parametric.
	d, err := fitCached(ref, "")
	require.NoError(t, err)
	assert.Same(t, a, d)
}

func TestFingerprint(t *testing.T) {
	a := dataset.Matrix{{1, 2}, {3, 4}}
	b := dataset.Matrix{{1, 2}, {3, 4}}
	c := dataset.Matrix{{1, 2}, {3, 5}}

	assert.Equal(t, Fingerprint(a, KindParametric), Fingerprint(b, KindParametric))
	assert.NotEqual(t, Fingerprint(a, KindParametric), Fingerprint(c, KindParametric))
	assert.NotEqual(t, Fingerprint(a, KindParametric), Fingerprint(a, KindEmpirical))

	// Shape participates, not just values.
	flat := dataset.Matrix{{1, 2, 3, 4}}
	assert.NotEqual(t, Fingerprint(a, KindParametric), Fingerprint(flat, KindParametric))
}
