// Package dataset defines the row-major feature matrix shared by all
// CODI packages, together with the validation and per-class helpers the
// generation pipeline relies on.
package dataset

import (
	"fmt"
	"math"
	"sort"
)

// Matrix is a row-major feature matrix: one row per sample, one column
// per feature. All rows must have the same length and every value must
// be finite; Validate enforces both.
type Matrix [][]float64

// Rows returns the number of samples in the matrix.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the feature dimensionality, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Clone returns a deep copy of the matrix.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

// Validate checks that the matrix is non-empty, rectangular, has at
// least one feature, and contains only finite values.
func Validate(m Matrix) error {
	if len(m) == 0 {
		return ErrEmpty
	}
	cols := len(m[0])
	if cols == 0 {
		return fmt.Errorf("%w: row 0 has no features", ErrEmpty)
	}
	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrRagged, i, len(row), cols)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: value at row %d, column %d", ErrNonFinite, i, j)
			}
		}
	}
	return nil
}

// Classes returns the distinct labels in y, sorted.
func Classes(y []string) []string {
	seen := make(map[string]struct{}, len(y))
	var classes []string
	for _, label := range y {
		if _, ok := seen[label]; !ok {
			seen[label] = struct{}{}
			classes = append(classes, label)
		}
	}
	sort.Strings(classes)
	return classes
}

// ClassIndex partitions row indices by label, preserving row order
// within each class.
func ClassIndex(y []string) map[string][]int {
	idx := make(map[string][]int)
	for i, label := range y {
		idx[label] = append(idx[label], i)
	}
	return idx
}

// Mean returns the per-feature mean of the given rows. It panics if
// rows is empty; callers partition from validated input.
func Mean(m Matrix, rows []int) []float64 {
	mean := make([]float64, m.Cols())
	for _, r := range rows {
		for j, v := range m[r] {
			mean[j] += v
		}
	}
	n := float64(len(rows))
	for j := range mean {
		mean[j] /= n
	}
	return mean
}
