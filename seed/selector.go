// Package seed selects the training rows that act as synthesis bases
// for one generation call.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/objones25/codi/dataset"
)

// Strategy names a seed-selection policy.
type Strategy string

const (
	// StrategyRandom draws seeds uniformly with replacement from the
	// full training set.
	StrategyRandom Strategy = "random"

	// StrategyStratified draws class-balanced seeds: each class gets a
	// largest-remainder share of the requested count and seeds are
	// drawn uniformly within class. Whenever the count is at least the
	// number of classes, every class receives at least one seed.
	StrategyStratified Strategy = "stratified"

	// StrategyAll uses every training row exactly once, in input order.
	StrategyAll Strategy = "all"

	// StrategyMean uses the per-class mean vector as the single seed of
	// each class, classes in sorted label order.
	StrategyMean Strategy = "mean"
)

// Seed is one synthesis basis. For the index-based strategies Vector
// aliases the training row (no copy) and Index is the row number. For
// StrategyMean, Vector is a freshly computed class centroid and Index
// is -1.
type Seed struct {
	Index  int
	Vector []float64
	Label  string
}

// Select returns the ordered seeds for one generation call. count caps
// the number of seeds for the random and stratified strategies; count
// <= 0 means the full training-set size. StrategyAll and StrategyMean
// ignore both count and rng.
func Select(x dataset.Matrix, y []string, strategy Strategy, count int, rng *rand.Rand) ([]Seed, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("%w: no training samples", ErrEmptyInput)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d feature rows but %d labels", ErrEmptyInput, len(x), len(y))
	}
	if count <= 0 {
		count = len(x)
	}

	switch strategy {
	case StrategyRandom:
		return selectRandom(x, y, count, rng), nil
	case StrategyStratified:
		return selectStratified(x, y, count, rng), nil
	case StrategyAll:
		return selectAll(x, y), nil
	case StrategyMean:
		return selectMean(x, y), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

func selectRandom(x dataset.Matrix, y []string, count int, rng *rand.Rand) []Seed {
	seeds := make([]Seed, count)
	for i := range seeds {
		idx := rng.Intn(len(x))
		seeds[i] = Seed{Index: idx, Vector: x[idx], Label: y[idx]}
	}
	return seeds
}

func selectStratified(x dataset.Matrix, y []string, count int, rng *rand.Rand) []Seed {
	classes := dataset.Classes(y)
	byClass := dataset.ClassIndex(y)
	quotas := apportion(classes, byClass, len(y), count)

	seeds := make([]Seed, 0, count)
	for i, class := range classes {
		rows := byClass[class]
		for k := 0; k < quotas[i]; k++ {
			idx := rows[rng.Intn(len(rows))]
			seeds = append(seeds, Seed{Index: idx, Vector: x[idx], Label: y[idx]})
		}
	}
	return seeds
}

// apportion splits count across classes in proportion to class size
// using the largest-remainder method. Deterministic: floors first, then
// leftovers to the largest fractional remainders, ties broken by sorted
// class order. When count allows, every class keeps at least one seed;
// the surplus comes out of the largest quotas. With count below the
// number of classes only the largest-share classes receive seeds.
func apportion(classes []string, byClass map[string][]int, total, count int) []int {
	quotas := make([]int, len(classes))
	rems := make([]float64, len(classes))
	assigned := 0
	for i, class := range classes {
		exact := float64(count) * float64(len(byClass[class])) / float64(total)
		quotas[i] = int(math.Floor(exact))
		rems[i] = exact - float64(quotas[i])
		assigned += quotas[i]
	}

	order := make([]int, len(classes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rems[order[a]] > rems[order[b]]
	})
	for k := 0; k < count-assigned; k++ {
		quotas[order[k]]++
	}

	if count >= len(classes) {
		for i := range quotas {
			if quotas[i] > 0 {
				continue
			}
			// A zero quota means some other class holds at least 2.
			donor := 0
			for j := range quotas {
				if quotas[j] > quotas[donor] {
					donor = j
				}
			}
			quotas[donor]--
			quotas[i] = 1
		}
	}
	return quotas
}

func selectAll(x dataset.Matrix, y []string) []Seed {
	seeds := make([]Seed, len(x))
	for i := range x {
		seeds[i] = Seed{Index: i, Vector: x[i], Label: y[i]}
	}
	return seeds
}

func selectMean(x dataset.Matrix, y []string) []Seed {
	classes := dataset.Classes(y)
	byClass := dataset.ClassIndex(y)

	seeds := make([]Seed, len(classes))
	for i, class := range classes {
		seeds[i] = Seed{Index: -1, Vector: dataset.Mean(x, byClass[class]), Label: class}
	}
	return seeds
}
