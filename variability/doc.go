// Package variability characterizes sources of technical or biological
// variability (batch effects, site effects, instrument drift) from
// reference data into reusable perturbation models.
//
// Each source is a matrix of reference feature vectors. Fitting
// produces a Model that can sample perturbation vectors consistent with
// the source's distribution; three fitting strategies are available:
//
//	m, err := variability.Fit(ref, variability.KindParametric) // per-feature Normal
//	m, err := variability.Fit(ref, variability.KindEmpirical)  // centered row resampling
//	m, err := variability.Fit(ref, variability.KindProjection) // random linear combination
//
// A Registry holds the fitted model for every configured source and
// resolves which model applies to a draw: an explicit source id, a
// uniform-random pick among all sources, or all sources combined.
//
// All randomness flows through caller-supplied *rand.Rand values; the
// package never touches the global generator, so output is reproducible
// given a fixed seed.
package variability
