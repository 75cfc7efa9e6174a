// Package codi generates synthetic labeled samples for tabular
// molecular-profiling datasets by combining seed rows from a training
// set with perturbations drawn from fitted models of characterized
// variability sources (batch effects, site effects, instrument drift).
//
// Basic usage:
//
//	cfg := codi.DefaultConfig()
//	cfg.Sources = map[string]dataset.Matrix{"batch": batchRef}
//	cfg.RandomState = 42
//
//	engine, err := codi.New(cfg)
//	if err != nil {
//		log.Fatal().Err(err).Msg("engine setup failed")
//	}
//
//	xGen, yGen, err := engine.GenerateSamples(x, y, seed.StrategyAll, 10)
//
// For a fixed RandomState the output is byte-for-byte reproducible,
// independent of the Parallelism setting. RandomState zero seeds from
// the wall clock and each run differs.
package codi
