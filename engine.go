package codi

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/objones25/codi/dataset"
	"github.com/objones25/codi/internal/monitor"
	"github.com/objones25/codi/seed"
	"github.com/objones25/codi/synth"
	"github.com/objones25/codi/variability"
)

// Engine orchestrates synthetic-sample generation. It owns the master
// RNG and the fitted variability registry; construction fits every
// source eagerly, so a returned Engine is always usable.
//
// The master RNG advances monotonically across GenerateSamples calls.
// An Engine is not safe for concurrent GenerateSamples calls without
// external synchronization, since reproducibility depends on a single
// linear consumption order of the master stream.
type Engine struct {
	cfg      Config
	registry *variability.Registry
	rng      *rand.Rand
	logger   zerolog.Logger
}

// New validates the configuration, fits one model per variability
// source and seeds the master RNG. A RandomState of zero seeds from the
// wall clock; any other value makes the engine fully deterministic.
func New(cfg Config) (*Engine, error) {
	if cfg.Parallelism < 0 {
		return nil, fmt.Errorf("%w: negative parallelism %d", ErrConfiguration, cfg.Parallelism)
	}

	registry, err := variability.NewRegistry(cfg.Sources, cfg.Kinds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if cfg.Selection.Mode == variability.SelectExplicit {
		if _, err := registry.Resolve(cfg.Selection, nil); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}

	state := cfg.RandomState
	if state == 0 {
		state = time.Now().UnixNano()
	}

	e := &Engine{
		cfg:      cfg,
		registry: registry,
		rng:      rand.New(rand.NewSource(state)),
		logger:   log.With().Str("component", "codi").Logger(),
	}
	e.logger.Debug().
		Int("sources", len(registry.Names())).
		Int("dimension", registry.Dim()).
		Bool("deterministic", cfg.RandomState != 0).
		Msg("engine ready")
	return e, nil
}

// Dim returns the feature dimensionality the engine was fitted for.
func (e *Engine) Dim() int {
	return e.registry.Dim()
}

// Sources returns the registered variability source ids, sorted.
func (e *Engine) Sources() []string {
	return e.registry.Names()
}

// GenerateSamples synthesizes nPerSeed samples for every seed the
// strategy selects from (x, y) and returns them seed-major, draw-minor.
// The source for each synthetic draw is resolved independently per draw
// according to Config.Selection.
//
// Each selected seed gets its own RNG sub-stream derived from the
// master RNG, so the output bytes are identical at every Parallelism
// setting. x and y are read-only inputs and are never retained.
func (e *Engine) GenerateSamples(x dataset.Matrix, y []string, strategy seed.Strategy, nPerSeed int) (dataset.Matrix, []string, error) {
	start := time.Now()

	xGen, yGen, err := e.generate(x, y, strategy, nPerSeed)
	if err != nil {
		monitor.GenerateCalls.WithLabelValues(string(strategy), "error").Inc()
		return nil, nil, NewGenerationError("generate_samples", err, string(strategy))
	}

	monitor.GenerateCalls.WithLabelValues(string(strategy), "success").Inc()
	monitor.RowsGenerated.Add(float64(len(xGen)))
	monitor.GenerateLatency.Observe(time.Since(start).Seconds())
	e.logger.Debug().
		Str("strategy", string(strategy)).
		Int("n_per_seed", nPerSeed).
		Int("rows", len(xGen)).
		Dur("elapsed", time.Since(start)).
		Msg("generated samples")
	return xGen, yGen, nil
}

func (e *Engine) generate(x dataset.Matrix, y []string, strategy seed.Strategy, nPerSeed int) (dataset.Matrix, []string, error) {
	if nPerSeed < 1 {
		return nil, nil, fmt.Errorf("%w: n_per_seed must be positive, got %d", ErrInvalidArgument, nPerSeed)
	}
	if err := dataset.Validate(x); err != nil {
		if errors.Is(err, dataset.ErrEmpty) {
			return nil, nil, fmt.Errorf("%w: %w", seed.ErrEmptyInput, err)
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if x.Cols() != e.registry.Dim() {
		return nil, nil, fmt.Errorf("%w: training data has %d features, sources were fitted with %d",
			ErrInvalidArgument, x.Cols(), e.registry.Dim())
	}

	seeds, err := seed.Select(x, y, strategy, e.cfg.SeedCount, e.rng)
	if err != nil {
		return nil, nil, err
	}

	// One sub-stream per seed, drawn in seed order from the master RNG.
	// Synthesis then only consumes sub-streams, which keeps the output
	// independent of how the per-seed work is scheduled.
	subSeeds := make([]int64, len(seeds))
	for i := range subSeeds {
		subSeeds[i] = e.rng.Int63()
	}

	xGen := make(dataset.Matrix, len(seeds)*nPerSeed)
	yGen := make([]string, len(seeds)*nPerSeed)

	synthesizeSeed := func(i int) error {
		srng := rand.New(rand.NewSource(subSeeds[i]))
		base := i * nPerSeed
		for k := 0; k < nPerSeed; k++ {
			model, err := e.registry.Resolve(e.cfg.Selection, srng)
			if err != nil {
				return err
			}
			vec, label, err := synth.Synthesize(seeds[i].Vector, seeds[i].Label, model, srng)
			if err != nil {
				return err
			}
			xGen[base+k] = vec
			yGen[base+k] = label
		}
		return nil
	}

	if e.cfg.Parallelism > 1 {
		var g errgroup.Group
		g.SetLimit(e.cfg.Parallelism)
		for i := range seeds {
			i := i
			g.Go(func() error { return synthesizeSeed(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
	} else {
		for i := range seeds {
			if err := synthesizeSeed(i); err != nil {
				return nil, nil, err
			}
		}
	}

	return xGen, yGen, nil
}
