package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Variability model metrics
	ModelFits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codi_model_fits_total",
		Help: "Total number of variability model fits",
	}, []string{"kind"})

	ModelCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codi_model_cache_hits_total",
		Help: "Fitted-model cache hits",
	})

	ModelCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codi_model_cache_misses_total",
		Help: "Fitted-model cache misses",
	})

	// Generation metrics
	GenerateCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codi_generate_calls_total",
		Help: "Total number of generate calls",
	}, []string{"strategy", "status"})

	RowsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codi_rows_generated_total",
		Help: "Total number of synthetic rows generated",
	})

	GenerateLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "codi_generate_latency_seconds",
		Help:    "Latency of generate calls",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	})
)
