// codigen is a command-line front end for the CODI generation engine:
// it reads a labeled training CSV plus one reference CSV per
// variability source, runs one generation pass, and writes the
// synthetic dataset as CSV.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/objones25/codi"
	"github.com/objones25/codi/dataset"
	"github.com/objones25/codi/seed"
	"github.com/objones25/codi/variability"
)

var (
	trainPath   string
	labelColumn string
	sourceSpecs []string
	kindSpecs   []string
	strategy    string
	nPerSeed    int
	randomState int64
	seedCount   int
	parallelism int
	selectMode  string
	selectName  string
	outPath     string
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}

	if err := rootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("codigen failed")
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "codigen",
		Short:        "Synthetic-sample generation for tabular molecular-profiling data",
		SilenceUsage: true,
	}
	root.AddCommand(generateCmd())
	return root
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic samples from a training CSV and reference CSVs",
		RunE:  runGenerate,
	}

	cmd.Flags().StringVar(&trainPath, "train", "", "labeled training CSV (header row required)")
	cmd.Flags().StringVar(&labelColumn, "label", "label", "name of the label column in the training CSV")
	cmd.Flags().StringArrayVar(&sourceSpecs, "source", nil, "variability source as name=reference.csv (repeatable)")
	cmd.Flags().StringArrayVar(&kindSpecs, "kind", nil, "model kind override as name=parametric|empirical|projection (repeatable)")
	cmd.Flags().StringVar(&strategy, "strategy", string(seed.StrategyAll), "seed strategy: random, stratified, all, mean")
	cmd.Flags().IntVar(&nPerSeed, "n-per-seed", 1, "synthetic samples per seed")
	cmd.Flags().Int64Var(&randomState, "random-state", 0, "RNG seed; 0 means non-deterministic")
	cmd.Flags().IntVar(&seedCount, "seed-count", 0, "seed count for random/stratified; 0 means full set size")
	cmd.Flags().IntVar(&parallelism, "parallelism", 1, "concurrent per-seed workers")
	cmd.Flags().StringVar(&selectMode, "select", "random", "source selection per draw: random, explicit, combined")
	cmd.Flags().StringVar(&selectName, "select-source", "", "source name for --select=explicit")
	cmd.Flags().StringVar(&outPath, "out", "", "output CSV path; stdout when empty")

	_ = cmd.MarkFlagRequired("train")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	x, y, features, err := loadTraining(trainPath, labelColumn)
	if err != nil {
		return fmt.Errorf("loading training data: %w", err)
	}

	cfg := codi.DefaultConfig()
	cfg.RandomState = randomState
	cfg.SeedCount = seedCount
	cfg.Parallelism = parallelism

	cfg.Sources = make(map[string]dataset.Matrix, len(sourceSpecs))
	for _, spec := range sourceSpecs {
		name, path, err := splitSpec(spec)
		if err != nil {
			return fmt.Errorf("--source: %w", err)
		}
		ref, err := loadReference(path)
		if err != nil {
			return fmt.Errorf("loading source %q: %w", name, err)
		}
		cfg.Sources[name] = ref
	}

	if len(kindSpecs) > 0 {
		cfg.Kinds = make(map[string]variability.ModelKind, len(kindSpecs))
		for _, spec := range kindSpecs {
			name, kind, err := splitSpec(spec)
			if err != nil {
				return fmt.Errorf("--kind: %w", err)
			}
			cfg.Kinds[name] = variability.ModelKind(kind)
		}
	}

	cfg.Selection, err = parseSelection(selectMode, selectName)
	if err != nil {
		return err
	}

	engine, err := codi.New(cfg)
	if err != nil {
		return err
	}

	xGen, yGen, err := engine.GenerateSamples(x, y, seed.Strategy(strategy), nPerSeed)
	if err != nil {
		return err
	}
	log.Info().
		Int("training_rows", len(x)).
		Int("generated_rows", len(xGen)).
		Str("strategy", strategy).
		Msg("generation complete")

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return writeCSV(out, features, labelColumn, xGen, yGen)
}

func parseSelection(mode, name string) (variability.Selection, error) {
	switch mode {
	case "random":
		return variability.Selection{Mode: variability.SelectRandom}, nil
	case "explicit":
		if name == "" {
			return variability.Selection{}, fmt.Errorf("--select=explicit requires --select-source")
		}
		return variability.Selection{Mode: variability.SelectExplicit, Name: name}, nil
	case "combined":
		return variability.Selection{Mode: variability.SelectCombined}, nil
	default:
		return variability.Selection{}, fmt.Errorf("unknown selection mode %q", mode)
	}
}

func splitSpec(spec string) (string, string, error) {
	name, value, ok := strings.Cut(spec, "=")
	if !ok || name == "" || value == "" {
		return "", "", fmt.Errorf("expected name=value, got %q", spec)
	}
	return name, value, nil
}

// loadTraining reads a CSV with a header row; every column except the
// label column is a numeric feature.
func loadTraining(path, labelCol string) (dataset.Matrix, []string, []string, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, nil, fmt.Errorf("%s: need a header row and at least one data row", path)
	}

	header := records[0]
	labelIdx := -1
	var features []string
	for i, col := range header {
		if col == labelCol {
			labelIdx = i
			continue
		}
		features = append(features, col)
	}
	if labelIdx < 0 {
		return nil, nil, nil, fmt.Errorf("%s: label column %q not found", path, labelCol)
	}

	x := make(dataset.Matrix, 0, len(records)-1)
	y := make([]string, 0, len(records)-1)
	for lineNo, record := range records[1:] {
		row := make([]float64, 0, len(record)-1)
		for i, field := range record {
			if i == labelIdx {
				y = append(y, field)
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("%s: row %d, column %q: %w", path, lineNo+2, header[i], err)
			}
			row = append(row, v)
		}
		x = append(x, row)
	}
	return x, y, features, nil
}

// loadReference reads a CSV with a header row where every column is a
// numeric feature.
func loadReference(path string) (dataset.Matrix, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: need a header row and at least one data row", path)
	}

	ref := make(dataset.Matrix, 0, len(records)-1)
	for lineNo, record := range records[1:] {
		row := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d, column %d: %w", path, lineNo+2, i+1, err)
			}
			row[i] = v
		}
		ref = append(ref, row)
	}
	return ref, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return csv.NewReader(f).ReadAll()
}

func writeCSV(out io.Writer, features []string, labelCol string, x dataset.Matrix, y []string) error {
	w := csv.NewWriter(out)

	header := append(append([]string{}, features...), labelCol)
	if err := w.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for i, row := range x {
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		record[len(record)-1] = y[i]
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
