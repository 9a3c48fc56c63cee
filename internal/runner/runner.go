// Copyright 2024 The University of Queensland
// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package runner evaluates the observability of PFAs over collections of
// feature models and measured subject systems, one experiment at a time or
// several in parallel.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"path/filepath"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/contriboss/observe-go"
	"github.com/contriboss/observe-go/internal/dataset"
	"github.com/contriboss/observe-go/internal/fm"
)

// Result is the outcome of one experiment.
type Result struct {
	Experiment string
	Source     string
	// RunID identifies the checkpoint in the store, if any.
	RunID   string
	Tiers   []observe.TierStats
	Batches []*observe.BatchResult
}

// RealWorld describes a measured subject system: a measurement table that
// gives the universe and a performance-influence model that gives the PFAs.
type RealWorld struct {
	Name         string
	Measurements string
	Model        string
	// Exclude lists measurement columns that are not features.
	Exclude []string
	// ModelExclude lists influence model columns that are not terms.
	ModelExclude []string
	Delimiter    rune
}

// Runner classifies the PFAs of experiments and records their statistics.
type Runner struct {
	opts   Options
	logger *slog.Logger
}

// New creates a runner.
func New(opts ...Option) *Runner {
	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{opts: options, logger: logger}
}

// ExperimentName returns the short name of an experiment: the last element
// of its model path.
func ExperimentName(base string) string {
	return filepath.Base(filepath.FromSlash(base))
}

// Check returns the experiments whose model files are missing.
func (r *Runner) Check(bases []string) []string {
	var missing []string
	for _, base := range bases {
		if !fm.Exists(base) {
			missing = append(missing, base)
		}
	}
	return missing
}

// Run classifies every configured tier of the feature model at base. Tiers
// run in ascending arity on one classifier, so each tier's decompositions
// reuse the verdicts of the tiers before it. A completed tier is
// checkpointed before the next one starts; cancellation is honored between
// tiers.
func (r *Runner) Run(ctx context.Context, base string) (*Result, error) {
	name := ExperimentName(base)
	logger := r.logger.With("experiment", name)

	logger.Info("reading feature model", "source", base)
	model, err := fm.Load(base)
	if err != nil {
		return nil, &ModelError{Source: base, Err: err}
	}
	inner, universe, err := model.Oracle(r.opts.BDD...)
	if err != nil {
		return nil, &ModelError{Source: base, Err: err}
	}

	result := &Result{Experiment: name, Source: base}
	err = r.checkpoint(result, func() error {
		oracle := observe.NewCountingOracle(inner)
		classifier := observe.NewClassifier(oracle, universe, r.classifierOptions(logger)...)
		features := oracle.Features()
		configurations := oracle.Count(universe, len(features))

		for _, t := range sortedTiers(r.opts.Tiers) {
			if err := ctx.Err(); err != nil {
				return err
			}
			batch, err := classifier.ClassifyBatch(observe.Generate(features, t))
			if err != nil {
				return fmt.Errorf("%d-wise tier: %w", t, err)
			}
			batch.Arity = t
			if err := r.record(logger, result, batch, configurations, len(features), oracle); err != nil {
				return err
			}
		}
		logger.Debug("bdd statistics", "stats", inner.Stats())
		return nil
	})
	return result, err
}

// RunAll runs the experiments with bounded concurrency. Results keep the
// order of bases; the first failure cancels the experiments not yet
// started and is returned with the results gathered so far.
func (r *Runner) RunAll(ctx context.Context, bases []string) ([]*Result, error) {
	results := make([]*Result, len(bases))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)
	for i, base := range bases {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := r.Run(gCtx, base)
			results[i] = res
			if err != nil {
				return fmt.Errorf("experiment %s: %w", ExperimentName(base), err)
			}
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

// RunRealWorld classifies the PFAs of a performance-influence model against
// the measured configurations of the same system. PFAs are grouped by
// arity, and every group is classified by a fresh classifier. PFAs that
// mention unmeasured features are counted as rejected.
func (r *Runner) RunRealWorld(ctx context.Context, ex RealWorld) (*Result, error) {
	logger := r.logger.With("experiment", ex.Name)

	logger.Info("reading measurements", "source", ex.Measurements)
	data, err := dataset.LoadConfigurations(ex.Measurements, ex.Exclude, ex.Delimiter)
	if err != nil {
		return nil, &ModelError{Source: ex.Measurements, Err: err}
	}
	pfas, err := dataset.LoadPFAs(ex.Model, ex.ModelExclude, ex.Delimiter)
	if err != nil {
		return nil, &ModelError{Source: ex.Model, Err: err}
	}
	inner, universe, err := data.Oracle(r.opts.BDD...)
	if err != nil {
		return nil, &ModelError{Source: ex.Measurements, Err: err}
	}
	logger.Info("extracted PFAs", "count", len(pfas), "configurations", len(data.Rows), "revision", data.Revision)

	result := &Result{Experiment: ex.Name, Source: ex.Measurements}
	err = r.checkpoint(result, func() error {
		oracle := observe.NewCountingOracle(inner)
		features := oracle.Features()
		configurations := oracle.Count(universe, len(features))

		maxArity := 0
		if len(pfas) > 0 {
			maxArity = pfas[len(pfas)-1].Arity()
		}
		for k := 1; k <= maxArity; k++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			var tier []observe.PFA
			for _, pfa := range pfas {
				if pfa.Arity() == k {
					tier = append(tier, pfa)
				}
			}

			opts := append(r.classifierOptions(logger), observe.WithErrorPolicy(observe.SkipRejected))
			classifier := observe.NewClassifier(oracle, universe, opts...)
			batch, err := classifier.ClassifyBatch(tier)
			if err != nil {
				return fmt.Errorf("%d-wise PFAs: %w", k, err)
			}
			batch.Arity = k
			if err := r.record(logger, result, batch, configurations, len(features), oracle); err != nil {
				return err
			}
		}
		logger.Debug("bdd statistics", "stats", inner.Stats())
		return nil
	})
	return result, err
}

// checkpoint wraps a run in a store run record when a store is configured.
func (r *Runner) checkpoint(result *Result, run func() error) error {
	if r.opts.Store == nil {
		return run()
	}
	rec, err := r.opts.Store.BeginRun(result.Experiment, result.Source)
	if err != nil {
		return &StoreError{Op: "begin run", Err: err}
	}
	result.RunID = rec.ID

	runErr := run()
	if err := r.opts.Store.FinishRun(rec.ID, runErr); err != nil && runErr == nil {
		return &StoreError{Op: "finish run", Err: err}
	}
	return runErr
}

func (r *Runner) record(logger *slog.Logger, result *Result, batch *observe.BatchResult, configurations *big.Int, features int, oracle *observe.CountingOracle) error {
	stats := observe.Summarize(result.Experiment, batch, configurations, features)
	result.Tiers = append(result.Tiers, stats)
	result.Batches = append(result.Batches, batch)

	queries := oracle.Stats()
	oracle.Reset()

	logger.Info("tier classified",
		"arity", stats.Arity,
		"pfas", stats.PFAs,
		"valid", stats.Valid,
		"direct", stats.Direct,
		"indirect", stats.Indirect,
		"unobservable", stats.Unobservable,
		"rejected", stats.Rejected,
		"elapsed", stats.Elapsed,
	)
	logger.Debug("oracle queries", "arity", stats.Arity, "total", queries.Total, "calls", queries.Calls)

	if m := r.opts.Metrics; m != nil {
		m.ObserveTier(stats)
		m.ObserveQueries(result.Experiment, queries)
	}
	if s := r.opts.Store; s != nil && result.RunID != "" {
		if err := s.SaveTier(result.RunID, stats); err != nil {
			return &StoreError{Op: "save tier", Err: err}
		}
	}
	return nil
}

func (r *Runner) classifierOptions(logger *slog.Logger) []observe.ClassifierOption {
	var opts []observe.ClassifierOption
	if r.opts.Logger != nil {
		opts = append(opts, observe.WithLogger(logger))
	}
	return append(opts, r.opts.Classifier...)
}

func sortedTiers(tiers []int) []int {
	out := slices.Clone(tiers)
	slices.Sort(out)
	return slices.Compact(out)
}

// ParseDelimiter converts a one-character delimiter setting to a rune. An
// empty setting selects ';'. "\t" selects a tab.
func ParseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if s == "" {
		return ';', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return runes[0], nil
}
