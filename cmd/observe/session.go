package main

import (
	"errors"
	"fmt"

	"github.com/contriboss/observe-go"
	"github.com/contriboss/observe-go/internal/cli"
	"github.com/contriboss/observe-go/internal/runner"
	"github.com/contriboss/observe-go/internal/store"
)

// session bundles a runner with the store and metrics it writes to.
type session struct {
	runner  *runner.Runner
	store   *store.Store
	metrics *runner.Metrics
}

// openSession builds a runner from the loaded configuration.
func openSession(tiers []int) (*session, error) {
	s := &session{}
	opts := []runner.Option{
		runner.WithTiers(tiers...),
		runner.WithConcurrency(cfg.Concurrency),
		runner.WithLogger(logger),
		runner.WithClassifierOptions(observe.WithMaxPartitions(cfg.MaxPartitions)),
		runner.WithBDDOptions(bddOptions()...),
	}

	if cfg.Store.Path != "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, cli.StoreError("opening store", err)
		}
		s.store = st
		opts = append(opts, runner.WithStore(st))
	}
	if cfg.Metrics.Textfile != "" {
		s.metrics = runner.NewMetrics()
		opts = append(opts, runner.WithMetrics(s.metrics))
	}

	s.runner = runner.New(opts...)
	return s, nil
}

// bddOptions sizes every oracle from the bdd config section.
func bddOptions() []observe.BDDOption {
	return []observe.BDDOption{
		observe.WithNodeSize(cfg.BDD.NodeSize),
		observe.WithCacheSize(cfg.BDD.CacheSize),
	}
}

// Close writes the metrics textfile and closes the store.
func (s *session) Close() error {
	var errs []error
	if s.metrics != nil {
		if err := s.metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			errs = append(errs, fmt.Errorf("writing metrics: %w", err))
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, cli.StoreError("closing store", err))
		}
	}
	return errors.Join(errs...)
}

// runError maps a runner failure to an exit code.
func runError(err error) error {
	var modelErr *runner.ModelError
	var storeErr *runner.StoreError
	switch {
	case errors.As(err, &modelErr):
		return cli.ModelParseError("loading model", err)
	case errors.As(err, &storeErr):
		return cli.StoreError("checkpointing", err)
	default:
		return cli.GeneralError("classification failed", err)
	}
}
