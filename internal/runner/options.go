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

package runner

import (
	"log/slog"

	"github.com/contriboss/observe-go"
	"github.com/contriboss/observe-go/internal/store"
)

// Options configures a Runner.
type Options struct {
	// Tiers lists the PFA arities classified per experiment.
	// Default: 1, 2, 3
	Tiers []int

	// Concurrency bounds the experiments RunAll classifies at once.
	// Each experiment gets its own oracle.
	// Default: 1
	Concurrency int

	// Logger receives progress at info level and classifier diagnostics at
	// debug level. When nil, nothing is logged.
	Logger *slog.Logger

	// Store checkpoints every completed tier when set.
	Store *store.Store

	// Metrics records verdict counts and timings when set.
	Metrics *Metrics

	Classifier []observe.ClassifierOption
	BDD        []observe.BDDOption
}

// Option is a functional option for configuring the runner.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Tiers:       []int{1, 2, 3},
		Concurrency: 1,
	}
}

// WithTiers sets the arities classified per experiment.
func WithTiers(tiers ...int) Option {
	return func(opts *Options) {
		if len(tiers) > 0 {
			opts.Tiers = append([]int(nil), tiers...)
		}
	}
}

// WithConcurrency bounds parallel experiments. Values below 1 mean 1.
func WithConcurrency(n int) Option {
	return func(opts *Options) {
		opts.Concurrency = max(n, 1)
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithStore enables checkpointing.
func WithStore(s *store.Store) Option {
	return func(opts *Options) {
		opts.Store = s
	}
}

// WithMetrics enables metrics.
func WithMetrics(m *Metrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

// WithClassifierOptions passes options to every classifier the runner creates.
func WithClassifierOptions(opts ...observe.ClassifierOption) Option {
	return func(o *Options) {
		o.Classifier = append(o.Classifier, opts...)
	}
}

// WithBDDOptions passes options to every oracle the runner creates.
func WithBDDOptions(opts ...observe.BDDOption) Option {
	return func(o *Options) {
		o.BDD = append(o.BDD, opts...)
	}
}
