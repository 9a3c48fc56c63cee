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

package observe

import "log/slog"

// ErrorPolicy decides what ClassifyBatch does with a PFA that is rejected
// before any oracle query (an InvalidAssignmentError or UnknownFeatureError).
// Oracle failures always abort the batch.
type ErrorPolicy int

const (
	// AbortOnError stops the batch at the first rejected PFA.
	AbortOnError ErrorPolicy = iota
	// SkipRejected records rejected PFAs in BatchResult.Rejected and carries on.
	SkipRejected
)

// ClassifierOptions configures the behavior of the classifier.
//
// Options control:
//   - Debug logging of cache hits, direct tests and decompositions
//   - A budget on the partitions explored per decomposition
//   - How batches treat malformed assignments
type ClassifierOptions struct {
	// Logger enables debug logging of classifier operations.
	// When nil, no logging is performed.
	Logger *slog.Logger

	// MaxPartitions limits the partitions tried by a single decomposition
	// search. Set to 0 to disable the limit.
	// Default: 0
	MaxPartitions int

	// ErrorPolicy controls how ClassifyBatch handles rejected assignments.
	// Default: AbortOnError
	ErrorPolicy ErrorPolicy
}

// ClassifierOption is a functional option for configuring the classifier.
type ClassifierOption func(*ClassifierOptions)

// defaultClassifierOptions returns the default classifier configuration.
func defaultClassifierOptions() ClassifierOptions {
	return ClassifierOptions{
		MaxPartitions: 0,
		ErrorPolicy:   AbortOnError,
	}
}

// WithLogger sets a structured logger for classifier diagnostics.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	classifier := NewClassifier(oracle, universe, WithLogger(logger))
func WithLogger(logger *slog.Logger) ClassifierOption {
	return func(opts *ClassifierOptions) {
		opts.Logger = logger
	}
}

// WithMaxPartitions bounds the partitions explored when searching for a
// decomposition. Use 0 to disable the limit.
//
// Bell(t) grows quickly (Bell(6) = 203, Bell(10) = 115975); the limit is a
// guard for PFAs extracted from large influence models.
func WithMaxPartitions(limit int) ClassifierOption {
	return func(opts *ClassifierOptions) {
		if limit <= 0 {
			opts.MaxPartitions = 0
		} else {
			opts.MaxPartitions = limit
		}
	}
}

// WithErrorPolicy sets how ClassifyBatch handles rejected assignments.
func WithErrorPolicy(policy ErrorPolicy) ClassifierOption {
	return func(opts *ClassifierOptions) {
		opts.ErrorPolicy = policy
	}
}
