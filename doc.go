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

// Package observe classifies partial feature assignments (PFAs) of a
// configurable system by observability.
//
// A feature model defines the valid configurations of a product line as a
// boolean formula over its features, the Universe. A PFA such as
// "compression & !encryption" is observable when its effect can be isolated:
// flipping exactly those features while every other feature stays fixed
// moves between two valid configurations (direct), or the PFA splits into
// smaller assignments that are each observable (indirect). This underlies
// t-wise sampling and performance-influence modelling, where only observable
// option combinations can be attributed an effect.
//
// The package provides:
//   - Oracle, the boolean algebra the classifier consumes, and BDDOracle,
//     its binary decision diagram implementation
//   - Generate, the t-wise PFA generator
//   - Partitions, a lazy enumerator of set partitions
//   - Classifier, the observability decision procedure with per-arity caches
//
// A typical run:
//
//	oracle, _ := observe.NewBDDOracle(features)
//	universe := buildUniverse(oracle)
//	classifier := observe.NewClassifier(oracle, universe)
//	for t := 1; t <= 3; t++ {
//	    result, err := classifier.ClassifyBatch(observe.Generate(oracle.Features(), t))
//	    ...
//	}
package observe
