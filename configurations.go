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

import "fmt"

// UniverseFromConfigurations builds the universe whose models are exactly the
// given configurations. Each row is a total assignment indexed like
// Oracle.Features, as measured configurations usually come from a dataset
// with one column per feature.
//
// This is the simplest way to obtain a universe and is useful for:
//   - Measurement datasets that list every sampled configuration
//   - Tests over small, hand-written configuration spaces
//
// Example:
//
//	oracle, _ := NewBDDOracle(MakeNames("a", "b"))
//	universe, err := UniverseFromConfigurations(oracle, []Model{
//	    {true, false},
//	    {false, true},
//	})
func UniverseFromConfigurations(o Oracle, rows []Model) (Formula, error) {
	features := o.Features()
	universe := o.False()

	for r, row := range rows {
		if len(row) != len(features) {
			return nil, fmt.Errorf("configuration %d has %d values, want %d", r, len(row), len(features))
		}
		lits := make([]Formula, len(features))
		for i, f := range features {
			lits[i] = o.Literal(Literal{Feature: f, Positive: row[i]})
		}
		universe = o.Or(universe, o.And(lits...))
	}

	if err := o.Err(); err != nil {
		return nil, err
	}
	return universe, nil
}
