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

package fm

import (
	"github.com/contriboss/observe-go"
)

// Compile builds the universe of m in an oracle that declares every
// feature of m.
func Compile(o observe.Oracle, m *Model) (observe.Formula, error) {
	for _, f := range m.Features {
		if _, ok := o.Index(f); !ok {
			return nil, &observe.UnknownFeatureError{Feature: f}
		}
	}
	if m.Tautology {
		return o.True(), nil
	}

	terms := make([]observe.Formula, len(m.Terms))
	for i, term := range m.Terms {
		clauses := make([]observe.Formula, len(term))
		for j, clause := range term {
			groups := make([]observe.Formula, len(clause))
			for k, group := range clause {
				groups[k] = oneHot(o, group)
			}
			clauses[j] = o.Or(groups...)
		}
		terms[i] = o.And(clauses...)
	}
	universe := o.Or(terms...)

	if err := o.Err(); err != nil {
		return nil, err
	}
	return universe, nil
}

// Oracle declares the features of m in a new BDD oracle and compiles its
// universe.
func (m *Model) Oracle(opts ...observe.BDDOption) (*observe.BDDOracle, observe.Formula, error) {
	o, err := observe.NewBDDOracle(m.Features, opts...)
	if err != nil {
		return nil, nil, err
	}
	universe, err := Compile(o, m)
	if err != nil {
		return nil, nil, err
	}
	return o, universe, nil
}

// oneHot holds when exactly one literal of g holds.
func oneHot(o observe.Oracle, g Group) observe.Formula {
	if len(g) == 1 {
		return o.Literal(g[0])
	}
	alternatives := make([]observe.Formula, len(g))
	for i, lit := range g {
		parts := []observe.Formula{o.Literal(lit)}
		for j, other := range g {
			if j != i {
				parts = append(parts, o.Literal(other.Negate()))
			}
		}
		alternatives[i] = o.And(parts...)
	}
	return o.Or(alternatives...)
}
