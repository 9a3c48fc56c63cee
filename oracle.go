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

import (
	"iter"
	"math/big"
)

// Formula is an opaque handle to a boolean function owned by an Oracle.
// Handles are immutable and share structure; a handle must only be passed
// back to the Oracle that produced it.
type Formula any

// Model is a total truth assignment, indexed by the position of each
// feature in Oracle.Features.
type Model []bool

// Cube is a partial truth assignment indexed like Model. Each entry is
// CubeFalse, CubeTrue or CubeDontCare; a cube stands for every Model that
// agrees with its fixed entries.
type Cube []int8

// Cube entry values.
const (
	CubeDontCare int8 = -1
	CubeFalse    int8 = 0
	CubeTrue     int8 = 1
)

// Oracle is the boolean-formula algebra consumed by the classifier.
// All features are declared when the Oracle is created. Operations are pure
// over immutable formula handles.
//
// Engine failures (for example node table exhaustion) are sticky: once an
// operation fails, Err returns a non-nil error and the results of later
// operations are meaningless.
type Oracle interface {
	// Features returns the declared features in declaration order.
	Features() []Name

	// Index returns the position of a declared feature.
	Index(feature Name) (int, bool)

	// True and False return the constant functions.
	True() Formula
	False() Formula

	// Literal returns the function of a single literal over a declared feature.
	Literal(lit Literal) Formula

	Not(f Formula) Formula
	And(fs ...Formula) Formula
	Or(fs ...Formula) Formula
	Xor(a, b Formula) Formula

	// IsFalse reports whether f is unsatisfiable.
	IsFalse(f Formula) bool

	// Implies reports whether every model of a is a model of b.
	Implies(a, b Formula) bool

	// Models returns the total assignments satisfying f. The sequence is
	// finite and deterministic; each call restarts the enumeration.
	Models(f Formula) iter.Seq[Model]

	// Count returns the number of satisfying assignments of f over
	// varCount variables.
	Count(f Formula, varCount int) *big.Int

	// Err returns the first engine failure, if any.
	Err() error
}

// CubeEnumerator is an optional Oracle capability. Cubes yields partial
// assignments whose expansions are exactly the models of f, which lets
// callers reason about don't-care variables without enumerating every
// completion.
type CubeEnumerator interface {
	Cubes(f Formula) iter.Seq[Cube]
}

// cubesOf enumerates f as cubes, falling back to total models (a total
// model is a cube without don't-cares) when the oracle cannot.
func cubesOf(o Oracle, f Formula) iter.Seq[Cube] {
	if ce, ok := o.(CubeEnumerator); ok {
		return ce.Cubes(f)
	}
	return func(yield func(Cube) bool) {
		for m := range o.Models(f) {
			if !yield(m.Cube()) {
				return
			}
		}
	}
}

// Cube converts a total model into a cube without don't-cares.
func (m Model) Cube() Cube {
	c := make(Cube, len(m))
	for i, v := range m {
		if v {
			c[i] = CubeTrue
		}
	}
	return c
}

// Expand yields every total model covered by the cube.
func (c Cube) Expand() iter.Seq[Model] {
	return func(yield func(Model) bool) {
		var free []int
		for i, v := range c {
			if v == CubeDontCare {
				free = append(free, i)
			}
		}
		m := make(Model, len(c))
		for i, v := range c {
			m[i] = v == CubeTrue
		}
		var walk func(j int) bool
		walk = func(j int) bool {
			if j == len(free) {
				return yield(append(Model(nil), m...))
			}
			for _, v := range [2]bool{false, true} {
				m[free[j]] = v
				if !walk(j + 1) {
					return false
				}
			}
			return true
		}
		walk(0)
	}
}
