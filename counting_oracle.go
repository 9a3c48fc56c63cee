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

// CountingOracle wraps an Oracle and counts the queries issued against it.
//
// WHEN TO USE:
// - Measuring how much work the classification caches save
// - Comparing variable orders or universes by query volume
// - Tests asserting that a cache short-circuit avoided oracle work
//
// Features, Index and Err are bookkeeping and are not counted. The wrapper
// always offers Cubes; when the wrapped oracle cannot enumerate cubes they
// are derived from its models.
type CountingOracle struct {
	inner Oracle
	calls map[string]int
}

// NewCountingOracle creates a counting wrapper around the given oracle.
func NewCountingOracle(inner Oracle) *CountingOracle {
	return &CountingOracle{
		inner: inner,
		calls: make(map[string]int),
	}
}

// OracleStats contains oracle query statistics.
type OracleStats struct {
	Calls map[string]int
	Total int
}

// Stats returns the number of queries per operation.
func (o *CountingOracle) Stats() OracleStats {
	stats := OracleStats{Calls: make(map[string]int, len(o.calls))}
	for op, n := range o.calls {
		stats.Calls[op] = n
		stats.Total += n
	}
	return stats
}

// Reset zeroes the counters.
func (o *CountingOracle) Reset() {
	o.calls = make(map[string]int)
}

func (o *CountingOracle) Features() []Name               { return o.inner.Features() }
func (o *CountingOracle) Index(feature Name) (int, bool) { return o.inner.Index(feature) }
func (o *CountingOracle) Err() error                     { return o.inner.Err() }

func (o *CountingOracle) True() Formula {
	o.calls["true"]++
	return o.inner.True()
}

func (o *CountingOracle) False() Formula {
	o.calls["false"]++
	return o.inner.False()
}

func (o *CountingOracle) Literal(lit Literal) Formula {
	o.calls["literal"]++
	return o.inner.Literal(lit)
}

func (o *CountingOracle) Not(f Formula) Formula {
	o.calls["not"]++
	return o.inner.Not(f)
}

func (o *CountingOracle) And(fs ...Formula) Formula {
	o.calls["and"]++
	return o.inner.And(fs...)
}

func (o *CountingOracle) Or(fs ...Formula) Formula {
	o.calls["or"]++
	return o.inner.Or(fs...)
}

func (o *CountingOracle) Xor(a, b Formula) Formula {
	o.calls["xor"]++
	return o.inner.Xor(a, b)
}

func (o *CountingOracle) IsFalse(f Formula) bool {
	o.calls["is_false"]++
	return o.inner.IsFalse(f)
}

func (o *CountingOracle) Implies(a, b Formula) bool {
	o.calls["implies"]++
	return o.inner.Implies(a, b)
}

func (o *CountingOracle) Models(f Formula) iter.Seq[Model] {
	o.calls["models"]++
	return o.inner.Models(f)
}

func (o *CountingOracle) Cubes(f Formula) iter.Seq[Cube] {
	o.calls["cubes"]++
	return cubesOf(o.inner, f)
}

func (o *CountingOracle) Count(f Formula, varCount int) *big.Int {
	o.calls["count"]++
	return o.inner.Count(f, varCount)
}

var (
	_ Oracle         = (*CountingOracle)(nil)
	_ CubeEnumerator = (*CountingOracle)(nil)
)
