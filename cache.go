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

// tierCache holds the classification unions for one arity. Each union is
// the disjunction of the characteristic formulas of the PFAs classified so
// far; they only ever grow.
//
// observable is split into the PFAs proven directly and those proven by
// decomposition, so a cache hit can report the verdict that was originally
// established. observable is always direct ∨ indirect.
//
// This departs from the plain cache short-circuit (classification step 3),
// which answers every observable hit with DirectlyObservable. A hit covered
// by indirect but not by direct reports IndirectlyObservable instead, so a
// PFA classified twice gets the same verdict both times.
type tierCache struct {
	observable   Formula
	direct       Formula
	indirect     Formula
	unobservable Formula
	entries      int
}

// CacheStats contains classification cache performance statistics.
type CacheStats struct {
	Lookups          int
	ObservableHits   int
	UnobservableHits int
	HitRate          float64
	// Entries counts PFAs unioned into a cache, per arity.
	Entries map[int]int
}

// tier returns the cache for arity k, creating it empty on first use.
func (c *Classifier) tier(k int) *tierCache {
	t, ok := c.tiers[k]
	if !ok {
		f := c.oracle.False()
		t = &tierCache{observable: f, direct: f, indirect: f, unobservable: f}
		c.tiers[k] = t
	}
	return t
}

// lookup checks whether f is subsumed by a union of arity k.
func (c *Classifier) lookup(k int, f Formula) (Verdict, bool) {
	t := c.tier(k)
	c.lookups++

	if c.oracle.Implies(f, t.observable) {
		c.observableHits++
		if !c.oracle.Implies(f, t.direct) && c.oracle.Implies(f, t.indirect) {
			return IndirectlyObservable, true
		}
		return DirectlyObservable, true
	}
	if c.oracle.Implies(f, t.unobservable) {
		c.unobservableHits++
		return Unobservable, true
	}
	return Invalid, false
}

// record unions f into the cache of arity k according to verdict.
func (c *Classifier) record(k int, f Formula, verdict Verdict) {
	t := c.tier(k)
	switch verdict {
	case DirectlyObservable:
		t.observable = c.oracle.Or(t.observable, f)
		t.direct = c.oracle.Or(t.direct, f)
	case IndirectlyObservable:
		t.observable = c.oracle.Or(t.observable, f)
		t.indirect = c.oracle.Or(t.indirect, f)
	case Unobservable:
		t.unobservable = c.oracle.Or(t.unobservable, f)
	default:
		return
	}
	t.entries++
}

// CacheStats returns cache performance statistics.
func (c *Classifier) CacheStats() CacheStats {
	stats := CacheStats{
		Lookups:          c.lookups,
		ObservableHits:   c.observableHits,
		UnobservableHits: c.unobservableHits,
		Entries:          make(map[int]int, len(c.tiers)),
	}
	if stats.Lookups > 0 {
		stats.HitRate = float64(stats.ObservableHits+stats.UnobservableHits) / float64(stats.Lookups)
	}
	for k, t := range c.tiers {
		stats.Entries[k] = t.entries
	}
	return stats
}

// ClearCache drops every cached union and resets the statistics. Use it
// between independent runs that share an oracle; never inside a batch.
func (c *Classifier) ClearCache() {
	c.tiers = make(map[int]*tierCache)
	c.lookups = 0
	c.observableHits = 0
	c.unobservableHits = 0
}
