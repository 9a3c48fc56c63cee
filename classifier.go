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
	"errors"
)

// Classifier decides the observability of partial feature assignments
// against a Universe formula.
//
// A PFA is directly observable when some valid configuration satisfying it
// and some valid configuration satisfying its switched form (every literal
// negated) agree on every feature outside its support. Otherwise it is
// indirectly observable when it can be split into blocks that are each
// observable on their own.
//
// The classifier keeps, per arity, the union of every PFA already found
// observable or unobservable, and answers later PFAs implied by a union
// without further work. Those caches accumulate for the lifetime of the
// classifier, so batches must run in ascending arity order: decompositions
// of arity-k PFAs consult the results of smaller arities.
//
// Basic usage:
//
//	oracle, _ := NewBDDOracle(MakeNames("a", "b", "c"))
//	universe := oracle.Or(oracle.Literal(NewNegativeLiteral(MakeName("a"))), oracle.Literal(NewLiteral(MakeName("b"))))
//
//	classifier := NewClassifier(oracle, universe)
//	verdict, err := classifier.Classify(NewPFA(NewLiteral(MakeName("a"))))
//
// A Classifier is not safe for concurrent use: every Classify reads and
// updates the caches left by the previous one.
type Classifier struct {
	oracle   Oracle
	universe Formula
	options  ClassifierOptions

	tiers            map[int]*tierCache
	lookups          int
	observableHits   int
	unobservableHits int
}

// NewClassifier creates a classifier over a ready oracle and universe.
// The oracle and universe stay owned by the caller.
func NewClassifier(oracle Oracle, universe Formula, opts ...ClassifierOption) *Classifier {
	options := defaultClassifierOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	return &Classifier{
		oracle:   oracle,
		universe: universe,
		options:  options,
		tiers:    make(map[int]*tierCache),
	}
}

// Configure applies options to an existing classifier.
func (c *Classifier) Configure(opts ...ClassifierOption) *Classifier {
	for _, opt := range opts {
		if opt != nil {
			opt(&c.options)
		}
	}
	return c
}

func (c *Classifier) debug(msg string, args ...any) {
	if logger := c.options.Logger; logger != nil {
		logger.Debug(msg, args...)
	}
}

// Classify returns the verdict for pfa and records it in the cache of its
// arity. Malformed assignments are rejected before any oracle query with an
// InvalidAssignmentError, UnknownFeatureError or ErrEmptyAssignment; engine
// failures surface as *OracleError. No verdict is recorded on error.
func (c *Classifier) Classify(pfa PFA) (Verdict, error) {
	if err := c.Validate(pfa); err != nil {
		return Invalid, err
	}

	verdict, err := c.classify(pfa, 0)
	if err != nil {
		return Invalid, err
	}
	c.debug("classified", "pfa", pfa, "verdict", verdict)
	return verdict, nil
}

// Validate checks pfa against the declared features without querying the
// oracle's algebra.
func (c *Classifier) Validate(pfa PFA) error {
	if len(pfa) == 0 {
		return ErrEmptyAssignment
	}
	if err := pfa.Validate(); err != nil {
		return err
	}
	for _, lit := range pfa {
		if _, ok := c.oracle.Index(lit.Feature); !ok {
			return &UnknownFeatureError{Feature: lit.Feature}
		}
	}
	return nil
}

func (c *Classifier) classify(pfa PFA, depth int) (Verdict, error) {
	k := len(pfa)
	f := c.conjunction(pfa)

	if c.oracle.IsFalse(c.oracle.And(c.universe, f)) {
		return Invalid, c.failed("validity")
	}

	if verdict, hit := c.lookup(k, f); hit {
		c.debug("cache hit", "pfa", pfa, "verdict", verdict, "depth", depth)
		return verdict, c.failed("subsumption")
	}

	direct, err := c.directlyObservable(pfa, f)
	if err != nil {
		return Invalid, err
	}
	if direct {
		c.record(k, f, DirectlyObservable)
		return DirectlyObservable, c.failed("record")
	}

	if k > 1 {
		indirect, err := c.decompose(pfa, depth)
		if err != nil {
			return Invalid, err
		}
		if indirect {
			c.record(k, f, IndirectlyObservable)
			return IndirectlyObservable, c.failed("record")
		}
	}

	c.record(k, f, Unobservable)
	return Unobservable, c.failed("record")
}

// directlyObservable searches for a witness of pfa and a witness of its
// switched form that agree on every feature outside the support.
func (c *Classifier) directlyObservable(pfa PFA, f Formula) (bool, error) {
	witnesses := c.oracle.And(c.universe, f)
	counterWitnesses := c.oracle.And(c.universe, c.conjunction(pfa.Switch()))
	if c.oracle.IsFalse(counterWitnesses) {
		c.debug("no counterfactual witness", "pfa", pfa)
		return false, c.failed("direct")
	}

	inSupport := make([]bool, len(c.oracle.Features()))
	for _, lit := range pfa {
		i, _ := c.oracle.Index(lit.Feature)
		inSupport[i] = true
	}

	found := false
search:
	for w := range cubesOf(c.oracle, witnesses) {
		for cw := range cubesOf(c.oracle, counterWitnesses) {
			if agreeOutside(w, cw, inSupport) {
				found = true
				break search
			}
		}
	}
	if err := c.failed("direct"); err != nil {
		return false, err
	}
	c.debug("direct test", "pfa", pfa, "observable", found)
	return found, nil
}

// agreeOutside reports whether two cubes have a common completion on every
// variable not in the support: no variable outside it is fixed to different
// values.
func agreeOutside(a, b Cube, inSupport []bool) bool {
	for i := range a {
		if inSupport[i] {
			continue
		}
		if a[i] != CubeDontCare && b[i] != CubeDontCare && a[i] != b[i] {
			return false
		}
	}
	return true
}

// decompose tries the set partitions of pfa in enumeration order and stops
// at the first one whose blocks are all observable. The single-block
// partition is pfa itself and is skipped.
func (c *Classifier) decompose(pfa PFA, depth int) (bool, error) {
	tried := 0
	for blocks := range Partitions(len(pfa)) {
		if len(blocks) == 1 {
			continue
		}
		tried++
		if limit := c.options.MaxPartitions; limit > 0 && tried > limit {
			return false, ErrPartitionLimit{Limit: limit}
		}

		ok, err := c.allObservable(pfa, blocks, depth)
		if err != nil {
			return false, err
		}
		if ok {
			c.debug("decomposed", "pfa", pfa, "blocks", blocks, "partitions_tried", tried)
			return true, nil
		}
	}
	c.debug("no decomposition", "pfa", pfa, "partitions_tried", tried)
	return false, nil
}

func (c *Classifier) allObservable(pfa PFA, blocks [][]int, depth int) (bool, error) {
	for _, block := range blocks {
		verdict, err := c.classify(pfa.Pick(block), depth+1)
		if err != nil {
			return false, err
		}
		if !verdict.IsObservable() {
			return false, nil
		}
	}
	return true, nil
}

func (c *Classifier) conjunction(pfa PFA) Formula {
	lits := make([]Formula, len(pfa))
	for i, lit := range pfa {
		lits[i] = c.oracle.Literal(lit)
	}
	return c.oracle.And(lits...)
}

// failed converts a recorded engine failure into an *OracleError.
func (c *Classifier) failed(op string) error {
	err := c.oracle.Err()
	if err == nil {
		return nil
	}
	var oracleErr *OracleError
	if errors.As(err, &oracleErr) {
		return err
	}
	return &OracleError{Op: op, Err: err}
}
