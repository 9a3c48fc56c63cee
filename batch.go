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
	"iter"
	"slices"
	"time"
)

// Classified pairs a PFA with its verdict.
type Classified struct {
	Assignment PFA
	Verdict    Verdict
}

// Rejected is a PFA that ClassifyBatch skipped under SkipRejected.
type Rejected struct {
	Index      int
	Assignment PFA
	Err        error
}

// Counts aggregates the verdicts of a batch.
type Counts struct {
	Total        int
	Valid        int
	Invalid      int
	Direct       int
	Indirect     int
	Unobservable int
}

// Add counts one verdict.
func (c *Counts) Add(v Verdict) {
	c.Total++
	switch v {
	case Invalid:
		c.Invalid++
		return
	case DirectlyObservable:
		c.Direct++
	case IndirectlyObservable:
		c.Indirect++
	case Unobservable:
		c.Unobservable++
	}
	c.Valid++
}

// Of returns the count for a single verdict.
func (c Counts) Of(v Verdict) int {
	switch v {
	case Invalid:
		return c.Invalid
	case DirectlyObservable:
		return c.Direct
	case IndirectlyObservable:
		return c.Indirect
	case Unobservable:
		return c.Unobservable
	default:
		return 0
	}
}

// BatchResult is the outcome of classifying a list of PFAs in order.
//
// Example:
//
//	result, err := classifier.ClassifyBatch(Generate(oracle.Features(), 2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for item := range result.All() {
//	    fmt.Printf("%s: %s\n", item.Assignment, item.Verdict)
//	}
type BatchResult struct {
	// Arity is the arity shared by every PFA of the batch, or 0 when mixed.
	Arity    int
	Results  []Classified
	Rejected []Rejected
	Counts   Counts
	Elapsed  time.Duration
}

// All returns an iterator over the classified PFAs in input order.
func (r *BatchResult) All() iter.Seq[Classified] {
	return func(yield func(Classified) bool) {
		for _, item := range r.Results {
			if !yield(item) {
				return
			}
		}
	}
}

// With returns the PFAs that received verdict v, in input order.
func (r *BatchResult) With(v Verdict) []PFA {
	var out []PFA
	for _, item := range r.Results {
		if item.Verdict == v {
			out = append(out, item.Assignment)
		}
	}
	return out
}

// ClassifyBatch classifies pfas in order, folding every verdict into the
// shared caches. Rejected assignments abort the batch unless the classifier
// uses SkipRejected; oracle failures always abort. On abort the partial
// result so far is returned with a *BatchError.
func (c *Classifier) ClassifyBatch(pfas []PFA) (*BatchResult, error) {
	result := &BatchResult{
		Arity:   commonArity(pfas),
		Results: make([]Classified, 0, len(pfas)),
	}
	start := time.Now()
	defer func() { result.Elapsed = time.Since(start) }()

	for i, pfa := range pfas {
		verdict, err := c.Classify(pfa)
		if err != nil {
			if c.options.ErrorPolicy == SkipRejected && isRejection(err) {
				c.debug("skipping rejected pfa", "index", i, "pfa", pfa, "error", err)
				result.Rejected = append(result.Rejected, Rejected{Index: i, Assignment: pfa, Err: err})
				continue
			}
			return result, &BatchError{Index: i, Assignment: pfa, Err: err}
		}
		result.Results = append(result.Results, Classified{Assignment: pfa, Verdict: verdict})
		result.Counts.Add(verdict)
	}

	c.debug("batch classified",
		"arity", result.Arity,
		"total", result.Counts.Total,
		"invalid", result.Counts.Invalid,
		"direct", result.Counts.Direct,
		"indirect", result.Counts.Indirect,
		"unobservable", result.Counts.Unobservable,
		"rejected", len(result.Rejected),
	)
	return result, nil
}

// ClassifyTiers groups pfas by arity and classifies the groups in ascending
// arity order, each as one batch. Input order is kept within a group. When a
// tier fails, the tiers completed before it are returned with the error.
func (c *Classifier) ClassifyTiers(pfas []PFA) ([]*BatchResult, error) {
	groups := make(map[int][]PFA)
	for _, pfa := range pfas {
		groups[len(pfa)] = append(groups[len(pfa)], pfa)
	}
	arities := make([]int, 0, len(groups))
	for k := range groups {
		arities = append(arities, k)
	}
	slices.Sort(arities)

	results := make([]*BatchResult, 0, len(arities))
	for _, k := range arities {
		result, err := c.ClassifyBatch(groups[k])
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func commonArity(pfas []PFA) int {
	if len(pfas) == 0 {
		return 0
	}
	k := len(pfas[0])
	for _, pfa := range pfas[1:] {
		if len(pfa) != k {
			return 0
		}
	}
	return k
}

func isRejection(err error) bool {
	var invalid *InvalidAssignmentError
	var unknown *UnknownFeatureError
	return errors.As(err, &invalid) || errors.As(err, &unknown) || errors.Is(err, ErrEmptyAssignment)
}
