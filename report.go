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
	"fmt"
	"strings"
)

// Reporter formats classification results for humans.
type Reporter interface {
	// Report generates a readable summary of one or more batches.
	Report(results []*BatchResult) string
}

// DefaultReporter produces a hierarchical summary: one section per batch,
// one line per verdict and, when Verbose is set, the PFAs under each verdict.
type DefaultReporter struct {
	Verbose bool
}

// Report implements Reporter
func (r *DefaultReporter) Report(results []*BatchResult) string {
	if len(results) == 0 {
		return "no assignments classified"
	}

	var lines []string
	for _, result := range results {
		if result == nil {
			continue
		}
		r.reportBatch(result, &lines)
	}
	return strings.Join(lines, "\n")
}

func (r *DefaultReporter) reportBatch(result *BatchResult, lines *[]string) {
	counts := result.Counts
	*lines = append(*lines, fmt.Sprintf("%s: %d PFAs, %d valid, %d invalid (%s)",
		tierLabel(result.Arity), counts.Total, counts.Valid, counts.Invalid, result.Elapsed))

	for _, v := range Verdicts {
		*lines = append(*lines, fmt.Sprintf("  %s: %d", v, counts.Of(v)))
		if !r.Verbose {
			continue
		}
		for _, pfa := range result.With(v) {
			*lines = append(*lines, fmt.Sprintf("    %s", pfa))
		}
	}

	for _, rej := range result.Rejected {
		*lines = append(*lines, fmt.Sprintf("  rejected #%d [%s]: %v", rej.Index, rej.Assignment, rej.Err))
	}
}

// CollapsedReporter produces one line per batch.
type CollapsedReporter struct{}

// Report implements Reporter with a collapsed format
func (r *CollapsedReporter) Report(results []*BatchResult) string {
	var lines []string
	for _, result := range results {
		if result == nil {
			continue
		}
		c := result.Counts
		line := fmt.Sprintf("%s: %d direct, %d indirect, %d unobservable, %d invalid of %d",
			tierLabel(result.Arity), c.Direct, c.Indirect, c.Unobservable, c.Invalid, c.Total)
		if n := len(result.Rejected); n > 0 {
			line += fmt.Sprintf(" (%d rejected)", n)
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return "no assignments classified"
	}
	return strings.Join(lines, "\n")
}

func tierLabel(arity int) string {
	if arity <= 0 {
		return "mixed"
	}
	return fmt.Sprintf("%d-wise", arity)
}

var (
	_ Reporter = (*DefaultReporter)(nil)
	_ Reporter = (*CollapsedReporter)(nil)
)
