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
	"strings"
	"testing"
)

func classifiedImplication(t *testing.T) []*BatchResult {
	t.Helper()
	o, universe := implicationUniverse(t)
	classifier := NewClassifier(o, universe)
	var pfas []PFA
	pfas = append(pfas, Generate(o.Features(), 1)...)
	pfas = append(pfas, Generate(o.Features(), 2)...)
	results, err := classifier.ClassifyTiers(pfas)
	if err != nil {
		t.Fatalf("ClassifyTiers returned error: %v", err)
	}
	return results
}

func TestCollapsedReporter(t *testing.T) {
	results := classifiedImplication(t)
	out := (&CollapsedReporter{}).Report(results)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per tier, got %q", out)
	}
	if lines[0] != "1-wise: 6 direct, 0 indirect, 0 unobservable, 0 invalid of 6" {
		t.Fatalf("unexpected 1-wise line: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2-wise: ") || !strings.HasSuffix(lines[1], " of 12") {
		t.Fatalf("unexpected 2-wise line: %s", lines[1])
	}
}

func TestCollapsedReporter_Rejected(t *testing.T) {
	o, universe := implicationUniverse(t)
	classifier := NewClassifier(o, universe, WithErrorPolicy(SkipRejected))
	result, err := classifier.ClassifyBatch([]PFA{mustPFA(t, "a"), mustPFA(t, "a & !a")})
	if err != nil {
		t.Fatalf("ClassifyBatch returned error: %v", err)
	}

	out := (&CollapsedReporter{}).Report([]*BatchResult{result})
	if !strings.HasSuffix(out, "(1 rejected)") {
		t.Fatalf("expected rejected count, got %s", out)
	}
	if !strings.HasPrefix(out, "mixed: ") {
		t.Fatalf("expected a mixed-arity label, got %s", out)
	}
}

func TestDefaultReporter(t *testing.T) {
	results := classifiedImplication(t)
	out := (&DefaultReporter{}).Report(results)

	for _, want := range []string{"1-wise: 6 PFAs, 6 valid, 0 invalid", "  direct: 6", "  indirect: 0", "2-wise: 12 PFAs"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected report to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "    a") {
		t.Fatalf("expected PFAs to be listed only when verbose")
	}
}

func TestDefaultReporter_Verbose(t *testing.T) {
	results := classifiedImplication(t)
	out := (&DefaultReporter{Verbose: true}).Report(results[:1])

	if !strings.Contains(out, "\n    !a") {
		t.Fatalf("expected verbose report to list PFAs, got:\n%s", out)
	}
}

func TestDefaultReporter_Nil(t *testing.T) {
	reporter := &DefaultReporter{}
	if out := reporter.Report(nil); out != "no assignments classified" {
		t.Fatalf("unexpected output for no results: %s", out)
	}
}

func TestCollapsedReporter_Nil(t *testing.T) {
	reporter := &CollapsedReporter{}
	if out := reporter.Report([]*BatchResult{nil}); out != "no assignments classified" {
		t.Fatalf("unexpected output for nil results: %s", out)
	}
}

func TestReporterInterfaces(t *testing.T) {
	var _ Reporter = &DefaultReporter{}
	var _ Reporter = &CollapsedReporter{}
}
