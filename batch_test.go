package observe

import (
	"errors"
	"testing"
)

func TestClassifyBatchAbortOnError(t *testing.T) {
	o, universe := implicationUniverse(t)
	classifier := NewClassifier(o, universe)

	pfas := []PFA{mustPFA(t, "a"), mustPFA(t, "b & !b"), mustPFA(t, "c")}
	result, err := classifier.ClassifyBatch(pfas)

	var batchErr *BatchError
	if !errors.As(err, &batchErr) {
		t.Fatalf("expected *BatchError, got %T", err)
	}
	if batchErr.Index != 1 {
		t.Fatalf("expected failing index 1, got %d", batchErr.Index)
	}
	var invalid *InvalidAssignmentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected the batch error to wrap *InvalidAssignmentError")
	}
	if result == nil || len(result.Results) != 1 {
		t.Fatalf("expected a partial result with 1 verdict, got %+v", result)
	}
}

func TestClassifyBatchSkipRejected(t *testing.T) {
	o, universe := implicationUniverse(t)
	classifier := NewClassifier(o, universe, WithErrorPolicy(SkipRejected))

	pfas := []PFA{mustPFA(t, "a"), mustPFA(t, "b & !b"), mustPFA(t, "nope"), mustPFA(t, "c")}
	result, err := classifier.ClassifyBatch(pfas)
	if err != nil {
		t.Fatalf("ClassifyBatch returned error: %v", err)
	}
	if len(result.Results) != 2 {
		t.Fatalf("expected 2 verdicts, got %d", len(result.Results))
	}
	if len(result.Rejected) != 2 {
		t.Fatalf("expected 2 rejected PFAs, got %d", len(result.Rejected))
	}
	if result.Rejected[0].Index != 1 || result.Rejected[1].Index != 2 {
		t.Fatalf("expected rejected indices 1 and 2, got %d and %d", result.Rejected[0].Index, result.Rejected[1].Index)
	}
	if result.Counts.Total != 2 {
		t.Fatalf("expected rejected PFAs to stay out of the counts, got total %d", result.Counts.Total)
	}
}

func TestClassifyBatchAllAndWith(t *testing.T) {
	o, universe := linkedUniverse(t, "a", "b", "c")
	classifier := NewClassifier(o, universe)

	pfas := []PFA{mustPFA(t, "a"), mustPFA(t, "b"), mustPFA(t, "!b")}
	result, err := classifier.ClassifyBatch(pfas)
	if err != nil {
		t.Fatalf("ClassifyBatch returned error: %v", err)
	}

	var seen int
	for item := range result.All() {
		if !item.Assignment.Equal(pfas[seen]) {
			t.Fatalf("expected input order at %d", seen)
		}
		seen++
	}
	if seen != 3 {
		t.Fatalf("expected 3 items, got %d", seen)
	}

	if unobservable := result.With(Unobservable); len(unobservable) != 1 || unobservable[0].String() != "a" {
		t.Fatalf("expected only a to be unobservable, got %v", unobservable)
	}
	if direct := result.With(DirectlyObservable); len(direct) != 2 {
		t.Fatalf("expected b and !b to be direct, got %v", direct)
	}
}

func TestClassifyBatchSubsumedByBothPolarities(t *testing.T) {
	// Once a and !a share a verdict, their union covers every 1-wise PFA.
	o, universe := linkedUniverse(t, "a", "b", "c")
	classifier := NewClassifier(o, universe)

	result, err := classifier.ClassifyBatch(Generate(o.Features(), 1))
	if err != nil {
		t.Fatalf("ClassifyBatch returned error: %v", err)
	}
	if result.Counts.Unobservable != 6 {
		t.Fatalf("expected every PFA subsumed as unobservable, got %+v", result.Counts)
	}
	if hits := classifier.CacheStats().UnobservableHits; hits != 4 {
		t.Fatalf("expected 4 unobservable hits, got %d", hits)
	}
}

func TestClassifyTiersAscendingArity(t *testing.T) {
	o, universe := couplingUniverse(t)
	classifier := NewClassifier(o, universe)

	pfas := []PFA{mustPFA(t, "a & b"), mustPFA(t, "b"), mustPFA(t, "a")}
	results, err := classifier.ClassifyTiers(pfas)
	if err != nil {
		t.Fatalf("ClassifyTiers returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(results))
	}
	if results[0].Arity != 1 || results[1].Arity != 2 {
		t.Fatalf("expected arities 1 then 2, got %d then %d", results[0].Arity, results[1].Arity)
	}
	if got := results[0].Results[0].Assignment.String(); got != "b" {
		t.Fatalf("expected input order within a tier, got %s first", got)
	}
	if results[1].Counts.Indirect != 1 {
		t.Fatalf("expected a & b indirect, got %+v", results[1].Counts)
	}
}

func TestCountsAdd(t *testing.T) {
	var c Counts
	for _, v := range []Verdict{Invalid, DirectlyObservable, DirectlyObservable, IndirectlyObservable, Unobservable} {
		c.Add(v)
	}
	if c.Total != 5 || c.Valid != 4 {
		t.Fatalf("expected total 5 valid 4, got %+v", c)
	}
	if c.Of(DirectlyObservable) != 2 || c.Of(Invalid) != 1 {
		t.Fatalf("unexpected per-verdict counts: %+v", c)
	}
	if c.Of(Verdict(42)) != 0 {
		t.Fatalf("expected unknown verdict count 0")
	}
}

func TestSummarize(t *testing.T) {
	o, universe := implicationUniverse(t)
	classifier := NewClassifier(o, universe, WithErrorPolicy(SkipRejected))

	pfas := append(Generate(o.Features(), 2), mustPFA(t, "a & zz"))
	result, err := classifier.ClassifyBatch(pfas)
	if err != nil {
		t.Fatalf("ClassifyBatch returned error: %v", err)
	}

	stats := Summarize("toy", result, o.Count(universe, 3), 3)
	if stats.Arity != 2 || stats.PFAs != 13 || stats.Rejected != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Valid+stats.Invalid != 12 {
		t.Fatalf("expected 12 classified PFAs, got %d", stats.Valid+stats.Invalid)
	}
	if stats.Direct+stats.Indirect+stats.Unobservable != stats.Valid {
		t.Fatalf("verdict counts do not add up to valid: %+v", stats)
	}
	if stats.ValidConfigurations.Int64() != 7 {
		t.Fatalf("expected 7 valid configurations, got %s", stats.ValidConfigurations)
	}
}
