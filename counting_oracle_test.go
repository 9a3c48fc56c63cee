package observe

import "testing"

func TestCountingOracleCountsQueries(t *testing.T) {
	inner := mustOracle(t, "a", "b")
	o := NewCountingOracle(inner)

	a := o.Literal(NewLiteral(MakeName("a")))
	b := o.Literal(NewNegativeLiteral(MakeName("b")))
	f := o.And(a, b)
	o.IsFalse(f)
	o.Implies(f, a)
	o.Features()
	o.Index(MakeName("a"))

	stats := o.Stats()
	if stats.Calls["literal"] != 2 {
		t.Fatalf("expected 2 literal calls, got %d", stats.Calls["literal"])
	}
	if stats.Calls["and"] != 1 || stats.Calls["is_false"] != 1 || stats.Calls["implies"] != 1 {
		t.Fatalf("unexpected per-operation counts: %v", stats.Calls)
	}
	if stats.Total != 5 {
		t.Fatalf("expected 5 counted queries, got %d", stats.Total)
	}

	o.Reset()
	if total := o.Stats().Total; total != 0 {
		t.Fatalf("expected counters to reset, got %d", total)
	}
}

func TestCountingOracleDelegates(t *testing.T) {
	inner, universe := implicationUniverse(t)
	o := NewCountingOracle(inner)

	if got := o.Count(universe, 3).Int64(); got != 7 {
		t.Fatalf("expected 7 configurations, got %d", got)
	}

	cubes := 0
	for range o.Cubes(universe) {
		cubes++
	}
	if cubes == 0 {
		t.Fatalf("expected cubes of a satisfiable universe")
	}

	stats := o.Stats()
	if stats.Calls["count"] != 1 || stats.Calls["cubes"] != 1 {
		t.Fatalf("unexpected per-operation counts: %v", stats.Calls)
	}
}

func TestCountingOracleStatsAreCopies(t *testing.T) {
	o := NewCountingOracle(mustOracle(t, "a"))
	o.True()

	stats := o.Stats()
	stats.Calls["true"] = 100
	if got := o.Stats().Calls["true"]; got != 1 {
		t.Fatalf("expected stats to be a copy, got %d", got)
	}
}
