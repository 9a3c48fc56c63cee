package observe

import (
	"errors"
	"slices"
	"testing"
)

func TestNewBDDOracleRejectsBadDeclarations(t *testing.T) {
	if _, err := NewBDDOracle(nil); err == nil {
		t.Fatalf("expected error for no features")
	}
	if _, err := NewBDDOracle(MakeNames("a", "b", "a")); err == nil {
		t.Fatalf("expected error for a duplicate feature")
	}
	if _, err := NewBDDOracle(MakeNames("a", "")); err == nil {
		t.Fatalf("expected error for an empty feature name")
	}
}

func TestBDDOracleAlgebra(t *testing.T) {
	o := mustOracle(t, "a", "b")
	a, b := lit(o, "a"), lit(o, "b")

	if !o.IsFalse(o.And(a, o.Not(a))) {
		t.Fatalf("expected a & !a to be false")
	}
	if o.IsFalse(o.Or(a, b)) {
		t.Fatalf("expected a | b to be satisfiable")
	}
	if !o.Implies(o.And(a, b), a) {
		t.Fatalf("expected a & b to imply a")
	}
	if o.Implies(a, o.And(a, b)) {
		t.Fatalf("expected a not to imply a & b")
	}
	if !o.Implies(o.True(), o.And()) || !o.IsFalse(o.Or()) {
		t.Fatalf("expected empty and to be true and empty or to be false")
	}
	if got := o.Count(o.Xor(a, b), 2).Int64(); got != 2 {
		t.Fatalf("expected 2 models of a xor b, got %d", got)
	}
	if err := o.Err(); err != nil {
		t.Fatalf("unexpected oracle error: %v", err)
	}
}

func TestBDDOracleCount(t *testing.T) {
	o, universe := implicationUniverse(t)

	if got := o.Count(universe, 3).Int64(); got != 7 {
		t.Fatalf("expected 7 configurations, got %d", got)
	}
	if got := o.Count(universe, 4).Int64(); got != 14 {
		t.Fatalf("expected 14 configurations over 4 variables, got %d", got)
	}
	if got := o.Count(o.False(), 3).Int64(); got != 0 {
		t.Fatalf("expected 0 models of false, got %d", got)
	}
}

func TestBDDOracleModelsAndCubes(t *testing.T) {
	o, universe := implicationUniverse(t)

	models := 0
	for m := range o.Models(universe) {
		if len(m) != 3 {
			t.Fatalf("expected total models over 3 features, got %v", m)
		}
		if m[0] && !m[1] && !m[2] {
			t.Fatalf("model %v violates a => (b | c)", m)
		}
		models++
	}
	if models != 7 {
		t.Fatalf("expected 7 models, got %d", models)
	}

	expanded := 0
	for c := range o.Cubes(universe) {
		for range c.Expand() {
			expanded++
		}
	}
	if expanded != 7 {
		t.Fatalf("expected cubes to cover 7 models, got %d", expanded)
	}

	for range o.Models(o.False()) {
		t.Fatalf("expected no models of false")
	}
}

func TestBDDOracleModelsEarlyStop(t *testing.T) {
	o := mustOracle(t, "a", "b", "c", "d")
	seen := 0
	for range o.Models(o.True()) {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Fatalf("expected to stop after 2 models, got %d", seen)
	}
	if err := o.Err(); err != nil {
		t.Fatalf("expected early stop not to record an error, got %v", err)
	}
}

func TestBDDOracleCubesBreakAfterFirst(t *testing.T) {
	o := mustOracle(t, "a", "b")
	either := o.Or(lit(o, "a"), lit(o, "b"))

	seen := 0
	for range o.Cubes(either) {
		seen++
		break
	}
	if seen != 1 {
		t.Fatalf("expected to stop after 1 cube, got %d", seen)
	}

	// A nested search stopping both loops at once, as the direct test does.
	pairs := 0
outer:
	for range o.Cubes(either) {
		for range o.Cubes(o.Not(either)) {
			pairs++
			break outer
		}
	}
	if pairs != 1 {
		t.Fatalf("expected 1 pair before stopping, got %d", pairs)
	}
	if err := o.Err(); err != nil {
		t.Fatalf("expected early stop not to record an error, got %v", err)
	}
}

func TestClassifierImplicationEndToEnd(t *testing.T) {
	o, universe := implicationUniverse(t)
	verdict, err := NewClassifier(o, universe).Classify(mustPFA(t, "a"))
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if verdict != DirectlyObservable {
		t.Fatalf("expected direct, got %s", verdict)
	}
}

func TestBDDOracleUnknownFeature(t *testing.T) {
	o := mustOracle(t, "a")
	f := o.Literal(NewLiteral(MakeName("zzz")))
	if !o.IsFalse(f) {
		t.Fatalf("expected an unknown literal to yield false")
	}
	var unknown *UnknownFeatureError
	if !errors.As(o.Err(), &unknown) {
		t.Fatalf("expected *UnknownFeatureError, got %v", o.Err())
	}
}

func TestBDDOracleForeignFormula(t *testing.T) {
	o := mustOracle(t, "a")
	o.Not("not a formula")
	var oracleErr *OracleError
	if !errors.As(o.Err(), &oracleErr) {
		t.Fatalf("expected *OracleError, got %v", o.Err())
	}
	if oracleErr.Op != "unwrap" {
		t.Fatalf("expected unwrap failure, got %s", oracleErr.Op)
	}
}

func TestCubeExpand(t *testing.T) {
	c := Cube{CubeDontCare, CubeTrue, CubeDontCare}
	var got []Model
	for m := range c.Expand() {
		got = append(got, m)
	}
	want := []Model{
		{false, true, false},
		{false, true, true},
		{true, true, false},
		{true, true, true},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d models, got %d", len(want), len(got))
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Fatalf("model %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if m := (Model{true, false}).Cube(); m[0] != CubeTrue || m[1] != CubeFalse {
		t.Fatalf("unexpected cube %v", m)
	}
}
