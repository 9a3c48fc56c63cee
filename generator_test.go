package observe

import (
	"slices"
	"testing"
)

func TestGenerateCounts(t *testing.T) {
	features := MakeNames("a", "b", "c", "d", "e")
	tests := []struct {
		t    int
		want int
	}{
		{1, 10},
		{2, 40},
		{3, 80},
		{5, 32},
		{0, 0},
		{6, 0},
	}
	for _, tt := range tests {
		pfas := Generate(features, tt.t)
		if len(pfas) != tt.want {
			t.Fatalf("t=%d: expected %d PFAs, got %d", tt.t, tt.want, len(pfas))
		}
		seen := make(map[string]bool)
		for _, pfa := range pfas {
			if pfa.Arity() != tt.t {
				t.Fatalf("t=%d: expected arity %d, got %s", tt.t, tt.t, pfa)
			}
			if err := pfa.Validate(); err != nil {
				t.Fatalf("t=%d: generated invalid PFA: %v", tt.t, err)
			}
			if seen[pfa.String()] {
				t.Fatalf("t=%d: %s generated twice", tt.t, pfa)
			}
			seen[pfa.String()] = true
		}
	}
}

func TestGenerateOrder(t *testing.T) {
	var got []string
	for pfa := range GenerateSeq(MakeNames("a", "b", "c"), 2) {
		got = append(got, pfa.String())
	}
	want := []string{
		"a & b", "a & !b", "!a & b", "!a & !b",
		"a & c", "a & !c", "!a & c", "!a & !c",
		"b & c", "b & !c", "!b & c", "!b & !c",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGenerateIgnoresRepeatedFeatures(t *testing.T) {
	pfas := Generate(MakeNames("a", "b", "a"), 1)
	if len(pfas) != 4 {
		t.Fatalf("expected 4 PFAs, got %d", len(pfas))
	}
}

func TestCombinations(t *testing.T) {
	var got [][]int
	for combo := range combinations([]int{0, 1, 2, 3}, 2) {
		got = append(got, combo)
	}
	if len(got) != 6 {
		t.Fatalf("expected 6 combinations, got %d", len(got))
	}
	if !slices.Equal(got[0], []int{0, 1}) || !slices.Equal(got[5], []int{2, 3}) {
		t.Fatalf("unexpected order: %v", got)
	}
	got[0][0] = 99
	if got[1][0] != 0 {
		t.Fatalf("expected fresh slices per combination")
	}
}
