package observe

import (
	"errors"
	"strings"
	"testing"
)

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		in       string
		feature  string
		positive bool
	}{
		{"a", "a", true},
		{"!a", "a", false},
		{"~a", "a", false},
		{"!!a", "a", true},
		{" (compression) ", "compression", true},
		{"(!encryption)", "encryption", false},
	}
	for _, tt := range tests {
		lit, err := ParseLiteral(tt.in)
		if err != nil {
			t.Fatalf("ParseLiteral(%q) returned error: %v", tt.in, err)
		}
		if lit.Feature.Value() != tt.feature || lit.Positive != tt.positive {
			t.Fatalf("ParseLiteral(%q): expected %s/%v, got %s", tt.in, tt.feature, tt.positive, lit)
		}
	}

	for _, bad := range []string{"", "!", "a b", "a|b"} {
		if _, err := ParseLiteral(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestLiteralNegate(t *testing.T) {
	l := NewLiteral(MakeName("a"))
	n := l.Negate()
	if n.Positive || n.Feature != l.Feature {
		t.Fatalf("expected !a, got %s", n)
	}
	if n.Negate() != l {
		t.Fatalf("expected double negation to restore the literal")
	}
}

func TestPFASwitch(t *testing.T) {
	pfa := mustPFA(t, "a & !b & c")
	switched := pfa.Switch()
	if got := switched.String(); got != "!a & b & !c" {
		t.Fatalf("expected !a & b & !c, got %s", got)
	}
	if !switched.Switch().Equal(pfa) {
		t.Fatalf("expected switching twice to restore the PFA")
	}
	if pfa.String() != "a & !b & c" {
		t.Fatalf("expected Switch to leave the receiver untouched, got %s", pfa)
	}
}

func TestPFASupportAndPick(t *testing.T) {
	pfa := mustPFA(t, "a, !b, c")
	support := pfa.Support()
	if len(support) != 3 || support[1] != MakeName("b") {
		t.Fatalf("unexpected support %v", support)
	}
	if got := pfa.Pick([]int{0, 2}).String(); got != "a & c" {
		t.Fatalf("expected a & c, got %s", got)
	}
}

func TestPFAValidate(t *testing.T) {
	if err := mustPFA(t, "a & b").Validate(); err != nil {
		t.Fatalf("expected valid PFA, got %v", err)
	}

	err := mustPFA(t, "a & b & !a").Validate()
	var invalid *InvalidAssignmentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidAssignmentError, got %T", err)
	}
	if invalid.First != 0 || invalid.Second != 2 {
		t.Fatalf("expected positions 0 and 2, got %d and %d", invalid.First, invalid.Second)
	}
	if !strings.Contains(err.Error(), "conflicting polarities") {
		t.Fatalf("unexpected message: %v", err)
	}

	err = mustPFA(t, "a & a").Validate()
	if err == nil || !strings.Contains(err.Error(), "repeats") {
		t.Fatalf("expected a repeated feature error, got %v", err)
	}
}
