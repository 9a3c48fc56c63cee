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

import "strings"

// PFA is a partial feature assignment: a fixed-polarity assignment to a
// small set of distinct features. Its arity is its length and its support is
// the set of features it mentions.
//
// A PFA is an immutable value. Methods that derive a new assignment return a
// fresh slice and never modify the receiver.
type PFA []Literal

// NewPFA creates a PFA from literals in the given order.
func NewPFA(literals ...Literal) PFA {
	return PFA(append([]Literal(nil), literals...))
}

// ParsePFA parses literals separated by '&' or ','.
//
// Example:
//
//	pfa, err := ParsePFA("compression & !encryption")
func ParsePFA(s string) (PFA, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '&' || r == ',' })
	pfa := make(PFA, 0, len(fields))
	for _, field := range fields {
		lit, err := ParseLiteral(field)
		if err != nil {
			return nil, err
		}
		pfa = append(pfa, lit)
	}
	return pfa, nil
}

// Arity returns the number of literals.
func (p PFA) Arity() int {
	return len(p)
}

// Support returns the features mentioned by the assignment, in literal order.
func (p PFA) Support() []Name {
	support := make([]Name, len(p))
	for i, lit := range p {
		support[i] = lit.Feature
	}
	return support
}

// Switch returns the counterfactual assignment: every literal negated.
func (p PFA) Switch() PFA {
	switched := make(PFA, len(p))
	for i, lit := range p {
		switched[i] = lit.Negate()
	}
	return switched
}

// Pick returns the sub-assignment made of the literals at the given indices.
func (p PFA) Pick(indices []int) PFA {
	sub := make(PFA, len(indices))
	for i, idx := range indices {
		sub[i] = p[idx]
	}
	return sub
}

// Validate checks that no feature appears twice, with the same or with the
// opposite polarity.
func (p PFA) Validate() error {
	seen := make(map[Name]int, len(p))
	for i, lit := range p {
		if first, ok := seen[lit.Feature]; ok {
			return &InvalidAssignmentError{
				Assignment: p,
				Feature:    lit.Feature,
				First:      first,
				Second:     i,
			}
		}
		seen[lit.Feature] = i
	}
	return nil
}

// Equal reports whether both assignments contain the same literals in the same order.
func (p PFA) Equal(other PFA) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String returns the literals joined by " & ".
func (p PFA) String() string {
	parts := make([]string, len(p))
	for i, lit := range p {
		parts[i] = lit.String()
	}
	return strings.Join(parts, " & ")
}
