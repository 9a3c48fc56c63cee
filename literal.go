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

// Literal is a feature together with a polarity.
// A positive literal ("compression") asserts that the feature is selected,
// a negative literal ("!compression") asserts that it is deselected.
//
// Literals are the building blocks of partial feature assignments.
type Literal struct {
	Feature  Name
	Positive bool
}

// String returns the literal in the notation used by feature model files:
// the bare feature name, prefixed with "!" when negative.
func (l Literal) String() string {
	if l.Positive {
		return l.Feature.Value()
	}
	return "!" + l.Feature.Value()
}

// NewLiteral creates a positive literal for the feature.
func NewLiteral(feature Name) Literal {
	return Literal{Feature: feature, Positive: true}
}

// NewNegativeLiteral creates a negative literal for the feature.
func NewNegativeLiteral(feature Name) Literal {
	return Literal{Feature: feature, Positive: false}
}

// Negate returns the literal with its polarity flipped.
func (l Literal) Negate() Literal {
	return Literal{
		Feature:  l.Feature,
		Positive: !l.Positive,
	}
}

// ParseLiteral parses "name", "!name" or "~name". Surrounding whitespace
// and parentheses are ignored.
func ParseLiteral(s string) (Literal, error) {
	s = strings.Trim(strings.TrimSpace(s), "()")
	s = strings.TrimSpace(s)

	positive := true
	for strings.HasPrefix(s, "!") || strings.HasPrefix(s, "~") {
		positive = !positive
		s = strings.TrimSpace(s[1:])
	}

	if s == "" {
		return Literal{}, fmt.Errorf("empty literal")
	}
	if strings.ContainsAny(s, "!~&|^ \t") {
		return Literal{}, fmt.Errorf("malformed literal %q", s)
	}
	return Literal{Feature: MakeName(s), Positive: positive}, nil
}
