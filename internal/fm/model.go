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

// Package fm loads feature models written as a feature list (.fs) and a
// disjunctive normal form of the valid configurations (.fm).
//
// A .fs file lists one feature per line. Each non-comment line of a .fm file
// is one term of the disjunction: factors joined by '&'. A factor is a
// literal ("a", "!a", "~a"), a one-hot group ("a ^ b ^ c": exactly one
// holds) or a disjunction of literals and one-hot groups ("a | b ^ c").
// Parentheses are ignored. A model whose only term is "True" admits every
// configuration. Lines starting with '#' are comments.
package fm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/contriboss/observe-go"
)

// Group is a one-hot group: exactly one of its literals holds. A group of
// one literal is the literal itself.
type Group []observe.Literal

// Clause holds when at least one of its groups holds.
type Clause []Group

// Term is a conjunction of clauses; one line of a .fm file.
type Term []Clause

// Model is a parsed feature model.
type Model struct {
	// Name is the base path the model was loaded from, if any.
	Name     string
	Features []observe.Name
	Terms    []Term
	// Tautology is set when the model admits every configuration.
	Tautology bool
}

// ParseError reports a malformed line.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ErrUnknownFeature is wrapped by a ParseError when a term mentions a
// feature missing from the feature list.
var ErrUnknownFeature = errors.New("feature not declared in feature list")

// Load reads base+".fs" and base+".fm".
func Load(base string) (*Model, error) {
	fsFile, err := os.Open(base + ".fs")
	if err != nil {
		return nil, fmt.Errorf("opening feature list: %w", err)
	}
	defer fsFile.Close()

	fmFile, err := os.Open(base + ".fm")
	if err != nil {
		return nil, fmt.Errorf("opening feature model: %w", err)
	}
	defer fmFile.Close()

	model, err := Parse(base, fsFile, fmFile)
	if err != nil {
		return nil, err
	}
	return model, nil
}

// Exists reports whether both files of the model at base are present.
func Exists(base string) bool {
	for _, ext := range []string{".fs", ".fm"} {
		info, err := os.Stat(base + ext)
		if err != nil || info.IsDir() {
			return false
		}
	}
	return true
}

// Parse reads a feature list and a DNF model. name is used in errors.
func Parse(name string, features, terms io.Reader) (*Model, error) {
	model := &Model{Name: name}

	declared := make(map[observe.Name]bool)
	err := scanLines(features, func(line int, text string) error {
		if strings.ContainsAny(text, "!~&|^() \t") {
			return &ParseError{Path: name + ".fs", Line: line, Err: fmt.Errorf("malformed feature name %q", text)}
		}
		f := observe.MakeName(text)
		if declared[f] {
			return &ParseError{Path: name + ".fs", Line: line, Err: fmt.Errorf("feature %s listed twice", text)}
		}
		declared[f] = true
		model.Features = append(model.Features, f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var lines []string
	var lineNumbers []int
	err = scanLines(terms, func(line int, text string) error {
		lines = append(lines, text)
		lineNumbers = append(lineNumbers, line)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(lines) == 1 && lines[0] == "True" {
		model.Tautology = true
		return model, nil
	}

	for i, text := range lines {
		term, err := parseTerm(text, declared)
		if err != nil {
			return nil, &ParseError{Path: name + ".fm", Line: lineNumbers[i], Err: err}
		}
		model.Terms = append(model.Terms, term)
	}
	return model, nil
}

func scanLines(r io.Reader, fn func(line int, text string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn(line, text); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseTerm(text string, declared map[observe.Name]bool) (Term, error) {
	text = strings.NewReplacer("(", "", ")", "").Replace(text)

	var term Term
	for _, factor := range strings.Split(text, "&") {
		var clause Clause
		for _, alt := range strings.Split(factor, "|") {
			var group Group
			for _, tok := range strings.Split(alt, "^") {
				lit, err := observe.ParseLiteral(tok)
				if err != nil {
					return nil, err
				}
				if !declared[lit.Feature] {
					return nil, fmt.Errorf("%w: %s", ErrUnknownFeature, lit.Feature.Value())
				}
				group = append(group, lit)
			}
			clause = append(clause, group)
		}
		term = append(term, clause)
	}
	return term, nil
}
