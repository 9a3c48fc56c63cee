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

// Package dataset reads the measurement and performance-influence model
// tables of real-world subject systems.
package dataset

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/contriboss/observe-go"
)

// revisionColumn selects the rows of a single software revision.
const revisionColumn = "revision"

// Configurations is a table of measured configurations: one column per
// feature, one row per valid configuration.
type Configurations struct {
	Features []observe.Name
	Rows     []observe.Model
	// Revision is the revision the rows were filtered to, if the table
	// has a revision column.
	Revision string
}

// Oracle declares the features in a new BDD oracle and returns the universe
// made of the measured configurations.
func (c *Configurations) Oracle(opts ...observe.BDDOption) (*observe.BDDOracle, observe.Formula, error) {
	o, err := observe.NewBDDOracle(c.Features, opts...)
	if err != nil {
		return nil, nil, err
	}
	universe, err := observe.UniverseFromConfigurations(o, c.Rows)
	if err != nil {
		return nil, nil, err
	}
	return o, universe, nil
}

// LoadConfigurations reads a measurement table. Columns named in exclude
// and the unnamed index column are dropped. When a revision column exists,
// only the rows of the first row's revision are kept. A cell equal to 1
// selects its feature.
func LoadConfigurations(path string, exclude []string, delim rune) (*Configurations, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening measurements: %w", err)
	}
	defer f.Close()
	return ReadConfigurations(f, exclude, delim)
}

// ReadConfigurations is LoadConfigurations over a reader.
func ReadConfigurations(r io.Reader, exclude []string, delim rune) (*Configurations, error) {
	records, err := readAll(r, delim)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("measurements: missing header")
	}

	header := records[0]
	revision := slices.Index(header, revisionColumn)
	columns := featureColumns(header, exclude)
	if len(columns) == 0 {
		return nil, fmt.Errorf("measurements: no feature columns")
	}

	out := &Configurations{Features: make([]observe.Name, len(columns))}
	for i, col := range columns {
		out.Features[i] = observe.MakeName(strings.TrimSpace(header[col]))
	}

	for n, record := range records[1:] {
		if revision >= 0 {
			if n == 0 {
				out.Revision = record[revision]
			} else if record[revision] != out.Revision {
				continue
			}
		}
		row := make(observe.Model, len(columns))
		for i, col := range columns {
			v, err := parseCell(record[col])
			if err != nil {
				return nil, fmt.Errorf("measurements row %d, column %s: %w", n+1, header[col], err)
			}
			row[i] = v == 1
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// LoadPFAs reads a performance-influence model table. Every column outside
// exclude with at least one non-zero cell is a term of the model; its
// header lists the term's literals separated by '*'. The PFAs are returned
// without duplicates, ordered by arity and then by text.
func LoadPFAs(path string, exclude []string, delim rune) ([]observe.PFA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening influence model: %w", err)
	}
	defer f.Close()
	return ReadPFAs(f, exclude, delim)
}

// ReadPFAs is LoadPFAs over a reader.
func ReadPFAs(r io.Reader, exclude []string, delim rune) ([]observe.PFA, error) {
	records, err := readAll(r, delim)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("influence model: missing header")
	}

	header := records[0]
	seen := make(map[string]bool)
	var pfas []observe.PFA
	for _, col := range featureColumns(header, exclude) {
		used := false
		for n, record := range records[1:] {
			v, err := parseCell(record[col])
			if err != nil {
				return nil, fmt.Errorf("influence model row %d, column %s: %w", n+1, header[col], err)
			}
			if v != 0 {
				used = true
				break
			}
		}
		if !used {
			continue
		}

		pfa, err := parseTerm(header[col])
		if err != nil {
			return nil, fmt.Errorf("influence model column %q: %w", header[col], err)
		}
		if key := pfa.String(); !seen[key] {
			seen[key] = true
			pfas = append(pfas, pfa)
		}
	}

	slices.SortFunc(pfas, func(a, b observe.PFA) int {
		if c := cmp.Compare(a.Arity(), b.Arity()); c != 0 {
			return c
		}
		return strings.Compare(a.String(), b.String())
	})
	return pfas, nil
}

func parseTerm(column string) (observe.PFA, error) {
	var pfa observe.PFA
	for _, part := range strings.Split(column, "*") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		lit, err := observe.ParseLiteral(part)
		if err != nil {
			return nil, err
		}
		pfa = append(pfa, lit)
	}
	if len(pfa) == 0 {
		return nil, observe.ErrEmptyAssignment
	}
	return pfa, nil
}

func readAll(r io.Reader, delim rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return records, nil
}

// featureColumns returns the indices of the columns that are neither
// excluded nor the unnamed index column written by dataframe exports.
func featureColumns(header, exclude []string) []int {
	var cols []int
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" || name == "Unnamed: 0" || slices.Contains(exclude, name) {
			continue
		}
		cols = append(cols, i)
	}
	return cols
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
