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

// Package report renders tier statistics as CSV tables, YAML documents and
// terminal tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/contriboss/observe-go"
)

// Columns is the header of the statistics table.
var Columns = []string{
	"Experiment",
	"PFA_size",
	"Number_valid_configurations",
	"Number_features",
	"Number_PFAs",
	"Number_valid_PFAs",
	"Number_invalid_PFAs",
	"Number_direct_observable_PFAs",
	"Number_indirect_observable_PFAs",
	"Number_non-observable_PFAs",
	"Time",
}

// WriteCSV writes one row per tier. Time is in seconds.
func WriteCSV(w io.Writer, stats []observe.TierStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, s := range stats {
		if err := cw.Write(record(s)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes stats to dir/<name>_statistics.csv and returns the path.
func SaveCSV(dir, name string, stats []observe.TierStats) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating results dir: %w", err)
	}
	path := filepath.Join(dir, name+"_statistics.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, stats); err != nil {
		f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func record(s observe.TierStats) []string {
	return []string{
		s.Experiment,
		strconv.Itoa(s.Arity),
		configurations(s),
		strconv.Itoa(s.Features),
		strconv.Itoa(s.PFAs),
		strconv.Itoa(s.Valid),
		strconv.Itoa(s.Invalid),
		strconv.Itoa(s.Direct),
		strconv.Itoa(s.Indirect),
		strconv.Itoa(s.Unobservable),
		strconv.FormatFloat(s.Elapsed.Seconds(), 'f', -1, 64),
	}
}

func configurations(s observe.TierStats) string {
	if s.ValidConfigurations == nil {
		return "0"
	}
	return s.ValidConfigurations.String()
}
