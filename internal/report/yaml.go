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

package report

import (
	"io"

	"sigs.k8s.io/yaml"

	"github.com/contriboss/observe-go"
)

// Tier is the document form of a tier's statistics.
type Tier struct {
	Experiment          string  `json:"experiment"`
	Arity               int     `json:"pfa_size"`
	ValidConfigurations string  `json:"valid_configurations"`
	Features            int     `json:"features"`
	PFAs                int     `json:"pfas"`
	Valid               int     `json:"valid"`
	Invalid             int     `json:"invalid"`
	Direct              int     `json:"direct"`
	Indirect            int     `json:"indirect"`
	Unobservable        int     `json:"unobservable"`
	Rejected            int     `json:"rejected,omitempty"`
	Seconds             float64 `json:"seconds"`
}

// Tiers converts statistics rows to documents. Configuration counts are
// kept as decimal strings since they routinely exceed 64 bits.
func Tiers(stats []observe.TierStats) []Tier {
	out := make([]Tier, len(stats))
	for i, s := range stats {
		out[i] = Tier{
			Experiment:          s.Experiment,
			Arity:               s.Arity,
			ValidConfigurations: configurations(s),
			Features:            s.Features,
			PFAs:                s.PFAs,
			Valid:               s.Valid,
			Invalid:             s.Invalid,
			Direct:              s.Direct,
			Indirect:            s.Indirect,
			Unobservable:        s.Unobservable,
			Rejected:            s.Rejected,
			Seconds:             s.Elapsed.Seconds(),
		}
	}
	return out
}

// WriteYAML writes stats as a YAML list.
func WriteYAML(w io.Writer, stats []observe.TierStats) error {
	out, err := yaml.Marshal(Tiers(stats))
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
