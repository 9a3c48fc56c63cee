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
	"math/big"
	"time"
)

// TierStats summarizes one classified tier of an experiment: the row that
// evaluation tables, checkpoints and metrics are built from.
type TierStats struct {
	Experiment string
	Arity      int
	// ValidConfigurations is the model count of the universe over every
	// declared feature.
	ValidConfigurations *big.Int
	Features            int
	PFAs                int
	Valid               int
	Invalid             int
	Direct              int
	Indirect            int
	Unobservable        int
	Rejected            int
	Elapsed             time.Duration
}

// Summarize builds the statistics row of a classified tier.
func Summarize(experiment string, result *BatchResult, validConfigurations *big.Int, features int) TierStats {
	c := result.Counts
	return TierStats{
		Experiment:          experiment,
		Arity:               result.Arity,
		ValidConfigurations: validConfigurations,
		Features:            features,
		PFAs:                c.Total + len(result.Rejected),
		Valid:               c.Valid,
		Invalid:             c.Invalid,
		Direct:              c.Direct,
		Indirect:            c.Indirect,
		Unobservable:        c.Unobservable,
		Rejected:            len(result.Rejected),
		Elapsed:             result.Elapsed,
	}
}
