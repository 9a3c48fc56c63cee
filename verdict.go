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

// Verdict is the observability classification of a PFA.
type Verdict int

const (
	// Invalid means no valid configuration satisfies the PFA.
	Invalid Verdict = iota
	// DirectlyObservable means flipping the PFA while holding every other
	// feature fixed moves between two valid configurations.
	DirectlyObservable
	// IndirectlyObservable means the PFA splits into sub-assignments that
	// are each observable.
	IndirectlyObservable
	// Unobservable means the PFA is valid but neither directly nor
	// indirectly observable.
	Unobservable
)

// Verdicts lists every verdict in declaration order.
var Verdicts = []Verdict{Invalid, DirectlyObservable, IndirectlyObservable, Unobservable}

// String returns the verdict name used in logs and reports.
func (v Verdict) String() string {
	switch v {
	case Invalid:
		return "invalid"
	case DirectlyObservable:
		return "direct"
	case IndirectlyObservable:
		return "indirect"
	case Unobservable:
		return "unobservable"
	default:
		return "unknown"
	}
}

// IsObservable reports whether the verdict is direct or indirect observability.
func (v Verdict) IsObservable() bool {
	return v == DirectlyObservable || v == IndirectlyObservable
}
