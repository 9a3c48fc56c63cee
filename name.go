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

import "unique"

// Name represents a feature name using value interning for memory efficiency.
// Multiple instances of the same feature name share the same underlying memory.
//
// Name uses Go's unique.Handle for efficient string interning, enabling:
//   - Fast equality comparisons (pointer comparison instead of string comparison)
//   - Cheap map keys when the same features appear in thousands of PFAs
//   - Safe concurrent access (interning is thread-safe)
type Name = unique.Handle[string]

// MakeName creates an interned Name from a string.
// Equal strings will return the same Name value, enabling fast comparisons.
//
// Example:
//
//	f1 := MakeName("compression")
//	f2 := MakeName("compression")
//	// f1 == f2 (fast pointer comparison)
func MakeName(s string) Name {
	return unique.Make(s)
}

// MakeNames interns every string in order.
func MakeNames(ss ...string) []Name {
	names := make([]Name, len(ss))
	for i, s := range ss {
		names[i] = unique.Make(s)
	}
	return names
}

// EmptyName returns an empty name (interned empty string).
func EmptyName() Name {
	return unique.Make("")
}
