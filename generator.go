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

import "iter"

// GenerateSeq enumerates every t-wise PFA over features: each combination
// of t distinct features (in declaration order, lexicographically) with all
// 2^t polarity assignments, positive first.
//
// For features [a b c] and t = 2 the order is:
//
//	a & b, a & !b, !a & b, !a & !b, a & c, a & !c, ...
//
// Repeated names in features are ignored after their first occurrence.
// The sequence is empty when t <= 0 or t exceeds the number of features.
func GenerateSeq(features []Name, t int) iter.Seq[PFA] {
	features = distinctNames(features)
	return func(yield func(PFA) bool) {
		if t <= 0 || t > len(features) || t >= 63 {
			return
		}
		for combo := range combinations(indexRange(len(features)), t) {
			for mask := uint64(0); mask < uint64(1)<<t; mask++ {
				pfa := make(PFA, t)
				for j, idx := range combo {
					negated := mask&(uint64(1)<<(t-1-j)) != 0
					pfa[j] = Literal{Feature: features[idx], Positive: !negated}
				}
				if !yield(pfa) {
					return
				}
			}
		}
	}
}

// Generate materializes GenerateSeq. It returns C(n,t)·2^t assignments.
func Generate(features []Name, t int) []PFA {
	var pfas []PFA
	for pfa := range GenerateSeq(features, t) {
		pfas = append(pfas, pfa)
	}
	return pfas
}

// combinations yields every k-element subset of items, preserving the order
// of items, in lexicographic order of positions. Each yielded slice is fresh.
func combinations(items []int, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		n := len(items)
		if k < 0 || k > n {
			return
		}
		pos := make([]int, k)
		for i := range pos {
			pos[i] = i
		}
		for {
			combo := make([]int, k)
			for i, p := range pos {
				combo[i] = items[p]
			}
			if !yield(combo) {
				return
			}

			// Advance the rightmost position that still has room.
			i := k - 1
			for i >= 0 && pos[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			pos[i]++
			for j := i + 1; j < k; j++ {
				pos[j] = pos[j-1] + 1
			}
		}
	}
}

func indexRange(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func distinctNames(names []Name) []Name {
	seen := make(map[Name]bool, len(names))
	out := make([]Name, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
