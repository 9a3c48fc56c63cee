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

// IntegerPartitions yields every multiset of positive block sizes summing to
// n, each as a non-increasing slice. Shapes with smaller leading blocks come
// first, so the all-singletons shape is yielded first and [n] last:
//
//	n = 4: [1 1 1 1] [2 1 1] [2 2] [3 1] [4]
func IntegerPartitions(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if n <= 0 {
			return
		}
		var walk func(remaining, limit int, prefix []int) bool
		walk = func(remaining, limit int, prefix []int) bool {
			if remaining == 0 {
				return yield(append([]int(nil), prefix...))
			}
			for size := 1; size <= min(remaining, limit); size++ {
				if !walk(remaining-size, size, append(prefix, size)) {
					return false
				}
			}
			return true
		}
		walk(n, n, nil)
	}
}

// Partitions yields every set partition of {0, ..., n-1} exactly once, Bell(n)
// in total. Blocks are listed largest first and the elements of each block
// are ascending.
//
// For each shape from IntegerPartitions the largest block is filled first
// with every combination of the remaining elements, then the next largest
// from what is left. Blocks of equal size are kept in increasing order of
// their smallest element so no partition is produced twice. Singleton blocks
// take whatever elements remain.
//
// The sequence is lazy; stopping early costs nothing for the skipped tail.
func Partitions(n int) iter.Seq[[][]int] {
	return func(yield func([][]int) bool) {
		for shape := range IntegerPartitions(n) {
			if !fillBlocks(indexRange(n), shape, nil, yield) {
				return
			}
		}
	}
}

func fillBlocks(remaining, sizes []int, blocks [][]int, yield func([][]int) bool) bool {
	if len(sizes) == 0 {
		return yield(cloneBlocks(blocks, 0))
	}

	size := sizes[0]
	if size == 1 {
		out := cloneBlocks(blocks, len(remaining))
		for _, e := range remaining {
			out = append(out, []int{e})
		}
		return yield(out)
	}

	prevMin := -1
	if n := len(blocks); n > 0 && len(blocks[n-1]) == size {
		prevMin = blocks[n-1][0]
	}

	for combo := range combinations(remaining, size) {
		if combo[0] < prevMin {
			continue
		}
		if !fillBlocks(difference(remaining, combo), sizes[1:], append(blocks, combo), yield) {
			return false
		}
	}
	return true
}

func cloneBlocks(blocks [][]int, extra int) [][]int {
	out := make([][]int, len(blocks), len(blocks)+extra)
	for i, b := range blocks {
		out[i] = append([]int(nil), b...)
	}
	return out
}

// difference returns the elements of sorted that are not in sortedSub. Both
// slices are ascending.
func difference(sorted, sortedSub []int) []int {
	out := make([]int, 0, len(sorted)-len(sortedSub))
	j := 0
	for _, e := range sorted {
		if j < len(sortedSub) && sortedSub[j] == e {
			j++
			continue
		}
		out = append(out, e)
	}
	return out
}
