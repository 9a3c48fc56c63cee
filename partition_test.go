package observe

import (
	"fmt"
	"slices"
	"testing"
)

func TestIntegerPartitionsOrder(t *testing.T) {
	var got []string
	for shape := range IntegerPartitions(4) {
		got = append(got, fmt.Sprint(shape))
	}
	want := []string{"[1 1 1 1]", "[2 1 1]", "[2 2]", "[3 1]", "[4]"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPartitionsBellNumbers(t *testing.T) {
	bell := []int{1, 1, 2, 5, 15, 52, 203}
	for n := 1; n < len(bell); n++ {
		seen := make(map[string]bool)
		for blocks := range Partitions(n) {
			checkPartition(t, n, blocks)
			key := canonicalPartition(blocks)
			if seen[key] {
				t.Fatalf("n=%d: partition %s produced twice", n, key)
			}
			seen[key] = true
		}
		if len(seen) != bell[n] {
			t.Fatalf("n=%d: expected %d partitions, got %d", n, bell[n], len(seen))
		}
	}
}

func TestPartitionsFirstAndLast(t *testing.T) {
	var all [][][]int
	for blocks := range Partitions(4) {
		all = append(all, blocks)
	}
	if first := all[0]; len(first) != 4 {
		t.Fatalf("expected all singletons first, got %v", first)
	}
	if last := all[len(all)-1]; len(last) != 1 {
		t.Fatalf("expected the single block last, got %v", last)
	}
}

func TestPartitionsEarlyStop(t *testing.T) {
	count := 0
	for range Partitions(6) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Fatalf("expected to stop after 3, got %d", count)
	}
}

func TestPartitionsEmpty(t *testing.T) {
	for blocks := range Partitions(0) {
		t.Fatalf("expected no partitions of the empty set, got %v", blocks)
	}
}

func checkPartition(t *testing.T, n int, blocks [][]int) {
	t.Helper()
	covered := make([]int, n)
	for _, block := range blocks {
		if len(block) == 0 {
			t.Fatalf("empty block in %v", blocks)
		}
		if !slices.IsSorted(block) {
			t.Fatalf("block %v is not ascending", block)
		}
		for _, e := range block {
			if e < 0 || e >= n {
				t.Fatalf("element %d out of range in %v", e, blocks)
			}
			covered[e]++
		}
	}
	for e, c := range covered {
		if c != 1 {
			t.Fatalf("element %d covered %d times in %v", e, c, blocks)
		}
	}
}

func canonicalPartition(blocks [][]int) string {
	keys := make([]string, len(blocks))
	for i, b := range blocks {
		keys[i] = fmt.Sprint(b)
	}
	slices.Sort(keys)
	return fmt.Sprint(keys)
}
