// Package enumerate generates k-subsets of a candidate port list in
// lexicographic order, for k in a caller-supplied range.
package enumerate

// Combo walks a fixed-size sliding window over [0, k) indices into a
// candidate list of size c, invoking emit with each lexicographically
// ordered k-subset (shared backing array — emit must not retain it past
// the call). Stops early if emit returns false.
func Combo(c, k int, emit func(combo []int) bool) {
	if k == 0 {
		emit(nil)
		return
	}
	if k > c {
		return
	}
	combo := make([]int, k)
	for i := range combo {
		combo[i] = i
	}

	for {
		if !emit(combo) {
			return
		}
		// Find the largest i with combo[i] < c - k + i.
		i := k - 1
		for i >= 0 && combo[i] == c-k+i {
			i--
		}
		if i < 0 {
			return
		}
		combo[i]++
		for j := i + 1; j < k; j++ {
			combo[j] = combo[j-1] + 1
		}
	}
}

// Range walks every k in [kMin, kMax] (inclusive) and every lexicographic
// k-subset of a size-c candidate list, invoking emit for each. Stops early
// if emit returns false.
func Range(c, kMin, kMax int, emit func(k int, combo []int) bool) {
	if kMin < 0 {
		kMin = 0
	}
	if kMax > c {
		kMax = c
	}
	for k := kMin; k <= kMax; k++ {
		stop := false
		Combo(c, k, func(combo []int) bool {
			if !emit(k, combo) {
				stop = true
				return false
			}
			return true
		})
		if stop {
			return
		}
	}
}

// Count returns C(c, k), the binomial coefficient, computed without
// overflow for the small values this search deals with.
func Count(c, k int) int {
	if k < 0 || k > c {
		return 0
	}
	if k > c-k {
		k = c - k
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (c - i) / (i + 1)
	}
	return result
}
