package services

import "iter"

// Combinations yields every r-element index set over [0, n) in lexicographic
// order, e.g. n=3, r=2 yields [0 1], [0 2], [1 2].
// The yielded slice is reused between iterations; copy it to keep it.
func Combinations(n, r int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if r < 0 || r > n {
			return
		}

		idx := make([]int, r)
		for i := range idx {
			idx[i] = i
		}

		for {
			if !yield(idx) {
				return
			}

			// Advance the rightmost position that has not reached its ceiling.
			i := r - 1
			for i >= 0 && idx[i] == n-r+i {
				i--
			}
			if i < 0 {
				return
			}

			idx[i]++
			for j := i + 1; j < r; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// Subsets yields the power set of [0, n): by increasing size, and within a
// size in the order of Combinations. The empty set comes first.
func Subsets(n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		for r := 0; r <= n; r++ {
			for idx := range Combinations(n, r) {
				if !yield(idx) {
					return
				}
			}
		}
	}
}
