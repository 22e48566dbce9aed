package pq

import "cmp"

// HeapSort sorts s in ascending order in place. It makes at most 2n log2 n compares, uses
// constant extra memory and is not stable.
func HeapSort[T cmp.Ordered](s []T) {
	HeapSortFunc(s, cmp.Compare[T])
}

// HeapSortFunc sorts s in ascending order as determined by compare.
func HeapSortFunc[T any](s []T, compare func(a, b T) int) {
	n := len(s)
	for k := n / 2; k >= 1; k-- {
		sortSink(s, k, n, compare)
	}
	for k := n; k > 1; {
		s[0], s[k-1] = s[k-1], s[0]
		k--
		sortSink(s, 1, k, compare)
	}
}

// sortSink works on one-based positions over the zero-based s.
func sortSink[T any](s []T, k, n int, compare func(a, b T) int) {
	for 2*k <= n {
		j := 2 * k
		if j < n && compare(s[j-1], s[j]) < 0 {
			j++
		}
		if compare(s[k-1], s[j-1]) >= 0 {
			break
		}
		s[k-1], s[j-1] = s[j-1], s[k-1]
		k = j
	}
}
