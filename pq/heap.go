// Package pq provides binary-heap priority queues and heapsort.
//
// Heaps are one-based: slot 0 of the backing vector holds a zero placeholder so the parent of k
// is k/2 and its children are 2k and 2k+1. The placeholder is pushed with the first key, so an
// empty queue allocates nothing.
package pq

import (
	"iter"

	"github.com/ic-timon/algs4/vec"
)

type binaryHeap[T any] struct {
	pq *vec.Vector[T]
	n  int
	// above reports whether a belongs nearer the root than b.
	above func(a, b T) bool
}

func newHeap[T any](cfg *vec.Config, above func(a, b T) bool) binaryHeap[T] {
	return binaryHeap[T]{pq: vec.NewWithConfig[T](cfg), above: above}
}

func heapFrom[T any](items []T, cfg *vec.Config, above func(a, b T) bool) binaryHeap[T] {
	if cfg == nil {
		cfg = &vec.Config{InitialCapacity: len(items) + 1}
	}
	h := newHeap(cfg, above)
	h.reserveRoot()
	for _, x := range items {
		h.pq.Push(x)
	}
	h.n = len(items)
	for k := h.n / 2; k >= 1; k-- {
		h.sink(k)
	}
	return h
}

func (h *binaryHeap[T]) Len() int {
	return h.n
}

func (h *binaryHeap[T]) IsEmpty() bool {
	return h.n == 0
}

func (h *binaryHeap[T]) insert(x T) {
	h.reserveRoot()
	h.pq.Push(x)
	h.n++
	h.swim(h.n)
}

func (h *binaryHeap[T]) top() (T, bool) {
	if h.n == 0 {
		var zero T
		return zero, false
	}
	return h.pq.Slice()[1], true
}

func (h *binaryHeap[T]) delTop() (T, bool) {
	if h.n == 0 {
		var zero T
		return zero, false
	}
	h.exch(1, h.n)
	x, _ := h.pq.Pop()
	h.n--
	h.sink(1)
	return x, true
}

func (h *binaryHeap[T]) popAll() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			x, ok := h.delTop()
			if !ok || !yield(x) {
				return
			}
		}
	}
}

func (h *binaryHeap[T]) clone() binaryHeap[T] {
	return binaryHeap[T]{pq: h.pq.Clone(), n: h.n, above: h.above}
}

// reserveRoot pushes the slot-0 placeholder if the vector does not hold it yet.
func (h *binaryHeap[T]) reserveRoot() {
	if h.pq.IsEmpty() {
		var zero T
		h.pq.Push(zero)
	}
}

// Free drops the keys and releases the storage. The queue stays usable.
func (h *binaryHeap[T]) Free() {
	h.pq.Free()
	h.n = 0
}

func (h *binaryHeap[T]) swim(k int) {
	for k > 1 && h.higher(k, k/2) {
		h.exch(k/2, k)
		k /= 2
	}
}

func (h *binaryHeap[T]) sink(k int) {
	for 2*k <= h.n {
		j := 2 * k
		if j < h.n && h.higher(j+1, j) {
			j++
		}
		if !h.higher(j, k) {
			break
		}
		h.exch(k, j)
		k = j
	}
}

func (h *binaryHeap[T]) higher(i, j int) bool {
	s := h.pq.Slice()
	return h.above(s[i], s[j])
}

func (h *binaryHeap[T]) exch(i, j int) {
	s := h.pq.Slice()
	s[i], s[j] = s[j], s[i]
}

// isHeap checks heap order for the subtree rooted at k.
func (h *binaryHeap[T]) isHeap(k int) bool {
	if k > h.n {
		return true
	}
	left, right := 2*k, 2*k+1
	if left <= h.n && h.higher(left, k) {
		return false
	}
	if right <= h.n && h.higher(right, k) {
		return false
	}
	return h.isHeap(left) && h.isHeap(right)
}
