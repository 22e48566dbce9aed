package pq

import (
	"cmp"
	"iter"

	"github.com/ic-timon/algs4/vec"
)

// MinPQ is a priority queue that hands out its smallest key first.
type MinPQ[T any] struct {
	binaryHeap[T]
}

func NewMinPQ[T cmp.Ordered]() *MinPQ[T] {
	return NewMinPQFunc[T](cmp.Compare[T], nil)
}

func NewMinPQFunc[T any](compare func(a, b T) int, cfg *vec.Config) *MinPQ[T] {
	return &MinPQ[T]{newHeap(cfg, less(compare))}
}

func MinPQFrom[T cmp.Ordered](items []T) *MinPQ[T] {
	return MinPQFromFunc(items, cmp.Compare[T])
}

func MinPQFromFunc[T any](items []T, compare func(a, b T) int) *MinPQ[T] {
	return &MinPQ[T]{heapFrom(items, nil, less(compare))}
}

func (q *MinPQ[T]) Insert(x T) {
	q.insert(x)
}

// Min returns a smallest key, or false if the queue is empty.
func (q *MinPQ[T]) Min() (T, bool) {
	return q.top()
}

// DelMin removes and returns a smallest key, or false if the queue is empty.
func (q *MinPQ[T]) DelMin() (T, bool) {
	return q.delTop()
}

func (q *MinPQ[T]) PopAll() iter.Seq[T] {
	return q.popAll()
}

func (q *MinPQ[T]) Clone() *MinPQ[T] {
	return &MinPQ[T]{q.clone()}
}

func less[T any](compare func(a, b T) int) func(a, b T) bool {
	return func(a, b T) bool { return compare(a, b) < 0 }
}
