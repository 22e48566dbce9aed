package pq

import (
	"cmp"
	"iter"

	"github.com/ic-timon/algs4/vec"
)

// MaxPQ is a priority queue that hands out its largest key first. Insert and DelMax take
// logarithmic amortized time; Max, Len and IsEmpty take constant time.
type MaxPQ[T any] struct {
	binaryHeap[T]
}

func NewMaxPQ[T cmp.Ordered]() *MaxPQ[T] {
	return NewMaxPQFunc[T](cmp.Compare[T], nil)
}

// NewMaxPQFunc orders keys by compare, which returns a negative number when a < b, zero when
// they are equal and a positive number when a > b. A nil cfg keeps keys on the Go heap.
func NewMaxPQFunc[T any](compare func(a, b T) int, cfg *vec.Config) *MaxPQ[T] {
	return &MaxPQ[T]{newHeap(cfg, greater(compare))}
}

// MaxPQFrom builds a queue holding a copy of items in linear time.
func MaxPQFrom[T cmp.Ordered](items []T) *MaxPQ[T] {
	return MaxPQFromFunc(items, cmp.Compare[T])
}

func MaxPQFromFunc[T any](items []T, compare func(a, b T) int) *MaxPQ[T] {
	return &MaxPQ[T]{heapFrom(items, nil, greater(compare))}
}

func (q *MaxPQ[T]) Insert(x T) {
	q.insert(x)
}

// Max returns a largest key, or false if the queue is empty.
func (q *MaxPQ[T]) Max() (T, bool) {
	return q.top()
}

// DelMax removes and returns a largest key, or false if the queue is empty.
func (q *MaxPQ[T]) DelMax() (T, bool) {
	return q.delTop()
}

// PopAll removes keys largest first for as long as the caller keeps pulling.
func (q *MaxPQ[T]) PopAll() iter.Seq[T] {
	return q.popAll()
}

func (q *MaxPQ[T]) Clone() *MaxPQ[T] {
	return &MaxPQ[T]{q.clone()}
}

func greater[T any](compare func(a, b T) int) func(a, b T) bool {
	return func(a, b T) bool { return compare(a, b) > 0 }
}
