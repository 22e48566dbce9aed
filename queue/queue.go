// Package queue provides a first-in-first-out queue over a vec.RawBuffer.
//
// The queue is not a ring: dequeues leave a hole at the front of the buffer, which is closed by
// moving the live items down when the back reaches capacity or when the buffer is about to
// shrink.
package queue

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ic-timon/algs4/vec"
	"github.com/ic-timon/algs4/vec/alloc"
)

type Queue[T any] struct {
	buf vec.RawBuffer[T]
	// live items are buf.Slots()[front:back]
	front, back int
}

func New[T any]() *Queue[T] {
	return NewWithAllocator[T](nil)
}

// NewWithAllocator creates an empty queue whose storage comes from a. A nil allocator keeps
// items on the Go heap.
func NewWithAllocator[T any](a alloc.Allocator) *Queue[T] {
	return &Queue[T]{buf: vec.NewRawBuffer[T](a)}
}

func (q *Queue[T]) Len() int {
	return q.back - q.front
}

func (q *Queue[T]) IsEmpty() bool {
	return q.back == q.front
}

// Cap returns the capacity of the underlying buffer.
func (q *Queue[T]) Cap() int {
	return q.buf.Cap()
}

// Enqueue adds x at the back. Amortized O(1).
func (q *Queue[T]) Enqueue(x T) {
	if q.back == q.buf.Cap() && q.front > 0 {
		q.moveToFront()
	}
	if q.Len() == q.buf.Cap() {
		q.buf.Grow()
	}
	q.buf.Slots()[q.back] = x
	q.back++
}

// Dequeue removes and returns the least recently added item, or false if the queue is empty.
// The buffer halves once it drops to a quarter full.
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if q.IsEmpty() {
		return zero, false
	}
	slots := q.buf.Slots()
	x := slots[q.front]
	slots[q.front] = zero
	q.front++

	switch n := q.Len(); {
	case n == 0:
		q.front, q.back = 0, 0
	case n == q.buf.Cap()/4:
		q.moveToFront()
		q.buf.Shrink()
	}
	return x, true
}

// Peek returns the least recently added item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.IsEmpty() {
		var zero T
		return zero, false
	}
	return q.buf.Slots()[q.front], true
}

// All iterates front to back.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := q.front; i < q.back; i++ {
			if !yield(q.buf.Slots()[i]) {
				return
			}
		}
	}
}

// String lists the items front first, each followed by a space.
func (q *Queue[T]) String() string {
	var b strings.Builder
	for x := range q.All() {
		fmt.Fprint(&b, x)
		b.WriteByte(' ')
	}
	return b.String()
}

// Clone returns a queue with its own buffer from the same allocator.
func (q *Queue[T]) Clone() *Queue[T] {
	out := NewWithAllocator[T](q.buf.Allocator())
	for x := range q.All() {
		out.Enqueue(vec.CloneElem(x))
	}
	return out
}

// Free drops the remaining items front to back and releases the buffer.
func (q *Queue[T]) Free() {
	slots := q.buf.Slots()
	var zero T
	for ; q.front < q.back; q.front++ {
		x := slots[q.front]
		slots[q.front] = zero
		vec.DropElem(x)
	}
	q.front, q.back = 0, 0
	q.buf.Free()
}

func (q *Queue[T]) moveToFront() {
	n := q.Len()
	q.buf.Move(0, q.front, n)
	clear(q.buf.Slots()[n:q.back])
	q.front, q.back = 0, n
}
