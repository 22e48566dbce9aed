package vec

import (
	"iter"

	"github.com/pkg/errors"
)

// Vector is a growable array. Slots [0, Len()) hold live elements; the rest of the buffer is
// never read.
type Vector[T any] struct {
	buf         RawBuffer[T]
	len         int
	shrinkOnPop bool
	moved       bool
	borrowed    bool
}

// New creates an empty vector on the Go heap. It allocates nothing until the first push.
func New[T any]() *Vector[T] {
	return NewWithConfig[T](nil)
}

// WithCapacity creates an empty vector able to hold at least n elements before growing.
func WithCapacity[T any](n int) *Vector[T] {
	return NewWithConfig[T](&Config{InitialCapacity: n})
}

// NewWithConfig creates an empty vector. Uses default config if cfg is nil.
func NewWithConfig[T any](cfg *Config) *Vector[T] {
	cfg = cfg.OrDefault()
	v := &Vector[T]{
		buf:         NewRawBuffer[T](cfg.Allocator),
		shrinkOnPop: cfg.ShrinkOnPop,
	}
	for v.buf.Cap() < cfg.InitialCapacity {
		v.buf.Grow()
	}
	return v
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.len
}

// IsEmpty reports whether the vector holds no elements.
func (v *Vector[T]) IsEmpty() bool {
	return v.len == 0
}

// Cap returns the buffer capacity.
func (v *Vector[T]) Cap() int {
	return v.buf.Cap()
}

// Push appends x, doubling the buffer first when it is full. Amortized O(1).
func (v *Vector[T]) Push(x T) {
	v.checkMutable("push")
	if v.len == v.buf.Cap() {
		v.buf.Grow()
	}
	v.buf.slots[v.len] = x
	v.len++
}

// Pop removes and returns the last element, or false if the vector is empty.
func (v *Vector[T]) Pop() (T, bool) {
	v.checkMutable("pop")
	var zero T
	if v.len == 0 {
		return zero, false
	}
	v.len--
	x := v.buf.slots[v.len]
	v.buf.slots[v.len] = zero
	v.maybeShrink()
	return x, true
}

// Insert places x at index, shifting [index, Len()) one slot toward the back. O(n).
//
// Panics with ErrIndexOutOfBounds if index > Len().
func (v *Vector[T]) Insert(index int, x T) {
	v.checkMutable("insert")
	if index < 0 || index > v.len {
		panic(errors.Wrapf(ErrIndexOutOfBounds, "insert index %d, len %d", index, v.len))
	}
	if v.len == v.buf.Cap() {
		v.buf.Grow()
	}
	v.buf.Move(index+1, index, v.len-index)
	v.buf.slots[index] = x
	v.len++
}

// Remove takes out the element at index, shifting (index, Len()) one slot toward the front.
// O(n).
//
// Panics with ErrIndexOutOfBounds if index >= Len().
func (v *Vector[T]) Remove(index int) T {
	v.checkMutable("remove")
	if index < 0 || index >= v.len {
		panic(errors.Wrapf(ErrIndexOutOfBounds, "remove index %d, len %d", index, v.len))
	}
	x := v.buf.slots[index]
	v.buf.Move(index, index+1, v.len-index-1)
	v.len--
	var zero T
	v.buf.slots[v.len] = zero
	v.maybeShrink()
	return x
}

// Slice returns the live elements as a slice sharing the vector's storage. It is valid until
// the next call that changes the vector's length or capacity. Appending to it never writes into
// the vector.
func (v *Vector[T]) Slice() []T {
	return v.buf.slots[:v.len:v.len]
}

// All iterates over index/element pairs front to back.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.len; i++ {
			if !yield(i, v.buf.slots[i]) {
				return
			}
		}
	}
}

// Clone returns a vector with its own buffer from the same allocator. Elements are duplicated
// with Cloner when T implements it, otherwise copied by value.
func (v *Vector[T]) Clone() *Vector[T] {
	if v.moved {
		panic(errors.Wrap(ErrMoved, "clone"))
	}
	out := &Vector[T]{
		buf:         NewRawBuffer[T](v.buf.allocator),
		shrinkOnPop: v.shrinkOnPop,
	}
	for out.buf.Cap() < v.len {
		out.buf.Grow()
	}
	for i := 0; i < v.len; i++ {
		out.buf.slots[i] = CloneElem(v.buf.slots[i])
		out.len++
	}
	return out
}

// IntoIter consumes the vector: its buffer and elements move into the returned iterator, and
// the vector panics with ErrMoved on any further mutation.
func (v *Vector[T]) IntoIter() *IntoIter[T] {
	v.checkMutable("into iter")
	n := v.len
	buf := v.buf.Take()
	v.len = 0
	v.moved = true
	return &IntoIter[T]{
		buf: buf,
		it:  rawIter[T]{slots: buf.slots, end: n},
	}
}

// Drain empties the vector immediately and returns an iterator over its former elements. The
// vector stays borrowed, and panics with ErrBorrowed on mutation, until the drain is closed or
// forgotten.
func (v *Vector[T]) Drain() *Drain[T] {
	v.checkMutable("drain")
	d := &Drain[T]{
		vec: v,
		it:  rawIter[T]{slots: v.buf.slots, end: v.len},
	}
	// If the drain is forgotten the elements leak, but the vector never sees them again.
	v.len = 0
	v.borrowed = true
	return d
}

// Clear drops every element back to front, keeping the capacity.
func (v *Vector[T]) Clear() {
	v.checkMutable("clear")
	var zero T
	for v.len > 0 {
		v.len--
		x := v.buf.slots[v.len]
		v.buf.slots[v.len] = zero
		DropElem(x)
	}
}

// Free drops every element and releases the buffer. The vector can be reused afterwards.
// Freeing a vector consumed by IntoIter does nothing: the iterator owns that buffer.
func (v *Vector[T]) Free() {
	if v.moved {
		return
	}
	v.Clear()
	v.buf.Free()
}

func (v *Vector[T]) checkMutable(op string) {
	if v.moved {
		panic(errors.Wrap(ErrMoved, op))
	}
	if v.borrowed {
		panic(errors.Wrap(ErrBorrowed, op))
	}
}

// maybeShrink halves the buffer once it is a quarter full, leaving room to grow again before
// the next doubling.
func (v *Vector[T]) maybeShrink() {
	if v.shrinkOnPop && v.len > 0 && v.len == v.buf.Cap()/4 {
		v.buf.Shrink()
	}
}
