package vec

import "iter"

// rawIter is the live range [start, end) over a buffer's slots. Yielded slots are zeroed so the
// buffer no longer references values now owned by the caller.
type rawIter[T any] struct {
	slots      []T
	start, end int
}

func (it *rawIter[T]) len() int {
	return it.end - it.start
}

func (it *rawIter[T]) next() (T, bool) {
	var zero T
	if it.start >= it.end {
		return zero, false
	}
	x := it.slots[it.start]
	it.slots[it.start] = zero
	it.start++
	return x, true
}

func (it *rawIter[T]) nextBack() (T, bool) {
	var zero T
	if it.start >= it.end {
		return zero, false
	}
	it.end--
	x := it.slots[it.end]
	it.slots[it.end] = zero
	return x, true
}

// dropRemaining destroys every element left in range and empties it.
func (it *rawIter[T]) dropRemaining() {
	for {
		x, ok := it.next()
		if !ok {
			break
		}
		DropElem(x)
	}
	it.slots = nil
	it.start, it.end = 0, 0
}

// IntoIter owns the buffer of a consumed Vector and yields its elements by value from either
// end. Close it to drop what was not yielded and release the buffer.
type IntoIter[T any] struct {
	buf RawBuffer[T]
	it  rawIter[T]
}

// Next yields the front element, or false once exhausted.
func (i *IntoIter[T]) Next() (T, bool) {
	return i.it.next()
}

// NextBack yields the back element, or false once exhausted.
func (i *IntoIter[T]) NextBack() (T, bool) {
	return i.it.nextBack()
}

// Len returns the exact number of elements not yet yielded.
func (i *IntoIter[T]) Len() int {
	return i.it.len()
}

// All yields the remaining elements front to back. Stopping early leaves the rest in the
// iterator.
func (i *IntoIter[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			x, ok := i.it.next()
			if !ok || !yield(x) {
				return
			}
		}
	}
}

// Close drops the elements not yet yielded, then frees the buffer. Further calls do nothing.
func (i *IntoIter[T]) Close() {
	i.it.dropRemaining()
	i.buf.Free()
}
