package vec

import "iter"

// Drain yields the former elements of a vector that was emptied when the drain began. The
// buffer stays with the vector; the drain only owns the elements it has not yet yielded.
type Drain[T any] struct {
	vec *Vector[T]
	it  rawIter[T]
}

func (d *Drain[T]) Next() (T, bool) {
	return d.it.next()
}

func (d *Drain[T]) NextBack() (T, bool) {
	return d.it.nextBack()
}

// Len returns the exact number of elements not yet yielded.
func (d *Drain[T]) Len() int {
	return d.it.len()
}

func (d *Drain[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			x, ok := d.it.next()
			if !ok || !yield(x) {
				return
			}
		}
	}
}

// Close drops the elements not yet yielded and returns the vector to its owner.
func (d *Drain[T]) Close() {
	d.it.dropRemaining()
	d.release()
}

// Forget abandons the drain: the vector becomes usable again, but elements not yet yielded are
// never dropped. Their slots are cleared, so whatever they reference can still be collected.
func (d *Drain[T]) Forget() {
	clear(d.it.slots[d.it.start:d.it.end])
	d.it = rawIter[T]{}
	d.release()
}

func (d *Drain[T]) release() {
	if d.vec != nil {
		d.vec.borrowed = false
		d.vec = nil
	}
}
