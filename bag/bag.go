// Package bag provides an unordered collection that only supports adding items and iterating
// over them.
package bag

import (
	"iter"

	"github.com/ic-timon/algs4/vec"
)

type Bag[T any] struct {
	items *vec.Vector[T]
}

func New[T any]() *Bag[T] {
	return NewWithConfig[T](nil)
}

func NewWithConfig[T any](cfg *vec.Config) *Bag[T] {
	return &Bag[T]{items: vec.NewWithConfig[T](cfg)}
}

func (b *Bag[T]) Add(x T) {
	b.items.Push(x)
}

func (b *Bag[T]) Len() int {
	return b.items.Len()
}

func (b *Bag[T]) IsEmpty() bool {
	return b.items.IsEmpty()
}

// All iterates in insertion order. Callers must not rely on it.
func (b *Bag[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range b.items.All() {
			if !yield(x) {
				return
			}
		}
	}
}

func (b *Bag[T]) Clone() *Bag[T] {
	return &Bag[T]{items: b.items.Clone()}
}

// Free drops the items and releases the storage.
func (b *Bag[T]) Free() {
	b.items.Free()
}
