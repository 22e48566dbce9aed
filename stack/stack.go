// Package stack provides a last-in-first-out stack backed by a vec.Vector.
package stack

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ic-timon/algs4/vec"
)

// Stack is a LIFO stack. Push and Pop take amortized constant time; Peek, Len and IsEmpty take
// constant time.
type Stack[T any] struct {
	data *vec.Vector[T]
}

func New[T any]() *Stack[T] {
	return NewWithConfig[T](nil)
}

// NewWithConfig creates an empty stack whose storage follows cfg.
func NewWithConfig[T any](cfg *vec.Config) *Stack[T] {
	return &Stack[T]{data: vec.NewWithConfig[T](cfg)}
}

func (s *Stack[T]) Len() int {
	return s.data.Len()
}

func (s *Stack[T]) IsEmpty() bool {
	return s.data.IsEmpty()
}

func (s *Stack[T]) Push(x T) {
	s.data.Push(x)
}

// Pop removes and returns the most recently pushed item, or false if the stack is empty.
func (s *Stack[T]) Pop() (T, bool) {
	return s.data.Pop()
}

// Peek returns the most recently pushed item without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	items := s.data.Slice()
	if len(items) == 0 {
		var zero T
		return zero, false
	}
	return items[len(items)-1], true
}

// All iterates from the top of the stack down.
func (s *Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		items := s.data.Slice()
		for i := len(items) - 1; i >= 0; i-- {
			if !yield(items[i]) {
				return
			}
		}
	}
}

// String lists the items top first, each followed by a space.
func (s *Stack[T]) String() string {
	var b strings.Builder
	for x := range s.All() {
		fmt.Fprint(&b, x)
		b.WriteByte(' ')
	}
	return b.String()
}

// Free drops the remaining items and releases the storage.
func (s *Stack[T]) Free() {
	s.data.Free()
}
