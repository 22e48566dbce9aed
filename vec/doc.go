// Package vec provides Vector, a growable array that manages its own buffer instead of
// leaning on append.
//
// Quick start:
//
//	v := vec.New[string]()
//	defer v.Free()
//	v.Push("hello")
//	v.Push("algs4")
//	for i, s := range v.All() {
//		fmt.Println(i, s)
//	}
//
// A Vector owns one RawBuffer: capacity without length, grown by doubling from 1. Storage
// lives on the Go heap by default, or in raw memory from an alloc.Allocator (C heap, anonymous
// mappings) for pointer-free element types.
//
// Ownership rules:
//   - IntoIter moves the buffer into the iterator. The vector is unusable afterwards and the
//     iterator's Close frees the buffer.
//   - Drain empties the vector at once and borrows its buffer until the drain is closed.
//     Forget abandons the drain: the elements it never yielded are leaked, never dropped.
//   - Elements implementing Dropper are dropped exactly once when a container destroys them.
//     Elements handed to the caller are the caller's responsibility.
//
// Vectors are not safe for concurrent use.
package vec
