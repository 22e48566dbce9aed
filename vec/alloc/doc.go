// Package alloc provides raw, untyped memory for vec.RawBuffer and the containers built on it.
//
// An Allocator returns a byte slice together with a Deallocator. The holder of the
// Deallocator owns the memory and must call Deallocate exactly once. Implementations:
//   - OffheapAllocator: C.malloc/C.realloc/C.free (cgo builds only)
//   - MmapAllocator: private anonymous mappings, resized with mremap on linux
//   - MetricsAllocator: prometheus accounting around any upstream allocator
//   - Tracker: leak and double-free detection around any upstream allocator
//
// Memory handed out here is invisible to the Go garbage collector, so it may only hold
// pointer-free values.
package alloc
