//go:build !cgo

package alloc

// OffheapAvailable reports whether OffheapAllocator was compiled in.
const OffheapAvailable = false

// NewOffheapAllocator returns nil when CGO is disabled, falling back to the Go heap.
func NewOffheapAllocator() Allocator {
	return nil
}
