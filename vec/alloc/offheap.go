//go:build cgo

package alloc

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/pkg/errors"
)

// OffheapAvailable reports whether OffheapAllocator was compiled in.
const OffheapAvailable = true

// OffheapAllocator allocates with C.malloc, keeping storage out of the Go heap.
type OffheapAllocator struct{}

var _ Reallocator = OffheapAllocator{}

type offheapDeallocator struct {
	ptr unsafe.Pointer
}

// NewOffheapAllocator returns the C allocator, or nil when CGO is disabled.
func NewOffheapAllocator() Allocator {
	return OffheapAllocator{}
}

func (OffheapAllocator) Allocate(size uint64, hints Hints) ([]byte, Deallocator, error) {
	if size == 0 {
		return nil, noopDeallocator, nil
	}
	var ptr unsafe.Pointer
	if hints&NoClear != 0 {
		ptr = C.malloc(C.size_t(size))
	} else {
		ptr = C.calloc(1, C.size_t(size))
	}
	if ptr == nil {
		return nil, nil, errors.Wrapf(ErrOutOfMemory, "malloc %d bytes", size)
	}
	return unsafe.Slice((*byte)(ptr), size), &offheapDeallocator{ptr: ptr}, nil
}

// Reallocate resizes with C.realloc, which extends in place when the heap has room.
func (OffheapAllocator) Reallocate(mem []byte, dec Deallocator, size uint64, hints Hints) ([]byte, Deallocator, error) {
	d, ok := dec.(*offheapDeallocator)
	if !ok || d.ptr == nil {
		return nil, nil, ErrForeignDeallocator
	}
	ptr := C.realloc(d.ptr, C.size_t(size))
	if ptr == nil {
		return nil, nil, errors.Wrapf(ErrOutOfMemory, "realloc %d -> %d bytes", len(mem), size)
	}
	out := unsafe.Slice((*byte)(ptr), size)
	if hints&NoClear == 0 && size > uint64(len(mem)) {
		clear(out[len(mem):])
	}
	d.ptr = ptr
	return out, d, nil
}

// Deallocate frees the C memory.
func (d *offheapDeallocator) Deallocate(_ Hints) {
	if d.ptr != nil {
		C.free(d.ptr)
		d.ptr = nil
	}
}
