package vec

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ic-timon/algs4/logutil"
	"github.com/ic-timon/algs4/vec/alloc"
)

// maxAllocBytes is the largest object the platform can address.
const maxAllocBytes = math.MaxInt

// RawBuffer owns capacity for elements of type T. It tracks no length: which slots hold live
// values is up to its owner, and it never reads, drops or clears slots on its own except when
// relocating them.
//
// A RawBuffer has exactly one owner. Copying the struct duplicates the handle, not the
// allocation; hand it over with Take so only one copy can Free it.
type RawBuffer[T any] struct {
	slots     []T // len(slots) == capacity
	mem       []byte
	dec       alloc.Deallocator
	allocator alloc.Allocator
}

// NewRawBuffer returns an empty buffer. It allocates nothing. A nil allocator keeps slots on
// the Go heap; any other allocator requires a pointer-free T.
//
// Panics with ErrZeroSizedElem for zero-sized T and ErrPointerElem for a raw allocator with a
// T that holds pointers.
func NewRawBuffer[T any](a alloc.Allocator) RawBuffer[T] {
	t := reflect.TypeFor[T]()
	if elemSize[T]() == 0 {
		panic(errors.Wrapf(ErrZeroSizedElem, "element type %v", t))
	}
	if a != nil && hasPointers(t) {
		panic(errors.Wrapf(ErrPointerElem, "element type %v", t))
	}
	return RawBuffer[T]{allocator: a}
}

// Cap returns the number of slots allocated.
func (b *RawBuffer[T]) Cap() int {
	return len(b.slots)
}

// Slots returns all Cap() slots. Only the owner knows which of them are live.
func (b *RawBuffer[T]) Slots() []T {
	return b.slots
}

// Allocator returns the allocator the buffer was created with.
func (b *RawBuffer[T]) Allocator() alloc.Allocator {
	return b.allocator
}

// Grow doubles the capacity, starting from 1.
func (b *RawBuffer[T]) Grow() {
	newCap := 1
	if c := b.Cap(); c > 0 {
		newCap = 2 * c
	}
	b.resize(newCap)
}

// Shrink halves the capacity. The caller guarantees its live slots fit in the lower half.
// Shrinking a capacity of 1 releases the allocation.
func (b *RawBuffer[T]) Shrink() {
	b.resize(b.Cap() / 2)
}

// Move copies the n slots starting at src to dst. The ranges may overlap. Vacated slots keep
// their old values; the owner decides whether they are live.
func (b *RawBuffer[T]) Move(dst, src, n int) {
	if n < 0 || src < 0 || dst < 0 || src+n > len(b.slots) || dst+n > len(b.slots) {
		panic(errors.Wrapf(ErrIndexOutOfBounds,
			"move %d slots from %d to %d, capacity %d", n, src, dst, len(b.slots)))
	}
	copy(b.slots[dst:dst+n], b.slots[src:src+n])
}

// Take moves the allocation out of b, leaving b empty but bound to the same allocator.
func (b *RawBuffer[T]) Take() RawBuffer[T] {
	out := *b
	b.slots, b.mem, b.dec = nil, nil, nil
	return out
}

// Free releases the allocation. It does not drop slot contents. Freeing an empty buffer does
// nothing, so a second Free is harmless.
func (b *RawBuffer[T]) Free() {
	if b.dec != nil {
		b.dec.Deallocate(0)
	}
	b.slots, b.mem, b.dec = nil, nil, nil
}

// layout returns the byte size of n slots, panicking past maxAllocBytes.
func layout[T any](n int) uint64 {
	size := uint64(elemSize[T]())
	if n < 0 || uint64(n) > maxAllocBytes/size {
		panic(errors.Wrapf(ErrCapacityOverflow, "%d elements of %d bytes", n, size))
	}
	return uint64(n) * size
}

func (b *RawBuffer[T]) resize(newCap int) {
	if newCap == 0 {
		b.Free()
		return
	}
	size := layout[T](newCap)

	if b.allocator == nil {
		slots := make([]T, newCap)
		copy(slots, b.slots)
		b.slots = slots
		return
	}

	var (
		mem []byte
		dec alloc.Deallocator
		err error
	)
	if b.dec != nil {
		mem, dec, err = alloc.Reallocate(b.allocator, b.mem, b.dec, size, alloc.NoClear)
	} else {
		mem, dec, err = b.allocator.Allocate(size, alloc.NoClear)
	}
	if err != nil {
		handleAllocError(size, err)
		return
	}

	ptr := unsafe.Pointer(unsafe.SliceData(mem))
	if uintptr(ptr)%elemAlign[T]() != 0 {
		dec.Deallocate(0)
		b.slots, b.mem, b.dec = nil, nil, nil
		panic(errors.Errorf("allocator returned %p, misaligned for %v", ptr, reflect.TypeFor[T]()))
	}
	b.mem, b.dec = mem, dec
	b.slots = unsafe.Slice((*T)(ptr), newCap)
}

// handleAllocError aborts: a buffer that cannot grow leaves no sane way to continue.
func handleAllocError(size uint64, err error) {
	logutil.Fatal("memory allocation failed",
		zap.Uint64("bytes", size),
		zap.Error(err),
	)
}
