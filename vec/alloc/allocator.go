package alloc

import "github.com/pkg/errors"

// Hints tune a single allocation request.
type Hints uint64

const (
	// NoClear skips zeroing the returned memory.
	NoClear Hints = 1 << iota
)

var (
	ErrOutOfMemory        = errors.New("out of memory")
	ErrForeignDeallocator = errors.New("deallocator does not belong to this allocator")
	ErrDoubleFree         = errors.New("double free")
)

// Allocator hands out raw memory. The returned slice has exactly size bytes.
type Allocator interface {
	Allocate(size uint64, hints Hints) ([]byte, Deallocator, error)
}

// Deallocator releases one allocation.
type Deallocator interface {
	Deallocate(hints Hints)
}

// Reallocator is implemented by allocators that can resize an allocation, extending it in
// place when the platform allows. On success mem and dec must no longer be used; on failure
// both stay valid.
type Reallocator interface {
	Reallocate(mem []byte, dec Deallocator, size uint64, hints Hints) ([]byte, Deallocator, error)
}

// DeallocatorFunc adapts a function to Deallocator.
type DeallocatorFunc func(hints Hints)

func (f DeallocatorFunc) Deallocate(hints Hints) {
	f(hints)
}

var noopDeallocator = DeallocatorFunc(func(Hints) {})

// Reallocate resizes mem to size bytes with a, in place when a is a Reallocator. Otherwise it
// allocates, copies the common prefix and releases the old allocation. On failure mem and dec
// stay valid.
func Reallocate(a Allocator, mem []byte, dec Deallocator, size uint64, hints Hints) ([]byte, Deallocator, error) {
	if r, ok := a.(Reallocator); ok {
		return r.Reallocate(mem, dec, size, hints)
	}
	return moveTo(a, mem, dec, size, hints)
}

func moveTo(a Allocator, mem []byte, dec Deallocator, size uint64, hints Hints) ([]byte, Deallocator, error) {
	out, nd, err := a.Allocate(size, hints)
	if err != nil {
		return nil, nil, err
	}
	copy(out, mem)
	dec.Deallocate(0)
	return out, nd, nil
}
