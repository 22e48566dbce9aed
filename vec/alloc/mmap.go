package alloc

import (
	"math"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ic-timon/algs4/logutil"
)

// MmapAllocator backs every allocation with its own private anonymous mapping. Mappings are
// page aligned and arrive zeroed, so NoClear has no effect.
type MmapAllocator struct{}

var _ Reallocator = MmapAllocator{}

type mmapDeallocator struct {
	m mmap.MMap
}

// NewMmapAllocator returns an allocator backed by anonymous mappings.
func NewMmapAllocator() Allocator {
	return MmapAllocator{}
}

func (MmapAllocator) Allocate(size uint64, _ Hints) ([]byte, Deallocator, error) {
	if size == 0 {
		return nil, noopDeallocator, nil
	}
	if size > math.MaxInt {
		return nil, nil, errors.Wrapf(ErrOutOfMemory, "mmap %d bytes", size)
	}
	m, err := mmap.MapRegion(nil, int(size), mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "mmap %d bytes", size)
	}
	return m, &mmapDeallocator{m: m}, nil
}

// Reallocate resizes the mapping; see remap for the per-platform strategy.
func (MmapAllocator) Reallocate(mem []byte, dec Deallocator, size uint64, _ Hints) ([]byte, Deallocator, error) {
	d, ok := dec.(*mmapDeallocator)
	if !ok || d.m == nil {
		return nil, nil, ErrForeignDeallocator
	}
	if size == 0 || size > math.MaxInt {
		return nil, nil, errors.Wrapf(ErrOutOfMemory, "mremap %d -> %d bytes", len(mem), size)
	}
	m, err := remap(d.m, int(size))
	if err != nil {
		return nil, nil, err
	}
	d.m = m
	return m, d, nil
}

// Deallocate unmaps the region. Unmap failures are logged, the mapping is forgotten either way.
func (d *mmapDeallocator) Deallocate(_ Hints) {
	if d.m == nil {
		return
	}
	n := len(d.m)
	if err := d.m.Unmap(); err != nil {
		logutil.Error("munmap failed", zap.Int("bytes", n), zap.Error(err))
	}
	d.m = nil
}
