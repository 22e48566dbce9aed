package alloc

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ic-timon/algs4/logutil"
)

// Tracker wraps an Allocator and keeps every live allocation reachable, so that double frees
// are caught and leaks can be counted and reclaimed. An unreachable Tracker reclaims its leaks
// through a finalizer.
type Tracker struct {
	*trackerState
}

// trackerState is what deallocators point at. Only the Tracker handle carries the finalizer, so
// live allocations never keep it reachable.
type trackerState struct {
	mu       sync.Mutex
	upstream Allocator
	live     map[*trackedDeallocator]struct{}
	bytes    uint64
	allocs   int
	frees    int
}

type trackedDeallocator struct {
	state    *trackerState
	upstream Deallocator
	size     uint64
}

// NewTracker wraps upstream. Call Close when the tracker is no longer needed.
func NewTracker(upstream Allocator) *Tracker {
	t := &Tracker{&trackerState{
		upstream: upstream,
		live:     make(map[*trackedDeallocator]struct{}),
	}}
	runtime.SetFinalizer(t, (*Tracker).Close)
	return t
}

var (
	_ Allocator   = new(Tracker)
	_ Reallocator = new(Tracker)
)

func (t *Tracker) Allocate(size uint64, hints Hints) ([]byte, Deallocator, error) {
	mem, dec, err := t.upstream.Allocate(size, hints)
	if err != nil {
		return nil, nil, err
	}
	d := &trackedDeallocator{state: t.trackerState, upstream: dec, size: size}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.live[d] = struct{}{}
	t.bytes += size
	t.allocs++
	return mem, d, nil
}

// Reallocate resizes through the upstream Reallocator when there is one, keeping the same
// tracked allocation. Otherwise it allocates, copies and releases.
func (t *Tracker) Reallocate(mem []byte, dec Deallocator, size uint64, hints Hints) ([]byte, Deallocator, error) {
	d, ok := dec.(*trackedDeallocator)
	if !ok || d.state != t.trackerState {
		return nil, nil, ErrForeignDeallocator
	}
	r, ok := t.upstream.(Reallocator)
	if !ok {
		return moveTo(t, mem, dec, size, hints)
	}

	t.mu.Lock()
	_, live := t.live[d]
	t.mu.Unlock()
	if !live {
		return nil, nil, errors.Wrapf(ErrDoubleFree, "reallocate %d bytes", d.size)
	}
	out, up, err := r.Reallocate(mem, d.upstream, size, hints)
	if err != nil {
		return nil, nil, err
	}
	t.mu.Lock()
	t.bytes = t.bytes - d.size + size
	t.mu.Unlock()
	d.upstream, d.size = up, size
	return out, d, nil
}

// Deallocate panics with ErrDoubleFree if the allocation was already released.
func (d *trackedDeallocator) Deallocate(hints Hints) {
	s := d.state
	s.mu.Lock()
	if _, ok := s.live[d]; !ok {
		s.mu.Unlock()
		panic(errors.Wrapf(ErrDoubleFree, "allocation of %d bytes", d.size))
	}
	delete(s.live, d)
	s.bytes -= d.size
	s.frees++
	s.mu.Unlock()
	d.upstream.Deallocate(hints)
}

// Live returns the number of allocations not yet released.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// LiveBytes returns the bytes not yet released.
func (t *Tracker) LiveBytes() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bytes
}

// Allocs returns the number of successful allocations. Resizing in place does not count.
func (t *Tracker) Allocs() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allocs
}

// Frees returns the number of releases.
func (t *Tracker) Frees() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frees
}

// Close releases every allocation still live and returns how many there were.
func (t *Tracker) Close() int {
	t.mu.Lock()
	leaked := make([]*trackedDeallocator, 0, len(t.live))
	for d := range t.live {
		leaked = append(leaked, d)
	}
	clear(t.live)
	bytes := t.bytes
	t.bytes = 0
	t.mu.Unlock()

	if len(leaked) > 0 {
		logutil.Warn("reclaiming leaked allocations",
			zap.Int("allocations", len(leaked)),
			zap.Uint64("bytes", bytes),
		)
	}
	for _, d := range leaked {
		d.upstream.Deallocate(0)
	}
	runtime.SetFinalizer(t, nil)
	return len(leaked)
}
