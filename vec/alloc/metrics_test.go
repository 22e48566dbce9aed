package alloc

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// heapAllocator serves tests that need an allocator without touching mmap or cgo.
type heapAllocator struct{}

func (heapAllocator) Allocate(size uint64, _ Hints) ([]byte, Deallocator, error) {
	return make([]byte, size), noopDeallocator, nil
}

func TestMetricsAllocator(t *testing.T) {
	am := NewAllocatorMetrics("algs4", "heap")
	reg := prometheus.NewRegistry()
	require.NoError(t, am.Register(reg))

	a := Wrap(am, heapAllocator{})
	_, d1, err := a.Allocate(100, 0)
	require.NoError(t, err)
	_, d2, err := a.Allocate(28, 0)
	require.NoError(t, err)

	require.Equal(t, 128.0, testutil.ToFloat64(am.AllocateBytes))
	require.Equal(t, 128.0, testutil.ToFloat64(am.InuseBytes))
	require.Equal(t, 2.0, testutil.ToFloat64(am.AllocateObjects))
	require.Equal(t, 2.0, testutil.ToFloat64(am.InuseObjects))

	d1.Deallocate(0)
	d1.Deallocate(0)
	require.Equal(t, 28.0, testutil.ToFloat64(am.InuseBytes))
	require.Equal(t, 1.0, testutil.ToFloat64(am.InuseObjects))

	d2.Deallocate(0)
	require.Zero(t, testutil.ToFloat64(am.InuseBytes))
	require.Equal(t, 128.0, testutil.ToFloat64(am.AllocateBytes))

	require.Error(t, am.Register(reg), "collectors are already registered")
}

func TestMetricsAllocatorNilCollectors(t *testing.T) {
	a := NewMetricsAllocator[Allocator](heapAllocator{}, nil, nil, nil, nil)
	_, dec, err := a.Allocate(8, 0)
	require.NoError(t, err)
	dec.Deallocate(0)
}

func TestMetricsAllocatorReallocate(t *testing.T) {
	am := NewAllocatorMetrics("algs4", "mmap")
	a := Wrap(am, NewMmapAllocator())

	mem, dec, err := a.Allocate(4096, 0)
	require.NoError(t, err)
	mem[0] = 1
	mem, dec, err = a.Reallocate(mem, dec, 16384, 0)
	require.NoError(t, err)
	require.Equal(t, byte(1), mem[0])
	require.Equal(t, 16384.0, testutil.ToFloat64(am.InuseBytes))
	require.Equal(t, 16384.0, testutil.ToFloat64(am.AllocateBytes))
	require.Equal(t, 1.0, testutil.ToFloat64(am.AllocateObjects))
	require.Equal(t, 1.0, testutil.ToFloat64(am.InuseObjects))

	mem, dec, err = a.Reallocate(mem, dec, 8192, 0)
	require.NoError(t, err)
	require.Len(t, mem, 8192)
	require.Equal(t, 8192.0, testutil.ToFloat64(am.InuseBytes))
	require.Equal(t, 16384.0, testutil.ToFloat64(am.AllocateBytes))

	_, _, err = a.Reallocate(mem, noopDeallocator, 1, 0)
	require.ErrorIs(t, err, ErrForeignDeallocator)

	dec.Deallocate(0)
	require.Zero(t, testutil.ToFloat64(am.InuseBytes))
	require.Zero(t, testutil.ToFloat64(am.InuseObjects))
}

func TestMetricsAllocatorReallocateWithoutUpstreamSupport(t *testing.T) {
	am := NewAllocatorMetrics("algs4", "heap")
	a := Wrap(am, heapAllocator{})

	mem, dec, err := a.Allocate(10, 0)
	require.NoError(t, err)
	mem, dec, err = a.Reallocate(mem, dec, 20, 0)
	require.NoError(t, err)
	require.Len(t, mem, 20)
	require.Equal(t, 2.0, testutil.ToFloat64(am.AllocateObjects))
	require.Equal(t, 1.0, testutil.ToFloat64(am.InuseObjects))
	require.Equal(t, 20.0, testutil.ToFloat64(am.InuseBytes))
	dec.Deallocate(0)
}
