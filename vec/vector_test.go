package vec

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ic-timon/algs4/vec/alloc"
)

func TestVectorScenario(t *testing.T) {
	v := New[string]()
	for _, s := range []string{"hello", "algs4", "rs", "lib"} {
		v.Push(s)
	}
	require.Equal(t, 4, v.Len())

	x, ok := v.Pop()
	require.True(t, ok)
	require.Equal(t, "lib", x)
	require.Equal(t, 3, v.Len())
	require.Equal(t, "rs", v.Slice()[2])

	x, ok = v.Pop()
	require.True(t, ok)
	require.Equal(t, "rs", x)
	require.Equal(t, 2, v.Len())

	it := v.IntoIter()
	defer it.Close()
	x, ok = it.NextBack()
	require.True(t, ok)
	require.Equal(t, "algs4", x)
	x, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, "hello", x)
	_, ok = it.Next()
	require.False(t, ok)
	_, ok = it.NextBack()
	require.False(t, ok)
}

func TestVectorNewDoesNotAllocate(t *testing.T) {
	tr := alloc.NewTracker(alloc.NewMmapAllocator())
	defer tr.Close()

	v := NewWithConfig[int](&Config{Allocator: tr})
	require.Zero(t, v.Cap())
	require.True(t, v.IsEmpty())
	require.Zero(t, tr.Allocs())
	v.Free()
	require.Zero(t, tr.Allocs())
}

func TestVectorRemoveOnEmptyPanics(t *testing.T) {
	v := New[int]()
	requirePanicsWith(t, ErrIndexOutOfBounds, func() { v.Remove(0) })
}

func TestVectorIndexBounds(t *testing.T) {
	v := New[int]()
	v.Push(1)
	requirePanicsWith(t, ErrIndexOutOfBounds, func() { v.Insert(2, 9) })
	requirePanicsWith(t, ErrIndexOutOfBounds, func() { v.Insert(-1, 9) })
	requirePanicsWith(t, ErrIndexOutOfBounds, func() { v.Remove(1) })
	requirePanicsWith(t, ErrIndexOutOfBounds, func() { v.Remove(-1) })
	require.Equal(t, []int{1}, v.Slice())
}

func TestVectorPopEmpty(t *testing.T) {
	v := New[string]()
	x, ok := v.Pop()
	require.False(t, ok)
	require.Empty(t, x)
}

func TestVectorPushPopInverse(t *testing.T) {
	v := New[int]()
	for i := 0; i < 100; i++ {
		v.Push(i)
	}
	require.Equal(t, 128, v.Cap())
	for i := 99; i >= 0; i-- {
		x, ok := v.Pop()
		require.True(t, ok)
		require.Equal(t, i, x)
	}
	require.True(t, v.IsEmpty())
	require.Equal(t, 128, v.Cap())
}

func TestVectorInsertRemoveInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 20; n++ {
		v := New[int]()
		for i := 0; i < n; i++ {
			v.Push(rng.Intn(1000))
		}
		before := slices.Clone(v.Slice())
		for i := 0; i <= n; i++ {
			v.Insert(i, -1)
			require.Equal(t, n+1, v.Len())
			require.Equal(t, -1, v.Slice()[i])
			require.True(t, slices.Equal(before[:i], v.Slice()[:i]))
			require.True(t, slices.Equal(before[i:], v.Slice()[i+1:]))

			require.Equal(t, -1, v.Remove(i))
			require.True(t, slices.Equal(before, v.Slice()))
		}
	}
}

func TestVectorMatchesSliceModel(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, cfg := range []*Config{
		nil,
		{ShrinkOnPop: true},
		{Allocator: alloc.NewMmapAllocator()},
		{Allocator: alloc.NewMmapAllocator(), ShrinkOnPop: true, InitialCapacity: 5},
	} {
		v := NewWithConfig[int32](cfg)
		var model []int32
		for step := 0; step < 3000; step++ {
			switch op := rng.Intn(10); {
			case op < 4:
				x := rng.Int31()
				v.Push(x)
				model = append(model, x)
			case op < 6:
				x, ok := v.Pop()
				if len(model) == 0 {
					require.False(t, ok)
					continue
				}
				require.True(t, ok)
				require.Equal(t, model[len(model)-1], x)
				model = model[:len(model)-1]
			case op < 8:
				i := rng.Intn(len(model) + 1)
				x := rng.Int31()
				v.Insert(i, x)
				model = slices.Insert(model, i, x)
			default:
				if len(model) == 0 {
					continue
				}
				i := rng.Intn(len(model))
				require.Equal(t, model[i], v.Remove(i))
				model = slices.Delete(model, i, i+1)
			}
			require.Equal(t, len(model), v.Len())
			require.LessOrEqual(t, v.Len(), v.Cap())
		}
		require.True(t, slices.Equal(model, v.Slice()))
		v.Free()
		require.Zero(t, v.Cap())
	}
}

func TestVectorShrinkOnPop(t *testing.T) {
	v := NewWithConfig[int](&Config{ShrinkOnPop: true, InitialCapacity: 16})
	require.Equal(t, 16, v.Cap())
	for i := 0; i < 16; i++ {
		v.Push(i)
	}
	for v.Len() > 4 {
		v.Pop()
	}
	require.Equal(t, 8, v.Cap())
	v.Remove(0)
	require.Equal(t, 3, v.Len())
	require.Equal(t, 8, v.Cap())
	v.Pop()
	require.Equal(t, 4, v.Cap())
	v.Pop()
	require.Equal(t, 2, v.Cap())
	v.Pop()
	require.Equal(t, 2, v.Cap(), "popping the last element never shrinks")
}

func TestWithCapacity(t *testing.T) {
	v := WithCapacity[int](5)
	require.Equal(t, 8, v.Cap())
	require.Zero(t, v.Len())
	require.Zero(t, WithCapacity[int](-3).Cap())
}

func TestVectorSliceIsWritableView(t *testing.T) {
	v := New[int]()
	for _, x := range []int{5, 3, 9, 1} {
		v.Push(x)
	}
	slices.Sort(v.Slice())
	require.Equal(t, []int{1, 3, 5, 9}, v.Slice())
	i, found := slices.BinarySearch(v.Slice(), 5)
	require.True(t, found)
	require.Equal(t, 2, i)

	s := append(v.Slice(), 100)
	require.Equal(t, 4, v.Len())
	require.Len(t, s, 5)
}

func TestVectorAll(t *testing.T) {
	v := New[string]()
	v.Push("a")
	v.Push("b")
	v.Push("c")
	var got []string
	for i, s := range v.All() {
		if i == 2 {
			break
		}
		got = append(got, s)
	}
	require.Equal(t, []string{"a", "b"}, got)
}

type labels struct {
	names []string
}

func (l labels) Clone() labels {
	return labels{names: slices.Clone(l.names)}
}

func TestVectorCloneIndependence(t *testing.T) {
	v := New[labels]()
	v.Push(labels{names: []string{"x"}})
	v.Push(labels{names: []string{"y", "z"}})

	c := v.Clone()
	c.Slice()[0].names[0] = "changed"
	c.Push(labels{})
	c.Insert(0, labels{names: []string{"w"}})
	c.Remove(1)

	require.Equal(t, 2, v.Len())
	require.Equal(t, "x", v.Slice()[0].names[0])
	require.Equal(t, []string{"y", "z"}, v.Slice()[1].names)
	require.Equal(t, 3, c.Len())
	require.Equal(t, []string{"w"}, c.Slice()[0].names)
}

func TestVectorCloneUsesSameAllocator(t *testing.T) {
	tr := alloc.NewTracker(alloc.NewMmapAllocator())
	defer tr.Close()

	v := NewWithConfig[float64](&Config{Allocator: tr})
	for i := 0; i < 10; i++ {
		v.Push(float64(i) / 2)
	}
	c := v.Clone()
	require.Equal(t, 2, tr.Live())
	require.Equal(t, v.Slice(), c.Slice())
	c.Slice()[0] = 99
	require.Zero(t, v.Slice()[0])

	v.Free()
	c.Free()
	require.Zero(t, tr.Live())
}

func TestVectorFreeDropsEachElementOnce(t *testing.T) {
	drops := 0
	v := New[token]()
	for _, tk := range tokens(&drops, "a", "b", "c", "d") {
		v.Push(tk)
	}
	x, _ := v.Pop()
	require.Equal(t, "d", x.name)
	v.Free()
	require.Equal(t, 3, drops)
	require.Zero(t, v.Len())
	require.Zero(t, v.Cap())

	v.Free()
	require.Equal(t, 3, drops)

	v.Push(token{name: "again", drops: &drops})
	require.Equal(t, 1, v.Len())
}

func TestVectorClearKeepsCapacity(t *testing.T) {
	drops := 0
	v := New[token]()
	for _, tk := range tokens(&drops, "a", "b", "c") {
		v.Push(tk)
	}
	v.Clear()
	require.Equal(t, 3, drops)
	require.True(t, v.IsEmpty())
	require.Equal(t, 4, v.Cap())
}

func TestVectorReleasesBufferOnce(t *testing.T) {
	for _, a := range []alloc.Allocator{alloc.NewMmapAllocator(), alloc.NewOffheapAllocator()} {
		if a == nil {
			continue
		}
		tr := alloc.NewTracker(a)
		v := NewWithConfig[int64](&Config{Allocator: tr})
		for i := int64(0); i < 1000; i++ {
			v.Push(i)
		}
		require.Equal(t, 1, tr.Live())
		v.Free()
		assert.Zero(t, tr.Live())
		assert.Equal(t, tr.Allocs(), tr.Frees())
		assert.Zero(t, tr.Close())
	}
}

func TestVectorMetrics(t *testing.T) {
	am := alloc.NewAllocatorMetrics("algs4_test", "mmap")
	reg := prometheus.NewRegistry()
	require.NoError(t, am.Register(reg))

	v := NewWithConfig[uint64](&Config{Allocator: alloc.Wrap(am, alloc.NewMmapAllocator())})
	for i := uint64(0); i < 512; i++ {
		v.Push(i)
	}
	require.Equal(t, 1.0, testutil.ToFloat64(am.InuseObjects))
	require.Equal(t, 4096.0, testutil.ToFloat64(am.InuseBytes))

	v.Free()
	require.Zero(t, testutil.ToFloat64(am.InuseObjects))
	require.Zero(t, testutil.ToFloat64(am.InuseBytes))
}

func TestVectorAllocationFailureIsFatal(t *testing.T) {
	panicOnFatal(t)
	v := NewWithConfig[int](&Config{Allocator: failingAllocator{}})
	require.Panics(t, func() { v.Push(1) })
}

func TestVectorGrowsInPlaceThroughWrappers(t *testing.T) {
	tr := alloc.NewTracker(alloc.NewMmapAllocator())
	defer tr.Close()
	am := alloc.NewAllocatorMetrics("algs4_test", "tracked")

	v := NewWithConfig[int64](&Config{Allocator: alloc.Wrap(am, tr)})
	for i := int64(0); i < 1000; i++ {
		v.Push(i)
	}
	require.Equal(t, 1024, v.Cap())
	require.Equal(t, 1, tr.Allocs())
	require.Zero(t, tr.Frees())
	require.Equal(t, uint64(1024*8), tr.LiveBytes())
	require.Equal(t, 1.0, testutil.ToFloat64(am.AllocateObjects))
	require.Equal(t, 8192.0, testutil.ToFloat64(am.InuseBytes))
	for i, x := range v.All() {
		require.Equal(t, int64(i), x)
	}

	v.Free()
	require.Zero(t, tr.Live())
	require.Zero(t, testutil.ToFloat64(am.InuseBytes))
}
