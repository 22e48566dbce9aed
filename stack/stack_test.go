package stack

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ic-timon/algs4/vec"
	"github.com/ic-timon/algs4/vec/alloc"
)

func TestStack(t *testing.T) {
	s := New[string]()
	require.True(t, s.IsEmpty())
	_, ok := s.Peek()
	require.False(t, ok)

	for _, w := range []string{"to", "be", "or", "not"} {
		s.Push(w)
	}
	require.Equal(t, 4, s.Len())
	top, ok := s.Peek()
	require.True(t, ok)
	require.Equal(t, "not", top)
	require.Equal(t, "not or be to ", s.String())
	require.Equal(t, []string{"not", "or", "be", "to"}, slices.Collect(s.All()))

	x, ok := s.Pop()
	require.True(t, ok)
	require.Equal(t, "not", x)
	x, _ = s.Pop()
	require.Equal(t, "or", x)
	require.Equal(t, 2, s.Len())
	s.Free()
	require.True(t, s.IsEmpty())
	_, ok = s.Pop()
	require.False(t, ok)
}

func TestStackOnMmap(t *testing.T) {
	tr := alloc.NewTracker(alloc.NewMmapAllocator())
	defer tr.Close()

	s := NewWithConfig[int](&vec.Config{Allocator: tr, ShrinkOnPop: true})
	for i := 0; i < 1000; i++ {
		s.Push(i)
	}
	for i := 999; i >= 0; i-- {
		x, ok := s.Pop()
		require.True(t, ok)
		require.Equal(t, i, x)
	}
	s.Free()
	require.Zero(t, tr.Live())
}
