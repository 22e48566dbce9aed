package vec

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ic-timon/algs4/logutil"
	"github.com/ic-timon/algs4/vec/alloc"
)

// token counts its drops in a shared counter.
type token struct {
	name  string
	drops *int
}

func (t token) Drop() {
	*t.drops++
}

func tokens(drops *int, names ...string) []token {
	out := make([]token, len(names))
	for i, n := range names {
		out[i] = token{name: n, drops: drops}
	}
	return out
}

func requirePanicsWith(t *testing.T, target error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic with %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.Is(err, target), "got %v, want %v", err, target)
	}()
	f()
}

// panicOnFatal swaps in a global logger whose Fatal panics instead of exiting.
func panicOnFatal(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logutil.SetGlobalLogger(zap.New(core, zap.WithFatalHook(zapcore.WriteThenPanic)))
	t.Cleanup(func() { logutil.SetGlobalLogger(prev) })
	return logs
}

type failingAllocator struct{}

func (failingAllocator) Allocate(size uint64, _ alloc.Hints) ([]byte, alloc.Deallocator, error) {
	return nil, nil, errors.Wrapf(alloc.ErrOutOfMemory, "%d bytes", size)
}
