//go:build linux

package alloc

import (
	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// remap lets the kernel grow or shrink the mapping, moving it only when the adjacent address
// range is taken.
func remap(m mmap.MMap, size int) (mmap.MMap, error) {
	b, err := unix.Mremap(m, size, unix.MREMAP_MAYMOVE)
	if err != nil {
		return nil, errors.Wrapf(err, "mremap %d -> %d bytes", len(m), size)
	}
	return b, nil
}
