//go:build !linux

package alloc

import (
	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// remap maps a fresh region, copies the old contents and unmaps the old region.
func remap(m mmap.MMap, size int) (mmap.MMap, error) {
	n, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap %d bytes", size)
	}
	copy(n, m)
	if err := m.Unmap(); err != nil {
		_ = n.Unmap()
		return nil, errors.Wrap(err, "munmap")
	}
	return n, nil
}
