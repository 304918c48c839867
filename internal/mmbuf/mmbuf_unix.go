//go:build unix

// Package mmbuf provides page-aligned anonymous memory buffers for arena
// backing stores.
package mmbuf

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Alloc returns a zero-filled, page-aligned anonymous mapping of size bytes
// and a cleanup function that releases it. Double release is a no-op.
func Alloc(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmbuf: invalid size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmbuf: mmap %d bytes: %w", size, err)
	}
	released := false
	cleanup := func() error {
		if released {
			return nil
		}
		released = true
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data[:size], cleanup, nil
}
