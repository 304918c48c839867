//go:build !unix

package mmbuf

import "fmt"

// Alloc returns a zero-filled heap buffer on platforms without anonymous
// mapping support. The cleanup function is a no-op.
func Alloc(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmbuf: invalid size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
