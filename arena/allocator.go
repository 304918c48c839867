package arena

import "unsafe"

// Allocator is the contract a runtime or container library calls for every
// dynamic allocation it routes through an arena.
//
// All sizes are in bytes and must be positive; align must be a power of two.
// Pointers passed to Free and Realloc must have been returned by a prior
// successful Alloc, AllocZeroed, or Realloc on the same instance and not
// freed since, with the same size and align the allocation currently has.
type Allocator interface {
	// Alloc reserves size bytes at the given alignment. The returned span's
	// contents are unspecified; Alloc never clears memory.
	Alloc(size, align int) (unsafe.Pointer, error)

	// AllocZeroed is Alloc with the guarantee that every byte of the span
	// reads as zero immediately after the call.
	AllocZeroed(size, align int) (unsafe.Pointer, error)

	// Free returns the span starting at p to the free space.
	Free(p unsafe.Pointer, size, align int) error

	// Realloc resizes the span at p from oldSize to newSize bytes. Shrinking
	// never moves the span. Growing extends in place when the bytes after
	// the span are free, and relocates otherwise, copying the old contents.
	// On failure the original span is valid and untouched.
	Realloc(p unsafe.Pointer, oldSize, align, newSize int) (unsafe.Pointer, error)
}

// Compile-time interface check
var _ Allocator = (*Arena)(nil)
