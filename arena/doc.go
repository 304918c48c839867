// Package arena implements a fixed-capacity memory allocator over a single
// contiguous backing store.
//
// # Overview
//
// An Arena owns a fixed-size byte buffer and a bounded table of region
// descriptors (see github.com/joshuapare/arenakit/arena/region). Allocation
// requests are answered by carving spans out of the buffer; the allocator
// performs no dynamic bookkeeping of its own, so it is predictable under
// tight resource bounds and suitable as the sole memory provider for a
// component that must not touch the process heap after startup.
//
// # Operations
//
// The Allocator interface is the external contract:
//
//   - Alloc(size, align): first-fit allocation, contents unspecified
//   - AllocZeroed(size, align): same, but the span reads as zero
//   - Free(p, size, align): return a span; p must come from a prior Alloc
//   - Realloc(p, oldSize, align, newSize): resize in place when possible,
//     relocate otherwise; the original span is untouched on failure
//
// Failure is reported through two sentinel conditions: ErrOutOfMemory when
// no free span fits the request, and ErrIndexFull when the region table is
// at capacity. Neither aborts; the caller decides how to react.
//
// # Construction
//
// New builds an arena in a constant, side-effect-free empty state, so a
// package-level instance can serve as process-wide static state:
//
//	var heap = arena.New(1<<20, 256)
//
// NewWithBuffer adopts a caller-owned buffer, and NewMapped places the
// backing store in a page-aligned anonymous mapping.
//
// # Concurrency
//
// Every operation is a critical section guarded by one mutex per arena: the
// scan-then-mutate sequence over the region table is atomic from the
// caller's perspective. Operations never block waiting for memory and are
// bounded by a linear scan over the region table.
//
// # Trust boundary
//
// Pointer arithmetic is confined to this package; the region index below it
// works purely on integer offsets. Free and Realloc verify that the pointer,
// and the caller-supplied size, match a live allocation of this arena and
// report ErrBadPointer or ErrSizeMismatch otherwise. Writing outside an
// allocated span is not detectable and corrupts neighboring allocations.
//
// Values stored in arena memory must not hold the only reference to a
// garbage-collected object: the collector does not scan the backing store.
package arena
