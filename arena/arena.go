package arena

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"github.com/joshuapare/arenakit/arena/region"
	"github.com/joshuapare/arenakit/internal/mmbuf"
)

// Runtime debug flag for allocation logging - controlled by ARENA_LOG_ALLOC env var.
var logAlloc = os.Getenv("ARENA_LOG_ALLOC") != ""

// Arena is a fixed-capacity allocator over one contiguous backing store.
// The zero value is not usable; construct with New, NewWithBuffer, or
// NewMapped.
//
// An Arena is safe for concurrent use: every operation locks the arena for
// its full scan-then-mutate sequence.
type Arena struct {
	mu      sync.Mutex
	buf     []byte
	ix      *region.Index
	stats   Stats
	release func() error // backing store cleanup, nil unless mapped
}

// New returns an empty arena with a zero-filled heap-allocated backing store
// of capacity bytes, tracking at most maxRegions simultaneous allocations.
// Construction has no side effects, so New is usable to initialize
// package-level state.
func New(capacity, maxRegions int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return NewWithBuffer(make([]byte, capacity), maxRegions)
}

// NewWithBuffer returns an empty arena that carves allocations out of the
// caller-owned buf. The arena assumes exclusive use of buf; the caller must
// not read or write it except through returned pointers.
func NewWithBuffer(buf []byte, maxRegions int) *Arena {
	return &Arena{
		buf: buf,
		ix:  region.NewIndex(len(buf), maxRegions),
	}
}

// NewMapped returns an empty arena whose backing store is a page-aligned
// anonymous mapping of capacity bytes. Close unmaps it.
func NewMapped(capacity, maxRegions int) (*Arena, error) {
	buf, release, err := mmbuf.Alloc(capacity)
	if err != nil {
		return nil, fmt.Errorf("arena: map backing store: %w", err)
	}
	a := NewWithBuffer(buf, maxRegions)
	a.release = release
	return a, nil
}

// Close releases the backing store. Pointers handed out by the arena are
// invalid afterwards. Close is a no-op for heap- and caller-backed arenas.
func (a *Arena) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	release := a.release
	a.release = nil
	a.buf = nil
	if release != nil {
		return release()
	}
	return nil
}

// Capacity returns the backing store size in bytes.
func (a *Arena) Capacity() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ix.Capacity()
}

// MaxRegions returns the region table capacity.
func (a *Arena) MaxRegions() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ix.MaxRegions()
}

// Alloc reserves size bytes aligned to align and returns the address of the
// first byte. The span's contents are unspecified.
func (a *Arena) Alloc(size, align int) (unsafe.Pointer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stats.AllocCalls++
	off, err := a.reserve(size, align)
	if err != nil {
		return nil, err
	}
	return a.pointer(off), nil
}

// AllocZeroed is Alloc with every byte of the returned span cleared.
func (a *Arena) AllocZeroed(size, align int) (unsafe.Pointer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stats.AllocCalls++
	a.stats.ZeroCalls++
	off, err := a.reserve(size, align)
	if err != nil {
		return nil, err
	}
	clear(a.buf[off : off+size])
	return a.pointer(off), nil
}

// Free returns the span starting at p to the free space. p must come from a
// prior Alloc, AllocZeroed, or Realloc on this arena; size must match the
// allocation's current size.
func (a *Arena) Free(p unsafe.Pointer, size, align int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stats.FreeCalls++
	off, err := a.offsetOf(p)
	if err != nil {
		return err
	}
	r, err := a.ix.At(off)
	if err != nil {
		return ErrBadPointer
	}
	if r.Size != size {
		return ErrSizeMismatch
	}
	if err := a.ix.Release(off); err != nil {
		return ErrBadPointer
	}
	a.stats.BytesFreed += int64(size)
	a.stats.LiveBytes -= size
	a.stats.LiveRegions--
	return nil
}

// Realloc resizes the span at p from oldSize to newSize. Shrinking updates
// the region in place and returns p unchanged. Growing first tries to absorb
// the following free space; when that is not possible it allocates a new
// span, copies oldSize bytes, and frees the old one. On failure the original
// span is valid and untouched.
func (a *Arena) Realloc(p unsafe.Pointer, oldSize, align, newSize int) (unsafe.Pointer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stats.ReallocCalls++
	if newSize <= 0 {
		return nil, region.ErrBadSize
	}
	off, err := a.offsetOf(p)
	if err != nil {
		return nil, err
	}
	r, err := a.ix.At(off)
	if err != nil {
		return nil, ErrBadPointer
	}
	if r.Size != oldSize {
		return nil, ErrSizeMismatch
	}

	switch {
	case newSize == oldSize:
		return p, nil

	case newSize < oldSize:
		if err := a.ix.ShrinkInPlace(off, newSize); err != nil {
			return nil, err
		}
		a.stats.ShrinksInPlace++
		a.stats.BytesFreed += int64(oldSize - newSize)
		a.stats.LiveBytes -= oldSize - newSize
		return p, nil
	}

	if a.ix.GrowInPlace(off, newSize) {
		a.stats.GrowsInPlace++
		a.stats.BytesAllocated += int64(newSize - oldSize)
		a.stats.LiveBytes += newSize - oldSize
		a.notePeaks()
		return p, nil
	}

	// Relocate: reserve first so the original stays intact on failure.
	newOff, err := a.reserve(newSize, align)
	if err != nil {
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[ARENA] realloc %d->%d at off=%d: relocation failed: %v\n",
				oldSize, newSize, off, err)
		}
		return nil, err
	}
	copy(a.buf[newOff:newOff+oldSize], a.buf[off:off+oldSize])
	// Release cannot fail: off was just verified live.
	_ = a.ix.Release(off)
	a.stats.Relocations++
	a.stats.BytesFreed += int64(oldSize)
	a.stats.LiveBytes -= oldSize
	a.stats.LiveRegions--
	return a.pointer(newOff), nil
}

// Offset returns the byte offset of p within the backing store. Intended for
// tooling and diagnostics.
func (a *Arena) Offset(p unsafe.Pointer) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offsetOf(p)
}

// Snapshot returns the current span map of the backing store in offset
// order: live regions interleaved with free gaps.
func (a *Arena) Snapshot() []region.Span {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ix.Snapshot()
}

// reserve runs the region index search and bumps allocation statistics.
// Caller holds a.mu.
func (a *Arena) reserve(size, align int) (int, error) {
	off, err := a.ix.Reserve(a.base(), size, align)
	if err != nil {
		switch err {
		case region.ErrOutOfMemory:
			a.stats.FailedOOM++
		case region.ErrIndexFull:
			a.stats.FailedIndexFull++
		}
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[ARENA] alloc size=%d align=%d failed: %v (live=%d/%d, used=%d/%d)\n",
				size, align, err, a.ix.Len(), a.ix.MaxRegions(), a.ix.UsedBytes(), a.ix.Capacity())
		}
		return 0, err
	}
	a.stats.BytesAllocated += int64(size)
	a.stats.LiveBytes += size
	a.stats.LiveRegions++
	a.notePeaks()
	return off, nil
}

func (a *Arena) notePeaks() {
	if a.stats.LiveBytes > a.stats.PeakBytes {
		a.stats.PeakBytes = a.stats.LiveBytes
	}
	if a.stats.LiveRegions > a.stats.PeakRegions {
		a.stats.PeakRegions = a.stats.LiveRegions
	}
}

// base returns the absolute address of the store's first byte, or 0 for an
// empty store. Caller holds a.mu.
func (a *Arena) base() uintptr {
	if len(a.buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&a.buf[0]))
}

// pointer converts a validated offset to an address. Caller holds a.mu.
func (a *Arena) pointer(off int) unsafe.Pointer {
	return unsafe.Pointer(&a.buf[off])
}

// offsetOf converts p back to a store offset, rejecting pointers outside the
// backing store. Caller holds a.mu.
func (a *Arena) offsetOf(p unsafe.Pointer) (int, error) {
	if p == nil || len(a.buf) == 0 {
		return 0, ErrBadPointer
	}
	base := a.base()
	addr := uintptr(p)
	if addr < base || addr >= base+uintptr(len(a.buf)) {
		return 0, ErrBadPointer
	}
	return int(addr - base), nil
}
