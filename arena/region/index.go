package region

import (
	"github.com/joshuapare/arenakit/internal/align"
)

// Index is a fixed-capacity ordered table of used regions partitioning a
// backing store of a known byte capacity. Entries are kept sorted by offset
// ascending; the live count never exceeds the table capacity.
//
// Index is not safe for concurrent use. The owning arena serializes access.
type Index struct {
	capacity int      // backing store size in bytes
	regions  []Region // backing array, entries [0:n) are live and sorted
	n        int
}

// NewIndex returns an empty index for a store of capacity bytes, tracking at
// most maxRegions simultaneous regions. An empty index means the whole store
// is one free gap.
func NewIndex(capacity, maxRegions int) *Index {
	if capacity < 0 {
		capacity = 0
	}
	if maxRegions < 1 {
		maxRegions = 1
	}
	return &Index{
		capacity: capacity,
		regions:  make([]Region, maxRegions),
	}
}

// Capacity returns the backing store size in bytes.
func (ix *Index) Capacity() int {
	return ix.capacity
}

// Len returns the number of live regions.
func (ix *Index) Len() int {
	return ix.n
}

// MaxRegions returns the table capacity.
func (ix *Index) MaxRegions() int {
	return len(ix.regions)
}

// Reserve finds the first gap, in ascending offset order, that can hold size
// bytes at the requested alignment and records a used region there. base is
// the absolute address of the store's first byte; the chosen offset satisfies
// (base+offset) % align == 0.
//
// Returns ErrOutOfMemory when no gap fits, ErrIndexFull when a gap fits but
// the table has no free slot. The store contents are never touched.
func (ix *Index) Reserve(base uintptr, size, alignment int) (int, error) {
	if size <= 0 {
		return 0, ErrBadSize
	}
	if !align.IsPow2(alignment) {
		return 0, ErrBadAlign
	}

	gapStart := 0
	for i := 0; i <= ix.n; i++ {
		gapEnd := ix.capacity
		if i < ix.n {
			gapEnd = ix.regions[i].Off
		}

		// First offset >= gapStart whose absolute address is aligned.
		off := int(align.UpAddr(base+uintptr(gapStart), uintptr(alignment)) - base)

		if end, ok := align.AddOverflowSafe(off, size); ok && end <= gapEnd {
			if ix.n == len(ix.regions) {
				return 0, ErrIndexFull
			}
			ix.insert(i, Region{Off: off, Size: size})
			return off, nil
		}

		if i < ix.n {
			gapStart = ix.regions[i].End()
		}
	}
	return 0, ErrOutOfMemory
}

// Release removes the used region starting exactly at off, folding its bytes
// back into the surrounding free space. Offsets that do not start a live
// region return ErrNoSuchRegion.
func (ix *Index) Release(off int) error {
	i, ok := ix.find(off)
	if !ok {
		return ErrNoSuchRegion
	}
	copy(ix.regions[i:ix.n-1], ix.regions[i+1:ix.n])
	ix.n--
	ix.regions[ix.n] = Region{}
	return nil
}

// At returns the used region starting exactly at off.
func (ix *Index) At(off int) (Region, error) {
	i, ok := ix.find(off)
	if !ok {
		return Region{}, ErrNoSuchRegion
	}
	return ix.regions[i], nil
}

// GrowInPlace extends the region at off to newSize when the bytes
// immediately following it are free. Reports whether the extension happened;
// the region is untouched otherwise.
func (ix *Index) GrowInPlace(off, newSize int) bool {
	i, ok := ix.find(off)
	if !ok {
		return false
	}
	r := ix.regions[i]
	if newSize <= r.Size {
		return false
	}
	limit := ix.capacity
	if i+1 < ix.n {
		limit = ix.regions[i+1].Off
	}
	end, ok := align.AddOverflowSafe(r.Off, newSize)
	if !ok || end > limit {
		return false
	}
	ix.regions[i].Size = newSize
	return true
}

// ShrinkInPlace reduces the region at off to newSize, releasing its tail
// back as free space. newSize must be positive and no larger than the
// current size.
func (ix *Index) ShrinkInPlace(off, newSize int) error {
	if newSize <= 0 {
		return ErrBadSize
	}
	i, ok := ix.find(off)
	if !ok {
		return ErrNoSuchRegion
	}
	if newSize > ix.regions[i].Size {
		return ErrBadSize
	}
	ix.regions[i].Size = newSize
	return nil
}

// UsedBytes returns the total bytes held by live regions.
func (ix *Index) UsedBytes() int {
	total := 0
	for i := 0; i < ix.n; i++ {
		total += ix.regions[i].Size
	}
	return total
}

// Snapshot returns spans covering the whole store in offset order: live
// regions interleaved with the free gaps between them. Zero-length gaps are
// omitted.
func (ix *Index) Snapshot() []Span {
	spans := make([]Span, 0, 2*ix.n+1)
	gapStart := 0
	for i := 0; i < ix.n; i++ {
		r := ix.regions[i]
		if r.Off > gapStart {
			spans = append(spans, Span{Off: gapStart, Size: r.Off - gapStart})
		}
		spans = append(spans, Span{Off: r.Off, Size: r.Size, Used: true})
		gapStart = r.End()
	}
	if gapStart < ix.capacity {
		spans = append(spans, Span{Off: gapStart, Size: ix.capacity - gapStart})
	}
	return spans
}

// find returns the position of the region starting exactly at off.
// Linear scan: the table is small by construction.
func (ix *Index) find(off int) (int, bool) {
	for i := 0; i < ix.n; i++ {
		if ix.regions[i].Off == off {
			return i, true
		}
		if ix.regions[i].Off > off {
			break
		}
	}
	return 0, false
}

// insert places r at position i, shifting later entries up.
// The caller guarantees a free slot and that i preserves offset order.
func (ix *Index) insert(i int, r Region) {
	copy(ix.regions[i+1:ix.n+1], ix.regions[i:ix.n])
	ix.regions[i] = r
	ix.n++
}
