package arena

// Stats holds cumulative allocator counters. All counts are since
// construction; Live* and Peak* describe allocation state.
type Stats struct {
	AllocCalls   int // Alloc + AllocZeroed calls
	ZeroCalls    int // AllocZeroed calls
	FreeCalls    int // Free calls
	ReallocCalls int // Realloc calls

	GrowsInPlace   int // Reallocs that absorbed the following gap
	ShrinksInPlace int // Reallocs that released a tail
	Relocations    int // Reallocs that moved the span

	FailedOOM       int // Requests refused for lack of free space
	FailedIndexFull int // Requests refused for lack of a table slot

	BytesAllocated int64 // Total bytes handed out
	BytesFreed     int64 // Total bytes returned

	LiveBytes   int // Bytes currently allocated
	LiveRegions int // Regions currently allocated
	PeakBytes   int // High-water mark of LiveBytes
	PeakRegions int // High-water mark of LiveRegions
}

// Stats returns a copy of the arena's counters.
func (a *Arena) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Usage describes how the backing store and region table are occupied at a
// point in time. Produced by (*Arena).Usage for reporting and tooling.
type Usage struct {
	Capacity   int // backing store size in bytes
	LiveBytes  int // bytes currently allocated
	FreeBytes  int // Capacity - LiveBytes
	Regions    int // live region count
	MaxRegions int // region table capacity

	Gaps       int     // number of free gaps
	LargestGap int     // size of the largest free gap in bytes
	Frag       float64 // 1 - LargestGap/FreeBytes; 0 when FreeBytes is 0

	Utilization float64 // LiveBytes / Capacity; 0 for an empty store
}

// Usage computes an occupancy and fragmentation report from the current
// span map.
func (a *Arena) Usage() Usage {
	a.mu.Lock()
	defer a.mu.Unlock()

	u := Usage{
		Capacity:   a.ix.Capacity(),
		LiveBytes:  a.ix.UsedBytes(),
		Regions:    a.ix.Len(),
		MaxRegions: a.ix.MaxRegions(),
	}
	u.FreeBytes = u.Capacity - u.LiveBytes

	for _, s := range a.ix.Snapshot() {
		if s.Used {
			continue
		}
		u.Gaps++
		if s.Size > u.LargestGap {
			u.LargestGap = s.Size
		}
	}
	if u.FreeBytes > 0 {
		u.Frag = 1 - float64(u.LargestGap)/float64(u.FreeBytes)
	}
	if u.Capacity > 0 {
		u.Utilization = float64(u.LiveBytes) / float64(u.Capacity)
	}
	return u
}
