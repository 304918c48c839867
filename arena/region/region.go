package region

// Region describes one allocated span of the backing store.
// Offsets and sizes are in bytes, relative to the store base.
type Region struct {
	Off  int
	Size int
}

// End returns the first offset past the region.
func (r Region) End() int {
	return r.Off + r.Size
}

// Contains reports whether off falls inside the region.
func (r Region) Contains(off int) bool {
	return r.Off <= off && off < r.End()
}

// Span is one entry in a full map of the backing store: either a used region
// or a free gap. A snapshot of spans covers the store exactly, in offset
// order, with no overlap.
type Span struct {
	Off  int
	Size int
	Used bool
}

// End returns the first offset past the span.
func (s Span) End() int {
	return s.Off + s.Size
}
