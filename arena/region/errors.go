package region

import "errors"

var (
	// ErrOutOfMemory indicates that no free gap large enough was found after
	// alignment.
	ErrOutOfMemory = errors.New("region: no free span large enough")

	// ErrIndexFull indicates that a new table entry was needed but the index
	// is at capacity.
	ErrIndexFull = errors.New("region: index at capacity")

	// ErrNoSuchRegion indicates that no used region starts at the given offset.
	ErrNoSuchRegion = errors.New("region: no region at offset")

	// ErrBadSize indicates a non-positive size.
	ErrBadSize = errors.New("region: size must be positive")

	// ErrBadAlign indicates an alignment that is not a power of two.
	ErrBadAlign = errors.New("region: alignment must be a power of two")
)
