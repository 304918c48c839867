package arena

import (
	"errors"

	"github.com/joshuapare/arenakit/arena/region"
)

var (
	// ErrOutOfMemory indicates that no free span of sufficient size and
	// alignment exists. Alias of the region sentinel so callers can match
	// either layer with errors.Is.
	ErrOutOfMemory = region.ErrOutOfMemory

	// ErrIndexFull indicates that the region table is at capacity.
	ErrIndexFull = region.ErrIndexFull

	// ErrBadPointer indicates a pointer that does not belong to this arena
	// or does not start a live allocation.
	ErrBadPointer = errors.New("arena: pointer does not match a live allocation")

	// ErrSizeMismatch indicates a caller-supplied size that differs from the
	// recorded size of the allocation.
	ErrSizeMismatch = errors.New("arena: size does not match allocation")
)
