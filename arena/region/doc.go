// Package region implements the fixed-capacity region index that backs an
// arena allocator.
//
// # Overview
//
// The index is an ordered table of used regions - contiguous spans of the
// backing store that are currently handed out to callers. Free space is
// never recorded: it is the implicit gaps between used regions and the store
// boundaries. Because gaps are derived rather than stored, releasing a
// region merges its bytes into the surrounding free space with no table
// work, so adjacent free space can never fragment inside the table itself.
//
// # Placement
//
// Reserve scans candidate gaps in ascending offset order and picks the first
// one that can hold the request after alignment (first-fit by address).
// Alignment is computed against the absolute address of the store, not the
// offset, so pointers handed out by the arena satisfy the caller's alignment
// no matter how the backing store itself is aligned.
//
// # Capacity
//
// The table is array-backed with an explicit live count. Its capacity is
// fixed at construction and is a hard, checked bound: when a reservation
// needs a new entry and the table is full, Reserve fails with ErrIndexFull
// rather than growing. Every operation is a linear scan bounded by the
// table capacity; nothing blocks and nothing retries.
//
// The index operates purely on integer offsets. Pointer arithmetic and the
// trust placed in caller-supplied sizes live one layer up, in package arena.
package region
