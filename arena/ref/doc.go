// Package ref provides typed handles over arena allocations.
//
// Box is single ownership: one value placed in an arena, released
// explicitly. Rc is shared ownership: the value lives in an arena-allocated
// control block next to its strong and weak counts, and the block is
// returned to the arena when the last handle releases it. Weak observes an
// Rc's value without keeping it alive, which breaks reference cycles.
//
// Go has no destructors, so release is explicit: each handle must be
// released exactly once, and no handle may be used after its release. The
// counts are kept without atomics; handles sharing a control block must be
// released from one goroutine, or under caller-provided synchronization.
//
// Values placed in an arena are invisible to the garbage collector. A boxed
// value may point at other arena-held values (the arena's buffer keeps them
// alive), but it must not hold the only reference to an ordinary Go object.
package ref
