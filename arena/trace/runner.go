package trace

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/arenakit/arena"
)

// Result records the outcome of one executed operation.
type Result struct {
	Op  Op
	Off int   // block offset after the op; -1 when it failed or freed
	Err error // nil on success
}

// block is the runner's view of one live named allocation.
type block struct {
	p     unsafe.Pointer
	size  int
	align int
}

// Runner executes trace operations against an arena, tracking named blocks
// across steps.
type Runner struct {
	a      *arena.Arena
	blocks map[string]block
}

// NewRunner returns a runner for the given arena.
func NewRunner(a *arena.Arena) *Runner {
	return &Runner{
		a:      a,
		blocks: make(map[string]block),
	}
}

// Live returns the number of blocks currently held by the runner.
func (r *Runner) Live() int {
	return len(r.blocks)
}

// Step executes one operation. Allocator failures (out of memory, index
// full) are recorded in the result, not returned as runner errors, so a
// trace that provokes exhaustion can still run to completion.
func (r *Runner) Step(op Op) Result {
	res := Result{Op: op, Off: -1}

	switch op.Kind {
	case KindAlloc, KindZalloc:
		if _, exists := r.blocks[op.Name]; exists {
			res.Err = fmt.Errorf("trace: line %d: block %q already live", op.Line, op.Name)
			return res
		}
		var (
			p   unsafe.Pointer
			err error
		)
		if op.Kind == KindZalloc {
			p, err = r.a.AllocZeroed(op.Size, op.Align)
		} else {
			p, err = r.a.Alloc(op.Size, op.Align)
		}
		if err != nil {
			res.Err = err
			return res
		}
		r.blocks[op.Name] = block{p: p, size: op.Size, align: op.Align}
		res.Off, _ = r.a.Offset(p)

	case KindRealloc:
		bl, ok := r.blocks[op.Name]
		if !ok {
			res.Err = fmt.Errorf("trace: line %d: realloc of unknown block %q", op.Line, op.Name)
			return res
		}
		p, err := r.a.Realloc(bl.p, bl.size, bl.align, op.Size)
		if err != nil {
			res.Err = err
			return res
		}
		r.blocks[op.Name] = block{p: p, size: op.Size, align: bl.align}
		res.Off, _ = r.a.Offset(p)

	case KindFree:
		bl, ok := r.blocks[op.Name]
		if !ok {
			res.Err = fmt.Errorf("trace: line %d: free of unknown block %q", op.Line, op.Name)
			return res
		}
		if err := r.a.Free(bl.p, bl.size, bl.align); err != nil {
			res.Err = err
			return res
		}
		delete(r.blocks, op.Name)

	default:
		res.Err = fmt.Errorf("trace: line %d: unknown operation kind %d", op.Line, op.Kind)
	}
	return res
}

// Run executes ops in order and returns one result per op.
func (r *Runner) Run(ops []Op) []Result {
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		results = append(results, r.Step(op))
	}
	return results
}

// Failures counts results carrying an error.
func Failures(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
