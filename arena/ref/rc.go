package ref

import (
	"unsafe"

	"github.com/joshuapare/arenakit/arena"
)

// control is the arena-allocated block behind an Rc: the value plus its
// reference counts. The block is freed when both counts reach zero.
type control[T any] struct {
	val    T
	strong int
	weak   int
}

// Rc is a shared-ownership handle to a value allocated in an arena. Copies
// made with Clone share the value; the value's memory is returned to the
// arena when the last strong handle is released and no weak handles remain.
type Rc[T any] struct {
	a *arena.Arena
	c *control[T]
}

// NewRc places val in the arena with a strong count of one.
func NewRc[T any](a *arena.Arena, val T) (Rc[T], error) {
	p, err := a.Alloc(sizeOf[control[T]](), alignOf[control[T]]())
	if err != nil {
		return Rc[T]{}, err
	}
	c := (*control[T])(p)
	*c = control[T]{val: val, strong: 1}
	return Rc[T]{a: a, c: c}, nil
}

// Value returns a pointer to the shared value. Valid while any strong
// handle remains unreleased.
func (r Rc[T]) Value() *T {
	return &r.c.val
}

// Clone returns a new strong handle to the same value.
func (r Rc[T]) Clone() Rc[T] {
	r.c.strong++
	return r
}

// Strong returns the current strong count.
func (r Rc[T]) Strong() int {
	return r.c.strong
}

// Weak returns the current weak count.
func (r Rc[T]) Weak() int {
	return r.c.weak
}

// Downgrade returns a weak handle that observes the value without keeping
// it alive.
func (r Rc[T]) Downgrade() Weak[T] {
	r.c.weak++
	return Weak[T]{a: r.a, c: r.c}
}

// Release drops this strong handle. When it was the last one and no weak
// handles remain, the control block is returned to the arena. The handle
// must not be used afterwards.
func (r Rc[T]) Release() error {
	if r.c == nil || r.c.strong == 0 {
		return ErrReleased
	}
	r.c.strong--
	if r.c.strong == 0 && r.c.weak == 0 {
		return r.free()
	}
	return nil
}

func (r Rc[T]) free() error {
	return r.a.Free(unsafe.Pointer(r.c), sizeOf[control[T]](), alignOf[control[T]]())
}

// Weak is a non-owning handle to an Rc-managed value.
type Weak[T any] struct {
	a *arena.Arena
	c *control[T]
}

// Upgrade returns a strong handle when the value is still alive. Reports
// false after the last strong handle was released.
func (w Weak[T]) Upgrade() (Rc[T], bool) {
	if w.c == nil || w.c.strong == 0 {
		return Rc[T]{}, false
	}
	w.c.strong++
	return Rc[T]{a: w.a, c: w.c}, true
}

// Release drops this weak handle, freeing the control block when it was the
// last handle of any kind.
func (w Weak[T]) Release() error {
	if w.c == nil || w.c.weak == 0 {
		return ErrReleased
	}
	w.c.weak--
	if w.c.strong == 0 && w.c.weak == 0 {
		return Rc[T]{a: w.a, c: w.c}.free()
	}
	return nil
}
