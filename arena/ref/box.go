package ref

import (
	"errors"
	"unsafe"

	"github.com/joshuapare/arenakit/arena"
)

// ErrReleased indicates use of a handle whose allocation was already
// returned to the arena.
var ErrReleased = errors.New("ref: handle already released")

// Box owns a single value of type T allocated in an arena.
type Box[T any] struct {
	a *arena.Arena
	p *T
}

// NewBox places val in the arena and returns an owning handle.
func NewBox[T any](a *arena.Arena, val T) (*Box[T], error) {
	p, err := a.Alloc(sizeOf[T](), alignOf[T]())
	if err != nil {
		return nil, err
	}
	tp := (*T)(p)
	*tp = val
	return &Box[T]{a: a, p: tp}, nil
}

// NewBoxZeroed places the zero value of T in the arena.
func NewBoxZeroed[T any](a *arena.Arena) (*Box[T], error) {
	p, err := a.AllocZeroed(sizeOf[T](), alignOf[T]())
	if err != nil {
		return nil, err
	}
	return &Box[T]{a: a, p: (*T)(p)}, nil
}

// Value returns a pointer to the boxed value. The pointer stays valid until
// Free; it must not be retained past it.
func (b *Box[T]) Value() *T {
	return b.p
}

// Free returns the value's memory to the arena. The handle and any pointers
// obtained from Value are invalid afterwards.
func (b *Box[T]) Free() error {
	if b.p == nil {
		return ErrReleased
	}
	err := b.a.Free(unsafe.Pointer(b.p), sizeOf[T](), alignOf[T]())
	b.p = nil
	return err
}

// sizeOf returns the allocation size for T. Zero-sized types still occupy
// one byte so every box has a distinct address.
func sizeOf[T any]() int {
	var z T
	if n := int(unsafe.Sizeof(z)); n > 0 {
		return n
	}
	return 1
}

func alignOf[T any]() int {
	var z T
	return int(unsafe.Alignof(z))
}
