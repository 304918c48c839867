// Package align provides alignment and overflow helpers shared by the
// allocator packages.
package align

import "math"

// IsPow2 reports whether n is a power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Up returns n rounded up to the next multiple of align.
// align must be a power of two.
//
// Example:
//
//	Up(1, 8)  = 8
//	Up(8, 8)  = 8
//	Up(9, 8)  = 16
func Up(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// UpAddr returns addr rounded up to the next multiple of align.
// align must be a power of two.
func UpAddr(addr, align uintptr) uintptr {
	return (addr + align - 1) &^ (align - 1)
}

// AddOverflowSafe adds a and b, returning ok = false when the result would
// overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}
