package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// reserveAll reserves each (size, align) pair in order and returns the offsets.
func reserveAll(t *testing.T, ix *Index, reqs ...[2]int) []int {
	t.Helper()
	offs := make([]int, 0, len(reqs))
	for _, req := range reqs {
		off, err := ix.Reserve(0, req[0], req[1])
		require.NoError(t, err)
		offs = append(offs, off)
	}
	return offs
}

func TestReserveFirstFit(t *testing.T) {
	ix := NewIndex(128, 8)

	offs := reserveAll(t, ix, [2]int{16, 1}, [2]int{32, 1}, [2]int{8, 1})
	require.Equal(t, []int{0, 16, 48}, offs)
	require.Equal(t, 3, ix.Len())

	// Release the middle region, then a smaller request lands in its gap.
	require.NoError(t, ix.Release(16))
	off, err := ix.Reserve(0, 24, 1)
	require.NoError(t, err)
	require.Equal(t, 16, off)
}

func TestReserveAlignment(t *testing.T) {
	ix := NewIndex(128, 8)

	// Occupy [0,8) so the next gap starts at an unaligned offset for align=16.
	off, err := ix.Reserve(0, 8, 1)
	require.NoError(t, err)
	require.Equal(t, 0, off)

	off, err = ix.Reserve(0, 16, 16)
	require.NoError(t, err)
	require.Equal(t, 16, off)

	// Alignment is computed against the absolute address, not the offset.
	ix2 := NewIndex(128, 8)
	_, err = ix2.Reserve(8, 16, 1)
	require.NoError(t, err)
	off, err = ix2.Reserve(8, 16, 16)
	require.NoError(t, err)
	require.Equal(t, 0, (8+off)%16)
}

func TestReserveBadInput(t *testing.T) {
	ix := NewIndex(64, 4)

	_, err := ix.Reserve(0, 0, 1)
	require.ErrorIs(t, err, ErrBadSize)

	_, err = ix.Reserve(0, -5, 1)
	require.ErrorIs(t, err, ErrBadSize)

	_, err = ix.Reserve(0, 8, 3)
	require.ErrorIs(t, err, ErrBadAlign)

	_, err = ix.Reserve(0, 8, 0)
	require.ErrorIs(t, err, ErrBadAlign)
}

func TestReserveOutOfMemory(t *testing.T) {
	ix := NewIndex(64, 8)

	_, err := ix.Reserve(0, 65, 1)
	require.ErrorIs(t, err, ErrOutOfMemory)

	// Fill the store completely, then any request fails.
	off, err := ix.Reserve(0, 64, 1)
	require.NoError(t, err)
	require.Equal(t, 0, off)

	_, err = ix.Reserve(0, 1, 1)
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func TestReserveIndexFull(t *testing.T) {
	ix := NewIndex(1024, 4)

	reserveAll(t, ix, [2]int{8, 1}, [2]int{8, 1}, [2]int{8, 1}, [2]int{8, 1})
	require.Equal(t, 4, ix.Len())

	// Byte capacity remains, but the table has no free slot.
	_, err := ix.Reserve(0, 8, 1)
	require.ErrorIs(t, err, ErrIndexFull)

	// Releasing one entry makes the slot reusable.
	require.NoError(t, ix.Release(0))
	off, err := ix.Reserve(0, 8, 1)
	require.NoError(t, err)
	require.Equal(t, 0, off)
}

func TestReleaseCoalescesImplicitly(t *testing.T) {
	ix := NewIndex(64, 8)

	offs := reserveAll(t, ix, [2]int{16, 1}, [2]int{16, 1}, [2]int{16, 1})

	// Free A and B; their spans must be indistinguishable from one 32-byte gap.
	require.NoError(t, ix.Release(offs[0]))
	require.NoError(t, ix.Release(offs[1]))

	off, err := ix.Reserve(0, 32, 1)
	require.NoError(t, err)
	require.Equal(t, 0, off)
}

func TestReleaseExactMatchOnly(t *testing.T) {
	ix := NewIndex(64, 8)

	off, err := ix.Reserve(0, 16, 1)
	require.NoError(t, err)

	require.ErrorIs(t, ix.Release(off+1), ErrNoSuchRegion)
	require.ErrorIs(t, ix.Release(off+8), ErrNoSuchRegion)
	require.NoError(t, ix.Release(off))
	require.ErrorIs(t, ix.Release(off), ErrNoSuchRegion)
	require.Equal(t, 0, ix.Len())
}

func TestGrowInPlace(t *testing.T) {
	ix := NewIndex(128, 8)

	offs := reserveAll(t, ix, [2]int{16, 1}, [2]int{16, 1})

	// The first region is followed by a used region: cannot grow.
	require.False(t, ix.GrowInPlace(offs[0], 24))

	// The second region is followed by free space up to capacity.
	require.True(t, ix.GrowInPlace(offs[1], 64))
	r, err := ix.At(offs[1])
	require.NoError(t, err)
	require.Equal(t, 64, r.Size)

	// Growing past capacity fails and leaves the region untouched.
	require.False(t, ix.GrowInPlace(offs[1], 1024))
	r, err = ix.At(offs[1])
	require.NoError(t, err)
	require.Equal(t, 64, r.Size)

	// After freeing the neighbor, the first region can absorb its span.
	require.NoError(t, ix.Release(offs[1]))
	require.True(t, ix.GrowInPlace(offs[0], 128))
}

func TestShrinkInPlace(t *testing.T) {
	ix := NewIndex(64, 8)

	off, err := ix.Reserve(0, 32, 1)
	require.NoError(t, err)

	require.NoError(t, ix.ShrinkInPlace(off, 8))
	r, err := ix.At(off)
	require.NoError(t, err)
	require.Equal(t, 8, r.Size)

	// The released tail is immediately reusable.
	tail, err := ix.Reserve(0, 24, 1)
	require.NoError(t, err)
	require.Equal(t, 8, tail)

	require.ErrorIs(t, ix.ShrinkInPlace(off, 0), ErrBadSize)
	require.ErrorIs(t, ix.ShrinkInPlace(off, 9), ErrBadSize)
	require.ErrorIs(t, ix.ShrinkInPlace(1234, 4), ErrNoSuchRegion)
}

func TestSnapshot(t *testing.T) {
	ix := NewIndex(64, 8)

	// Empty index: one gap covering the whole store.
	require.Equal(t, []Span{{Off: 0, Size: 64}}, ix.Snapshot())

	offs := reserveAll(t, ix, [2]int{16, 1}, [2]int{16, 1}, [2]int{16, 1})
	require.NoError(t, ix.Release(offs[1]))

	want := []Span{
		{Off: 0, Size: 16, Used: true},
		{Off: 16, Size: 16},
		{Off: 32, Size: 16, Used: true},
		{Off: 48, Size: 16},
	}
	require.Equal(t, want, ix.Snapshot())

	// Spans tile the store exactly.
	total := 0
	for _, s := range ix.Snapshot() {
		require.Equal(t, total, s.Off)
		total += s.Size
	}
	require.Equal(t, ix.Capacity(), total)
}

func TestUsedBytes(t *testing.T) {
	ix := NewIndex(256, 8)
	require.Equal(t, 0, ix.UsedBytes())

	offs := reserveAll(t, ix, [2]int{32, 1}, [2]int{16, 1})
	require.Equal(t, 48, ix.UsedBytes())

	require.NoError(t, ix.Release(offs[0]))
	require.Equal(t, 16, ix.UsedBytes())
}

func TestRegionsNeverOverlap(t *testing.T) {
	ix := NewIndex(2048, 32)

	// Churn: interleaved reserves and releases with varying alignment.
	live := make(map[int]int) // off -> size
	seq := []struct {
		reserve bool
		size    int
		align   int
	}{
		{true, 100, 1}, {true, 50, 8}, {true, 200, 16}, {false, 0, 0},
		{true, 64, 64}, {true, 30, 2}, {false, 0, 0}, {true, 500, 4},
		{true, 12, 1}, {false, 0, 0}, {true, 256, 32},
	}
	var order []int
	for _, step := range seq {
		if step.reserve {
			off, err := ix.Reserve(0, step.size, step.align)
			require.NoError(t, err)
			live[off] = step.size
			order = append(order, off)
		} else {
			victim := order[0]
			order = order[1:]
			require.NoError(t, ix.Release(victim))
			delete(live, victim)
		}

		// Every pair of live regions is disjoint and in bounds.
		for a, asz := range live {
			require.LessOrEqual(t, a+asz, ix.Capacity())
			for b, bsz := range live {
				if a == b {
					continue
				}
				require.True(t, a+asz <= b || b+bsz <= a,
					"overlap: [%d,%d) and [%d,%d)", a, a+asz, b, b+bsz)
			}
		}
	}
}
