package trace

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/arena"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

func runTrace(t *testing.T, a *arena.Arena, input string) []Result {
	t.Helper()
	ops, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	return NewRunner(a).Run(ops)
}

func TestRunnerBasicChurn(t *testing.T) {
	a := arena.New(2048, 16)

	results := runTrace(t, a, `
alloc a 100 1
alloc b 50 1
free a
alloc c 100 1
`)
	require.Zero(t, Failures(results))

	// First-fit puts c back where a was.
	require.Equal(t, 0, results[0].Off)
	require.Equal(t, 0, results[3].Off)
	require.Equal(t, 2, a.Stats().LiveRegions)
}

func TestRunnerRealloc(t *testing.T) {
	a := arena.New(2048, 16)

	results := runTrace(t, a, `
alloc a 64 1
alloc b 64 1
realloc a 512
free a
free b
`)
	require.Zero(t, Failures(results))
	require.NotEqual(t, results[0].Off, results[2].Off, "blocked growth relocates")
	require.Zero(t, a.Stats().LiveRegions)
}

func TestRunnerRecordsAllocatorFailures(t *testing.T) {
	a := arena.New(256, 4)

	results := runTrace(t, a, `
alloc a 200 1
alloc b 200 1
free a
`)
	require.Equal(t, 1, Failures(results))
	require.ErrorIs(t, results[1].Err, arena.ErrOutOfMemory)
	require.Equal(t, -1, results[1].Off)
	// The trace keeps executing after a failed step.
	require.NoError(t, results[2].Err)
	require.Zero(t, a.Stats().LiveRegions)
}

func TestRunnerNameErrors(t *testing.T) {
	a := arena.New(1024, 8)
	r := NewRunner(a)

	res := r.Step(Op{Kind: KindFree, Name: "ghost", Line: 1})
	require.ErrorContains(t, res.Err, "unknown block")

	res = r.Step(Op{Kind: KindAlloc, Name: "a", Size: 8, Align: 8, Line: 2})
	require.NoError(t, res.Err)
	res = r.Step(Op{Kind: KindAlloc, Name: "a", Size: 8, Align: 8, Line: 3})
	require.ErrorContains(t, res.Err, "already live")

	res = r.Step(Op{Kind: KindRealloc, Name: "ghost", Size: 16, Line: 4})
	require.ErrorContains(t, res.Err, "unknown block")

	require.Equal(t, 1, r.Live())
}

func TestRunnerZalloc(t *testing.T) {
	a := arena.New(1024, 8)

	results := runTrace(t, a, `
alloc junk 256 1
free junk
zalloc z 256 1
`)
	require.Zero(t, Failures(results))
	require.Equal(t, 0, results[2].Off)
}
