package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/arenakit/arena/region"
	"github.com/joshuapare/arenakit/arena/trace"
)

func TestRenderSpans(t *testing.T) {
	// Half used, half free: left half of the bar is '#', right half '.'.
	spans := []region.Span{
		{Off: 0, Size: 512, Used: true},
		{Off: 512, Size: 512},
	}
	bar := renderSpans(spans, 1024)
	require.Len(t, bar, barWidth)
	require.Equal(t, "#", string(bar[0]))
	require.Equal(t, "#", string(bar[barWidth/2-1]))
	require.Equal(t, ".", string(bar[barWidth/2]))
	require.Equal(t, ".", string(bar[barWidth-1]))

	require.Empty(t, renderSpans(nil, 0))
}

func TestRunTraceFile(t *testing.T) {
	capacityFlag = 2048
	regionsFlag = 16
	mappedFlag = false

	a, err := newArena()
	require.NoError(t, err)
	defer a.Close()

	path := filepath.Join(t.TempDir(), "w.trace")
	require.NoError(t, os.WriteFile(path,
		[]byte("alloc a 100 1\nalloc b 50 1\nfree a\nalloc c 100 1\n"), 0o600))

	results, err := runTraceFile(a, path)
	require.NoError(t, err)
	require.Len(t, results, 4)
	require.Zero(t, trace.Failures(results))
	require.Equal(t, results[0].Off, results[3].Off)
}

func TestDescribeSpan(t *testing.T) {
	require.Contains(t, describeSpan(region.Span{Off: 0, Size: 8, Used: true}), "used")
	require.Contains(t, describeSpan(region.Span{Off: 8, Size: 8}), "free")
}
