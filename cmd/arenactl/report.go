package main

import (
	"fmt"
	"strings"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/arena/region"
	"github.com/joshuapare/arenakit/arena/trace"
)

// barWidth is the width of the rendered store map in characters.
const barWidth = 64

// Report is the JSON-friendly summary of one executed workload.
type Report struct {
	Trace      string `json:"trace,omitempty"`
	Operations int    `json:"operations"`
	Failures   int    `json:"failures"`

	Stats arena.Stats `json:"stats"`
	Usage arena.Usage `json:"usage"`
}

// newArena builds an arena from the global shape flags.
func newArena() (*arena.Arena, error) {
	if mappedFlag {
		return arena.NewMapped(capacityFlag, regionsFlag)
	}
	return arena.New(capacityFlag, regionsFlag), nil
}

// runTraceFile parses and executes the trace at path, printing per-op lines
// in verbose mode.
func runTraceFile(a *arena.Arena, path string) ([]trace.Result, error) {
	ops, err := trace.ParseFile(path)
	if err != nil {
		return nil, err
	}
	printVerbose("Loaded %d operations from %s\n", len(ops), path)

	r := trace.NewRunner(a)
	results := make([]trace.Result, 0, len(ops))
	for _, op := range ops {
		res := r.Step(op)
		results = append(results, res)
		if res.Err != nil {
			printVerbose("  line %d: %s %s: FAILED: %v\n",
				op.Line, op.Kind, op.Name, res.Err)
		} else if op.Kind == trace.KindFree {
			printVerbose("  line %d: %s %s\n", op.Line, op.Kind, op.Name)
		} else {
			printVerbose("  line %d: %s %s -> offset %d\n",
				op.Line, op.Kind, op.Name, res.Off)
		}
	}
	return results, nil
}

func printReport(rep Report) error {
	if jsonOut {
		return printJSON(rep)
	}

	if rep.Trace != "" {
		printInfo("\nWorkload Report: %s\n", rep.Trace)
	} else {
		printInfo("\nWorkload Report\n")
	}
	printInfo("%s\n\n", strings.Repeat("=", 40))

	printInfo("Operations:\n")
	printInfo("  Executed: %d (failed: %d)\n", rep.Operations, rep.Failures)
	printInfo("  Alloc: %d (zeroed: %d)  Free: %d  Realloc: %d\n",
		rep.Stats.AllocCalls, rep.Stats.ZeroCalls, rep.Stats.FreeCalls, rep.Stats.ReallocCalls)
	printInfo("  Realloc paths: %d grew in place, %d shrank, %d relocated\n",
		rep.Stats.GrowsInPlace, rep.Stats.ShrinksInPlace, rep.Stats.Relocations)
	printInfo("  Refused: %d out-of-memory, %d index-full\n\n",
		rep.Stats.FailedOOM, rep.Stats.FailedIndexFull)

	printInfo("Bytes:\n")
	printInfo("  Handed out: %d  Returned: %d\n", rep.Stats.BytesAllocated, rep.Stats.BytesFreed)
	printInfo("  Live: %d of %d (peak %d)\n\n",
		rep.Stats.LiveBytes, rep.Usage.Capacity, rep.Stats.PeakBytes)

	printInfo("Regions:\n")
	printInfo("  Live: %d of %d (peak %d)\n\n",
		rep.Usage.Regions, rep.Usage.MaxRegions, rep.Stats.PeakRegions)

	printUsage(rep.Usage)
	return nil
}

func printUsage(u arena.Usage) {
	printInfo("Store:\n")
	printInfo("  Utilization: %.1f%%\n", u.Utilization*100)
	printInfo("  Free: %d bytes in %d gaps (largest %d)\n",
		u.FreeBytes, u.Gaps, u.LargestGap)
	printInfo("  Fragmentation: %.1f%%\n", u.Frag*100)
}

// renderSpans draws the span map as a fixed-width bar, '#' for used bytes
// and '.' for free ones. Each character covers capacity/barWidth bytes and
// is marked used when any byte under it is used.
func renderSpans(spans []region.Span, capacity int) string {
	if capacity <= 0 {
		return ""
	}
	cells := make([]byte, barWidth)
	for i := range cells {
		cells[i] = '.'
	}
	for _, s := range spans {
		if !s.Used {
			continue
		}
		lo := s.Off * barWidth / capacity
		hi := (s.End() - 1) * barWidth / capacity
		for i := lo; i <= hi && i < barWidth; i++ {
			cells[i] = '#'
		}
	}
	return string(cells)
}

// describeSpan formats one span for the map listing.
func describeSpan(s region.Span) string {
	state := "free"
	if s.Used {
		state = "used"
	}
	return fmt.Sprintf("[%8d, %8d) %8d bytes  %s", s.Off, s.End(), s.Size, state)
}
