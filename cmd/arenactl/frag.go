package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena/region"
)

var fragSpans bool

func init() {
	cmd := newFragCmd()
	cmd.Flags().BoolVar(&fragSpans, "spans", false, "List every span of the store")
	rootCmd.AddCommand(cmd)
}

func newFragCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frag <trace>",
		Short: "Show the store map left behind by a workload",
		Long: `The frag command executes a workload trace and renders the resulting
store map: which byte ranges are allocated, where the gaps are, and how
fragmented the free space is.

Example:
  arenactl frag workload.trace
  arenactl frag workload.trace --spans`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrag(args[0])
		},
	}
}

func runFrag(path string) error {
	a, err := newArena()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := runTraceFile(a, path); err != nil {
		return err
	}

	spans := a.Snapshot()
	u := a.Usage()

	if jsonOut {
		return printJSON(struct {
			Trace string        `json:"trace"`
			Usage any           `json:"usage"`
			Spans []region.Span `json:"spans"`
		}{path, u, spans})
	}

	printInfo("\nStore Map: %s\n\n", path)
	printInfo("  %s\n\n", renderSpans(spans, u.Capacity))
	printUsage(u)

	if fragSpans {
		printInfo("\nSpans:\n")
		for _, s := range spans {
			printInfo("  %s\n", describeSpan(s))
		}
	}
	return nil
}
