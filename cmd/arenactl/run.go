package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena/trace"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <trace>",
		Short: "Execute a workload trace and report on it",
		Long: `The run command executes an allocator workload trace against a fresh
arena and prints allocation, utilization, and fragmentation statistics.

Example:
  arenactl run workload.trace
  arenactl run workload.trace --capacity 1048576 --regions 512
  arenactl run workload.trace --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args[0])
		},
	}
}

func runRun(path string) error {
	a, err := newArena()
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := runTraceFile(a, path)
	if err != nil {
		return err
	}

	return printReport(Report{
		Trace:      path,
		Operations: len(results),
		Failures:   trace.Failures(results),
		Stats:      a.Stats(),
		Usage:      a.Usage(),
	})
}
