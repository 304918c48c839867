package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/arena/trace"
)

var (
	demoSteps int
	demoSeed  int64
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().IntVar(&demoSteps, "steps", 500, "Number of workload steps")
	cmd.Flags().Int64Var(&demoSeed, "seed", 1, "Workload random seed")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a built-in churn workload",
		Long: `The demo command runs a synthetic allocate/free/realloc churn workload
against a fresh arena, then prints the same report as 'run'. Useful for a
quick look at allocator behavior without writing a trace file.

Example:
  arenactl demo
  arenactl demo --steps 2000 --capacity 262144`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

func runDemo() error {
	a, err := newArena()
	if err != nil {
		return err
	}
	defer a.Close()

	rng := rand.New(rand.NewSource(demoSeed))
	r := trace.NewRunner(a)

	var live []string
	next := 0
	var results []trace.Result

	for i := 0; i < demoSteps; i++ {
		switch {
		case len(live) > 0 && rng.Intn(3) == 0:
			j := rng.Intn(len(live))
			results = append(results, r.Step(trace.Op{
				Kind: trace.KindFree,
				Name: live[j],
			}))
			live = append(live[:j], live[j+1:]...)

		case len(live) > 0 && rng.Intn(4) == 0:
			j := rng.Intn(len(live))
			results = append(results, r.Step(trace.Op{
				Kind: trace.KindRealloc,
				Name: live[j],
				Size: 1 + rng.Intn(2048),
			}))

		default:
			name := fmt.Sprintf("b%d", next)
			next++
			res := r.Step(trace.Op{
				Kind:  trace.KindAlloc,
				Name:  name,
				Size:  1 + rng.Intn(1024),
				Align: 8,
			})
			results = append(results, res)
			if res.Err == nil {
				live = append(live, name)
			}
		}
	}

	printInfo("Store map after %d steps:\n\n  %s\n",
		len(results), renderSpans(a.Snapshot(), a.Capacity()))

	return printReport(Report{
		Operations: len(results),
		Failures:   trace.Failures(results),
		Stats:      a.Stats(),
		Usage:      a.Usage(),
	})
}
