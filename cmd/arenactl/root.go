package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	// Arena shape, shared by all commands
	capacityFlag int
	regionsFlag  int
	mappedFlag   bool
)

// pr formats counts and byte totals with digit grouping.
var pr = message.NewPrinter(language.English)

var rootCmd = &cobra.Command{
	Use:   "arenactl",
	Short: "Run and analyze workloads against a fixed-capacity arena",
	Long: `arenactl executes allocator workload traces against a fixed-capacity
arena and reports placement, utilization, and fragmentation. It is the
non-interactive companion to the 'arenaview' TUI.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		IntVar(&capacityFlag, "capacity", 1<<16, "Backing store size in bytes")
	rootCmd.PersistentFlags().
		IntVar(&regionsFlag, "regions", 256, "Maximum number of tracked regions")
	rootCmd.PersistentFlags().
		BoolVar(&mappedFlag, "mapped", false, "Back the arena with an anonymous mapping")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		pr.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		pr.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
