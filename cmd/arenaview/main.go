package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version = "dev"
)

func main() {
	capacity := flag.Int("capacity", 1<<16, "backing store size in bytes")
	regions := flag.Int("regions", 256, "maximum number of tracked regions")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		fmt.Printf("arenaview %s\n", version)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(1)
	}
	tracePath := flag.Arg(0)

	if _, err := os.Stat(tracePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: trace file not found: %s\n", tracePath)
		os.Exit(1)
	}

	m, err := NewModel(tracePath, *capacity, *regions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: arenaview [options] <trace-file>")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Steps through an allocator workload trace and visualizes the store")
	fmt.Fprintln(os.Stderr, "map as it evolves.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Keys:")
	fmt.Fprintln(os.Stderr, "  space/n  execute next operation")
	fmt.Fprintln(os.Stderr, "  b        step back one operation")
	fmt.Fprintln(os.Stderr, "  r        run the remaining operations")
	fmt.Fprintln(os.Stderr, "  R        reset to the empty store")
	fmt.Fprintln(os.Stderr, "  ?        toggle help")
	fmt.Fprintln(os.Stderr, "  q        quit")
}
