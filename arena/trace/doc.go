// Package trace parses and executes allocator workload traces.
//
// A trace is a line-oriented text file describing a sequence of allocator
// operations against named blocks:
//
//	# churn two blocks
//	alloc a 100
//	zalloc b 256 16
//	realloc a 300
//	free b
//
// Lines are one operation each: "alloc NAME SIZE [ALIGN]" and
// "zalloc NAME SIZE [ALIGN]" create a block (ALIGN defaults to 8),
// "realloc NAME SIZE" resizes it, "free NAME" releases it. Blank lines and
// lines starting with # are ignored.
//
// Runner executes parsed operations against an arena and records the offset
// outcome and error of each step, which is what arenactl and arenaview
// report on.
package trace
