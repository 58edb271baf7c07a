// Command vtbench runs every benchmark executable in a directory many times,
// in random order, and prints each one's mean and 99% confidence interval.
//
// Usage:
//
//	vtbench [-h] [-config <file>] [-bin <dir>] [-seed <n>] [<#reps> <#iters> <#vec size>]
//
// With no positional arguments it runs 30 repetitions of 100 iterations over
// 10,000,000 elements.
package main

import (
	"os"

	"github.com/softdevteam/vtable-bench/harness"
)

func main() {
	os.Exit(harness.Main())
}
