// Package vtbench measures the cost of dynamic dispatch over large collections
// of heterogeneous objects under different pointer/method-table layouts.
//
// Each benchmark is its own executable (see cmd/). A benchmark builds a
// collection of N objects with one layout strategy, times a fixed number of
// passes over it, and prints the elapsed seconds as a single line:
//
//	$ go build -o bin/ ./cmd/...
//	$ bin/innervtable-with-read 100 10000000
//	0.912830041
//
// The statistics harness runs every benchmark found in bin/ repeatedly, in
// random order, and reports a mean with a 99% confidence interval:
//
//	$ bin/vtbench 30 100 10000000
//	........
//	fat-no-read: 0.871 +/- 0.0042
//
// # Layouts
//
//   - fat: one independently allocated object per element, held through an
//     interface value (two words: method table + data).
//   - fat-multiref: every element is the same interface value.
//   - innervtable: one word per element pointing at a block whose first word
//     is the method table and whose remainder is the object.
//   - innervtable-multiref: every element points at the same block.
//
// Each layout runs with a value kind that never reads its field (no-read) and
// one that always does (with-read).
//
// # Packages
//
//   - value: the two value kinds and their sentinels
//   - dispatch: method table tokens, fat and thin handles
//   - strategy: the four layouts
//   - timing: pass timing and output
//   - bench: the benchmark process entry point
//   - harness: the statistics harness
package vtbench
