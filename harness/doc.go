// Package harness runs every benchmark executable repeatedly and reports a
// mean and 99% confidence interval for each.
//
// # Scheduling
//
// Runs are interleaved at random: each step picks uniformly among the
// benchmarks that still have fewer than Reps samples, runs it to completion
// as a fresh subprocess and records the single number it prints.
// Subprocesses never overlap.
//
// # Configuration
//
//	vtbench [-h] [-config file.toml] [-bin dir] [-seed n] [<reps> <iters> <vec size>]
//
// A TOML file may set any of:
//
//	reps = 30
//	iterations = 100
//	vector_size = 10000000
//	bin_dir = "bin"
//	benchmarks = ["fat-no-read", "innervtable-no-read"]
//	max_launches_per_second = 0.5
//	seed = 42
//
// Positional arguments override the file.
package harness
