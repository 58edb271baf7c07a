// Package bench is the body of every benchmark executable.
//
// A benchmark process takes two positional arguments, the number of passes
// and the number of elements:
//
//	fat-with-read <iterations> <vector_size>
//
// It builds the collection, times the passes, tears the collection down and
// prints the elapsed seconds as the only line on stdout. Configuration errors
// exit with status 1 and a usage message on stderr. A layout that returns a
// wrong value panics, so the process dies without printing a measurement.
//
// Four environment variables tune the process without changing what is timed:
//
//   - VTBENCH_MEMORY_LIMIT: upper bound, in bytes, on arena memory
//   - VTBENCH_LOG_LEVEL: debug, info, warn (default) or error
//   - VTBENCH_LOG_FORMAT: text (default) or json
//   - VTBENCH_TRACK_BLOCKS: when set to 1 or true, every block is tracked and a
//     double free or leaked block aborts the process
package bench
