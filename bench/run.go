package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	vtbench "github.com/softdevteam/vtable-bench"
	"github.com/softdevteam/vtable-bench/internal/arena"
	"github.com/softdevteam/vtable-bench/internal/resource"
	"github.com/softdevteam/vtable-bench/timing"
)

// Run builds the named benchmark's collection, times cfg.Iterations passes
// over it, tears it down and writes the elapsed seconds to stdout.
//
// Nothing is written unless teardown released every block. Wrong values and
// leaked or double-freed blocks panic.
func Run(ctx context.Context, name string, cfg Config, stdout io.Writer, logger *vtbench.Logger) error {
	b, err := Lookup(name)
	if err != nil {
		return err
	}
	if logger == nil {
		logger = vtbench.NoopLogger()
	}
	logger = logger.WithBenchmark(name).WithIterations(cfg.Iterations).WithVectorSize(cfg.VectorSize)

	rc := resource.NewController(resource.Config{MemoryLimitBytes: cfg.MemoryLimit})
	opts := []arena.Option{arena.WithMemoryAcquirer(rc)}
	if cfg.TrackBlocks {
		opts = append(opts, arena.WithTracking())
	}
	a, err := arena.New(0, opts...)
	if err != nil {
		return err
	}

	s := b.Factory(a, cfg.VectorSize)

	start := time.Now()
	err = s.Build()
	logger.LogBuild(ctx, cfg.VectorSize, time.Since(start), err)
	if err != nil {
		_ = a.Close()
		return fmt.Errorf("build %s: %w", name, err)
	}

	logger.DebugContext(ctx, "arena after build", "arena", a.String(), "usage_percent", a.Usage())

	d := timing.Time(cfg.Iterations, s.Pass)

	s.Teardown()
	stats := a.Stats()
	logger.LogTeardown(ctx, stats.TotalFrees, stats.LiveBlocks)

	if err := a.Close(); err != nil {
		if errors.Is(err, arena.ErrLeak) {
			panic(fmt.Sprintf("bench %s: %v", name, err))
		}
		return fmt.Errorf("release %s: %w", name, err)
	}

	return timing.Report(stdout, d)
}

// Main runs the named benchmark with the process arguments and environment
// and returns the exit status.
func Main(name string) int {
	return run(name, os.Args, os.Getenv, os.Stdout, os.Stderr)
}

func run(name string, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	prog := name
	if len(args) > 0 {
		prog = filepath.Base(args[0])
		args = args[1:]
	}

	cfg, err := ParseArgs(args, getenv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintf(stderr, "Usage: %s <iterations> <vector_size>\n", prog)
		return 1
	}

	logger := vtbench.NewTextLogger(cfg.LogLevel)
	if cfg.LogJSON {
		logger = vtbench.NewJSONLogger(cfg.LogLevel)
	}
	if err := Run(context.Background(), name, cfg, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", prog, err)
		return 1
	}
	return 0
}
