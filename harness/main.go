package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	vtbench "github.com/softdevteam/vtable-bench"
	"github.com/softdevteam/vtable-bench/bench"
	"github.com/softdevteam/vtable-bench/internal/resource"
)

// Main runs a harness session and returns the process exit code.
func Main() int {
	return run(context.Background(), os.Args, os.Getenv, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	prog := "vtbench"
	if len(args) > 0 {
		prog = filepath.Base(args[0])
		args = args[1:]
	}

	cfg, err := ParseArgs(args)
	if err != nil {
		if !errors.Is(err, ErrHelp) {
			fmt.Fprintln(stderr, err)
		}
		fmt.Fprintln(stderr, Usage(prog))
		return 1
	}

	level := vtbench.ParseLevel(getenv(bench.EnvLogLevel), slog.LevelWarn)
	logJSON, err := vtbench.ParseLogFormat(getenv(bench.EnvLogFormat))
	if err != nil {
		fmt.Fprintf(stderr, "%s: %s: %v\n", prog, bench.EnvLogFormat, err)
		return 1
	}
	logger := vtbench.NewTextLogger(level)
	if logJSON {
		logger = vtbench.NewJSONLogger(level)
	}

	names := cfg.Benchmarks
	if len(names) == 0 {
		if names, err = Discover(cfg.BinDir, prog); err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", prog, err)
			return 1
		}
	}

	metrics := &BasicMetricsCollector{}
	sched := NewScheduler(
		ExecRunner{Dir: cfg.BinDir},
		names,
		cfg,
		WithProgress(stdout),
		WithController(resource.NewController(resource.Config{LaunchesPerSecond: cfg.MaxLaunchesPerSecond})),
		WithMetrics(metrics),
		WithLogger(logger),
	)

	start := time.Now()
	series, err := sched.Run(ctx)
	fmt.Fprintln(stdout)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", prog, err)
		return 1
	}

	summaries, err := Summarize(series)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", prog, err)
		return 1
	}
	for _, s := range summaries {
		fmt.Fprintln(stdout, s)
	}

	logger.LogSummary(ctx, len(names), int(metrics.GetStats().Runs), time.Since(start))
	return 0
}
