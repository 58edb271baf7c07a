package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"time"

	vtbench "github.com/softdevteam/vtable-bench"
	"github.com/softdevteam/vtable-bench/internal/resource"
)

// Series maps a benchmark name to its measurements in run order.
type Series map[string][]float64

// Runs returns the total number of measurements.
func (s Series) Runs() int {
	n := 0
	for _, v := range s {
		n += len(v)
	}
	return n
}

// Scheduler interleaves benchmark runs at random until every benchmark has
// Reps measurements.
type Scheduler struct {
	runner     Runner
	names      []string
	reps       int
	iterations int
	vectorSize int

	rng        *rand.Rand
	progress   io.Writer
	controller *resource.Controller
	metrics    MetricsCollector
	logger     *vtbench.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithSeed fixes the run order. A zero seed is ignored.
func WithSeed(seed int64) Option {
	return func(s *Scheduler) {
		if seed != 0 {
			s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // run order, not security
		}
	}
}

// WithProgress writes a "." to w after every successful run.
func WithProgress(w io.Writer) Option {
	return func(s *Scheduler) {
		s.progress = w
	}
}

// WithController paces subprocess launches through c.
func WithController(c *resource.Controller) Option {
	return func(s *Scheduler) {
		s.controller = c
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m MetricsCollector) Option {
	return func(s *Scheduler) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *vtbench.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScheduler returns a Scheduler running names through r with the
// repetition counts and arguments from cfg.
func NewScheduler(r Runner, names []string, cfg Config, opts ...Option) *Scheduler {
	s := &Scheduler{
		runner:     r,
		names:      uniqueNames(names),
		reps:       cfg.Reps,
		iterations: cfg.Iterations,
		vectorSize: cfg.VectorSize,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // run order, not security
		metrics:    NoopMetricsCollector{},
		logger:     vtbench.NoopLogger(),
	}
	WithSeed(cfg.Seed)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes len(names)*reps runs, one at a time, choosing the next
// benchmark uniformly among those still short of reps. It stops at the
// first failing run and returns the measurements gathered so far.
func (s *Scheduler) Run(ctx context.Context) (Series, error) {
	series := make(Series, len(s.names))
	for _, name := range s.names {
		series[name] = make([]float64, 0, max(s.reps, 0))
	}
	if s.reps <= 0 {
		return series, nil
	}

	pending := slices.Clone(s.names)
	for len(pending) > 0 {
		i := s.rng.Intn(len(pending))
		name := pending[i]

		if err := s.controller.WaitLaunch(ctx); err != nil {
			return series, err
		}

		start := time.Now()
		v, err := s.runner.Run(ctx, name, s.iterations, s.vectorSize)
		s.metrics.RecordRun(name, time.Since(start), err)
		s.logger.LogRun(ctx, name, v, err)
		if err != nil {
			var se *vtbench.ErrSubprocess
			if !errors.As(err, &se) {
				err = vtbench.NewErrSubprocess(name, err)
			}
			return series, err
		}

		series[name] = append(series[name], v)
		if s.progress != nil {
			fmt.Fprint(s.progress, ".")
		}

		if len(series[name]) >= s.reps {
			pending[i] = pending[len(pending)-1]
			pending = pending[:len(pending)-1]
		}
	}

	return series, nil
}

// uniqueNames drops repeated names, keeping the first occurrence of each.
func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
