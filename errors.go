package vtbench

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage is returned when command-line arguments are missing, malformed
	// or help was requested. Callers print usage and exit with status 1.
	ErrUsage = errors.New("usage")

	// ErrUnknownBenchmark is returned for a benchmark name that is not registered.
	ErrUnknownBenchmark = errors.New("unknown benchmark")
)

// ErrInvalidArgument indicates a command-line argument that could not be parsed.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
// errors.Is(err, ErrUsage) holds for every ErrInvalidArgument.
type ErrInvalidArgument struct {
	Name  string
	Value string
	cause error
}

// NewErrInvalidArgument returns an ErrInvalidArgument wrapping cause.
func NewErrInvalidArgument(name, value string, cause error) *ErrInvalidArgument {
	return &ErrInvalidArgument{Name: name, Value: value, cause: cause}
}

func (e *ErrInvalidArgument) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Name, e.Value)
}

func (e *ErrInvalidArgument) Unwrap() error { return e.cause }

// Is reports ErrUsage as a match.
func (e *ErrInvalidArgument) Is(target error) bool { return target == ErrUsage }

// ErrSubprocess indicates a benchmark subprocess that could not be run, crashed
// or produced output that is not a single float.
type ErrSubprocess struct {
	Benchmark string
	cause     error
}

// NewErrSubprocess returns an ErrSubprocess for benchmark wrapping cause.
func NewErrSubprocess(benchmark string, cause error) *ErrSubprocess {
	return &ErrSubprocess{Benchmark: benchmark, cause: cause}
}

func (e *ErrSubprocess) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("couldn't run %s", e.Benchmark)
	}
	return fmt.Sprintf("couldn't run %s: %v", e.Benchmark, e.cause)
}

func (e *ErrSubprocess) Unwrap() error { return e.cause }
