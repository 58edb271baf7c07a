package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	vtbench "github.com/softdevteam/vtable-bench"
)

// Runner runs one benchmark to completion and returns its measurement.
type Runner interface {
	Run(ctx context.Context, name string, iterations, vectorSize int) (float64, error)
}

// ExecRunner runs benchmarks as subprocesses from Dir.
type ExecRunner struct {
	Dir string
	// Stderr receives the subprocess's stderr. If nil, it is captured and
	// attached to the error on failure.
	Stderr io.Writer
}

// Run starts <Dir>/<name> <iterations> <vectorSize>, waits for it to exit and
// parses its stdout as a single float.
func (r ExecRunner) Run(ctx context.Context, name string, iterations, vectorSize int) (float64, error) {
	cmd := exec.CommandContext(ctx, filepath.Join(r.Dir, name), //nolint:gosec // benchmark paths come from the operator
		strconv.Itoa(iterations), strconv.Itoa(vectorSize))
	cmd.Stderr = r.Stderr

	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if r.Stderr == nil && errors.As(err, &ee) && len(ee.Stderr) > 0 {
			err = fmt.Errorf("%w: %s", err, strings.TrimSpace(string(ee.Stderr)))
		}
		return 0, vtbench.NewErrSubprocess(name, err)
	}

	return parseMeasurement(name, out)
}

func parseMeasurement(name string, out []byte) (float64, error) {
	s := strings.TrimSpace(string(out))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, vtbench.NewErrSubprocess(name, fmt.Errorf("unparseable output %q: %w", s, err))
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, vtbench.NewErrSubprocess(name, fmt.Errorf("invalid measurement %q", s))
	}
	return v, nil
}
