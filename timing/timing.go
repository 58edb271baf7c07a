// Package timing measures repeated passes over a collection.
package timing

import (
	"fmt"
	"io"
	"strconv"
	"time"
)

// Time runs pass iterations times back to back and returns the elapsed
// wall-clock time, measured on the monotonic clock.
//
//go:noinline
func Time(iterations int, pass func()) time.Duration {
	before := time.Now()
	for i := 0; i < iterations; i++ {
		pass()
	}
	return time.Since(before)
}

// Seconds converts d to fractional seconds.
func Seconds(d time.Duration) float64 {
	return d.Seconds()
}

// Format renders seconds as the shortest decimal that parses back to the
// same float64.
func Format(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}

// Report writes d in seconds on a line of its own.
func Report(w io.Writer, d time.Duration) error {
	_, err := fmt.Fprintln(w, Format(Seconds(d)))
	return err
}
