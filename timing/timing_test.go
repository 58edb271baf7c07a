package timing

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime(t *testing.T) {
	t.Run("runs every iteration", func(t *testing.T) {
		calls := 0
		d := Time(7, func() { calls++ })
		assert.Equal(t, 7, calls)
		assert.GreaterOrEqual(t, d, time.Duration(0))
	})

	t.Run("zero iterations", func(t *testing.T) {
		calls := 0
		d := Time(0, func() { calls++ })
		assert.Equal(t, 0, calls)
		assert.GreaterOrEqual(t, d, time.Duration(0))
	})

	t.Run("measures elapsed time", func(t *testing.T) {
		d := Time(2, func() { time.Sleep(5 * time.Millisecond) })
		assert.GreaterOrEqual(t, d, 10*time.Millisecond)
	})

	t.Run("panic propagates", func(t *testing.T) {
		assert.Panics(t, func() {
			Time(1, func() { panic("bad layout") })
		})
	})
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 0.0, Seconds(0))
	assert.Equal(t, 1.5, Seconds(1500*time.Millisecond))
	assert.InDelta(t, 2.000000001, Seconds(2*time.Second+time.Nanosecond), 1e-12)
}

func TestFormat(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1.25, 0.123456789, 12.000000001} {
		s := Format(v)
		assert.NotContains(t, s, "e", "no exponent notation")
		got, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, 1500*time.Millisecond))
	assert.Equal(t, "1.5\n", buf.String())

	buf.Reset()
	require.NoError(t, Report(&buf, Time(3, func() {})))
	line := strings.TrimSpace(buf.String())
	v, err := strconv.ParseFloat(line, 64)
	require.NoError(t, err)
	assert.False(t, math.IsInf(v, 0) || math.IsNaN(v))
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}
