package harness

import (
	"fmt"
	"math"
	"slices"

	"github.com/montanaflynn/stats"
)

// Z99 is the two-sided 99% normal quantile.
const Z99 = 2.58

// Summary is the mean and 99% confidence half-width of one benchmark.
type Summary struct {
	Name      string
	Mean      float64
	HalfWidth float64
	N         int
}

// String formats the summary as "<name>: <mean> +/- <half width>".
func (s Summary) String() string {
	return fmt.Sprintf("%s: %.3f +/- %.4f", s.Name, s.Mean, s.HalfWidth)
}

// MeanCI returns the mean of data and the half-width of its 99% confidence
// interval, Z99*sd/sqrt(n) with the sample standard deviation. The
// half-width is 0 when there are fewer than two samples.
func MeanCI(data []float64) (mean, halfWidth float64, err error) {
	mean, err = stats.Mean(data)
	if err != nil {
		return 0, 0, err
	}
	if len(data) < 2 {
		return mean, 0, nil
	}
	sd, err := stats.StandardDeviationSample(data)
	if err != nil {
		return 0, 0, err
	}
	return mean, Z99 * sd / math.Sqrt(float64(len(data))), nil
}

// Summarize returns one Summary per benchmark, sorted by name.
func Summarize(series Series) ([]Summary, error) {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]Summary, 0, len(names))
	for _, name := range names {
		data := series[name]
		mean, hw, err := MeanCI(data)
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", name, err)
		}
		out = append(out, Summary{Name: name, Mean: mean, HalfWidth: hw, N: len(data)})
	}
	return out, nil
}
