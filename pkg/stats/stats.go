// Package stats reduces sequences of benchmark measurements into
// descriptive statistics and handles unit scaling for display.
package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Error reports a degenerate input to the aggregator, such as an empty
// sample sequence. The controller guarantees at least one measured
// iteration before statistics are requested, so hitting this indicates
// an internal invariant was broken upstream.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("stats: %s", e.Reason)
}

// Summary holds the descriptive statistics for one metric of one
// benchmark case. Values are in the base unit for the metric and are
// never rounded; rounding happens only at display time.
type Summary struct {
	Unit       string  `json:"unit"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	P5         float64 `json:"p5"`
	P95        float64 `json:"p95"`
	StdDev     float64 `json:"std_dev"`
	RSDPercent float64 `json:"rsd_percent"`
	Count      int     `json:"count"`
}

// Summarize reduces data into a Summary. It returns an Error if data is
// empty. The input slice is not modified.
//
// The standard deviation is the sample standard deviation (n-1
// denominator); for a single value it is 0, as is the relative standard
// deviation. RSD is reported as a percentage of the mean and is 0 when
// the mean is 0.
func Summarize(data []float64, unit string) (Summary, error) {
	if len(data) == 0 {
		return Summary{}, &Error{Reason: "no data points to summarize"}
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	mean := stat.Mean(sorted, nil)
	sd := 0.0
	if len(sorted) > 1 {
		sd = stat.StdDev(sorted, nil)
	}
	rsd := 0.0
	if mean != 0 {
		rsd = sd / mean * 100
	}

	return Summary{
		Unit:       unit,
		Mean:       mean,
		Median:     Percentile(sorted, 50),
		Min:        sorted[0],
		Max:        sorted[len(sorted)-1],
		P5:         Percentile(sorted, 5),
		P95:        Percentile(sorted, 95),
		StdDev:     sd,
		RSDPercent: rsd,
		Count:      len(sorted),
	}, nil
}

// Percentile returns the p-th percentile (0..100) of sorted using
// linear interpolation between adjacent order statistics: a single
// sample returns that sample, and an even-count median interpolates
// between the two central values. sorted must be sorted ascending and
// non-empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := (float64(len(sorted)) - 1) * p / 100
	lo := int(math.Floor(h))
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}
