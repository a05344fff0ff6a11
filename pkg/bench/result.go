package bench

import (
	"time"

	"quickbench/pkg/stats"
)

// Metric identifies one kind of derived measurement for a case.
type Metric int

const (
	// MetricOpsPerSecond is rounds divided by iteration elapsed time.
	MetricOpsPerSecond Metric = iota
	// MetricTiming is iteration elapsed time divided by rounds, in
	// seconds per operation.
	MetricTiming
	// MetricMemoryMean is the mean bytes allocated per round.
	MetricMemoryMean
	// MetricMemoryPeak is the peak heap in use across an iteration.
	MetricMemoryPeak

	numMetrics = iota
)

func (m Metric) String() string {
	switch m {
	case MetricOpsPerSecond:
		return "ops_per_second"
	case MetricTiming:
		return "timing"
	case MetricMemoryMean:
		return "memory_mean"
	case MetricMemoryPeak:
		return "memory_peak"
	}
	return "unknown"
}

// Unit returns the base unit results of this metric are stored in.
func (m Metric) Unit() string {
	switch m {
	case MetricOpsPerSecond:
		return "Ops/s"
	case MetricTiming:
		return "s"
	case MetricMemoryMean, MetricMemoryPeak:
		return "B"
	}
	return ""
}

// Sample is the raw measurement for one iteration batch: the cumulative
// elapsed time of its rounds, the bytes allocated by the batch, and the
// heap high-water mark observed after it.
type Sample struct {
	Elapsed    time.Duration
	AllocBytes uint64
	PeakBytes  uint64
}

// Result holds one metric kind for one case: the ordered per-iteration
// derived values and their statistical summary, plus execution
// metadata. Results are created once by the controller and never
// mutated afterwards.
type Result struct {
	Metric       Metric        `json:"metric"`
	Data         []float64     `json:"data"`
	Stats        stats.Summary `json:"stats"`
	Iterations   int           `json:"iterations"`
	Rounds       int           `json:"rounds"`
	TotalElapsed time.Duration `json:"total_elapsed"`
}

// Unit returns the base unit the result's data and statistics are
// stored in.
func (r *Result) Unit() string { return r.Stats.Unit }

// buildResults reduces the per-iteration samples of one case into one
// Result per metric kind. samples must be non-empty with positive
// elapsed times; the controller rejects zero-elapsed batches with a
// ResolutionError before they get here.
func buildResults(def *Definition, samples []Sample, totalElapsed time.Duration) ([]*Result, error) {
	rounds := float64(def.rounds)
	data := make(map[Metric][]float64, numMetrics)
	for _, s := range samples {
		secs := s.Elapsed.Seconds()
		data[MetricOpsPerSecond] = append(data[MetricOpsPerSecond], rounds/secs)
		data[MetricTiming] = append(data[MetricTiming], secs/rounds)
		data[MetricMemoryMean] = append(data[MetricMemoryMean], float64(s.AllocBytes)/rounds)
		data[MetricMemoryPeak] = append(data[MetricMemoryPeak], float64(s.PeakBytes))
	}

	out := make([]*Result, 0, numMetrics)
	for m := MetricOpsPerSecond; m < numMetrics; m++ {
		summary, err := stats.Summarize(data[m], m.Unit())
		if err != nil {
			return nil, err
		}
		out = append(out, &Result{
			Metric:       m,
			Data:         data[m],
			Stats:        summary,
			Iterations:   len(samples),
			Rounds:       def.rounds,
			TotalElapsed: totalElapsed,
		})
	}
	return out, nil
}

// DisplayStats returns a copy of the result's summary scaled to the SI
// unit that suits its magnitude and rounded to three significant
// figures. The stored summary is left untouched.
func (r *Result) DisplayStats() stats.Summary {
	unit, factor := stats.ScaleForSmallest([]float64{r.Stats.Mean, r.Stats.Min}, r.Stats.Unit)
	s := r.Stats
	s.Unit = unit
	s.Mean = stats.RoundSigFigs(s.Mean*factor, 3)
	s.Median = stats.RoundSigFigs(s.Median*factor, 3)
	s.Min = stats.RoundSigFigs(s.Min*factor, 3)
	s.Max = stats.RoundSigFigs(s.Max*factor, 3)
	s.P5 = stats.RoundSigFigs(s.P5*factor, 3)
	s.P95 = stats.RoundSigFigs(s.P95*factor, 3)
	s.StdDev = stats.RoundSigFigs(s.StdDev*factor, 3)
	s.RSDPercent = stats.RoundSigFigs(s.RSDPercent, 3)
	return s
}
