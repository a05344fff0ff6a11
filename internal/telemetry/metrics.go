package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RunMetrics instruments a benchmark run so long unattended runs can be
// watched from the outside.
type RunMetrics struct {
	CasesTotal    *prometheus.CounterVec
	CaseDuration  *prometheus.HistogramVec
	IterationsRun prometheus.Counter
	CasesInFlight prometheus.Gauge
}

// NewRunMetrics creates and registers the run metrics with reg. Pass a
// dedicated registry in tests to avoid duplicate registration.
func NewRunMetrics(reg prometheus.Registerer) *RunMetrics {
	m := &RunMetrics{
		CasesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quickbench_cases_total",
				Help: "Benchmark cases finished, by group and outcome",
			},
			[]string{"group", "outcome"},
		),
		CaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quickbench_case_duration_seconds",
				Help:    "Wall-clock duration of benchmark cases",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
			},
			[]string{"group"},
		),
		IterationsRun: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quickbench_iterations_total",
				Help: "Measured iterations executed across all cases",
			},
		),
		CasesInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "quickbench_cases_in_flight",
				Help: "Cases currently executing (0 or 1; cases run sequentially)",
			},
		),
	}
	reg.MustRegister(m.CasesTotal, m.CaseDuration, m.IterationsRun, m.CasesInFlight)
	return m
}

// StartMetricsServer exposes the default registry on addr under
// /metrics. It blocks, so run it in its own goroutine.
func StartMetricsServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
