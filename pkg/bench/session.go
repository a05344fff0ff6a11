package bench

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"quickbench/internal/telemetry"
)

// ExecDefaults overrides the package-level execution-control defaults
// for definitions registered through a session. Zero fields keep the
// package defaults.
type ExecDefaults struct {
	Iterations       int
	WarmupIterations int
	Rounds           int
	MinTime          time.Duration
	MaxTime          time.Duration
	Timeout          time.Duration
}

// Session owns the registry of benchmark definitions for one run and
// executes them sequentially. The registry is explicit rather than
// process-global: it is created at run start and discarded with the
// session, so two sessions never share state.
//
// Cases run strictly one at a time; the only concurrency inside a run
// is the supervisor's worker-versus-deadline race.
type Session struct {
	id       string
	logger   *slog.Logger
	metrics  *telemetry.RunMetrics
	defaults ExecDefaults

	defs  []*Definition
	cases []*Case
	errs  []*CaseError

	started  time.Time
	finished time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session's logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithMetrics attaches Prometheus run metrics to the session.
func WithMetrics(m *telemetry.RunMetrics) SessionOption {
	return func(s *Session) { s.metrics = m }
}

// WithExecDefaults sets session-wide execution-control defaults applied
// to definitions whose options leave those fields zero.
func WithExecDefaults(d ExecDefaults) SessionOption {
	return func(s *Session) { s.defaults = d }
}

// NewSession creates an empty run registry with a fresh run ID.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		id:     uuid.NewString(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the unique identifier of this run.
func (s *Session) ID() string { return s.id }

// Register validates opts, applies the session's execution defaults to
// unset fields, and adds the resulting definition to the registry. The
// returned handle can be used to find the definition's cases after the
// run.
func (s *Session) Register(opts Options) (*Definition, error) {
	s.applyDefaults(&opts)
	def, err := NewDefinition(opts)
	if err != nil {
		return nil, err
	}
	s.defs = append(s.defs, def)
	return def, nil
}

func (s *Session) applyDefaults(opts *Options) {
	d := s.defaults
	if opts.Iterations == 0 {
		opts.Iterations = d.Iterations
	}
	if opts.WarmupIterations == 0 {
		opts.WarmupIterations = d.WarmupIterations
	}
	if opts.Rounds == 0 {
		opts.Rounds = d.Rounds
	}
	if opts.MinTime == 0 {
		opts.MinTime = d.MinTime
	}
	if opts.MaxTime == 0 {
		opts.MaxTime = d.MaxTime
	}
	if opts.Timeout == 0 {
		opts.Timeout = d.Timeout
	}
}

// Run expands every registered definition into cases and executes them
// sequentially under supervision. A failing case never aborts its
// siblings: its error is recorded and the run moves on. Run returns an
// error only when ctx is cancelled; per-case failures are reported
// through Errors.
func (s *Session) Run(ctx context.Context) error {
	s.started = time.Now()
	s.cases = s.cases[:0]
	s.errs = s.errs[:0]

	sup := &Supervisor{Logger: s.logger}

	for _, def := range s.defs {
		for _, v := range def.Variations() {
			s.cases = append(s.cases, newCase(def, v))
		}
	}
	s.logger.Info("benchmark run starting", "run_id", s.id,
		"definitions", len(s.defs), "cases", len(s.cases))

	for _, c := range s.cases {
		if err := ctx.Err(); err != nil {
			s.finished = time.Now()
			return err
		}
		s.runCase(ctx, sup, c)
	}

	s.finished = time.Now()
	s.logger.Info("benchmark run finished", "run_id", s.id,
		"cases", len(s.cases), "failed", len(s.errs),
		"elapsed", s.finished.Sub(s.started))
	return nil
}

func (s *Session) runCase(ctx context.Context, sup *Supervisor, c *Case) {
	if s.metrics != nil {
		s.metrics.CasesInFlight.Inc()
		defer s.metrics.CasesInFlight.Dec()
	}

	start := time.Now()
	results, err := sup.Execute(ctx, c)
	elapsed := time.Since(start)

	outcome := "ok"
	switch {
	case err == nil:
		c.attach(results)
		if s.metrics != nil && len(results) > 0 {
			s.metrics.IterationsRun.Add(float64(results[0].Iterations))
		}
	default:
		c.err = err
		s.errs = append(s.errs, &CaseError{Case: c, Err: err})
		var te *TimeoutError
		if errors.As(err, &te) {
			outcome = "timeout"
		} else {
			outcome = "error"
		}
		s.logger.Error("benchmark case failed",
			"case", c.Name(), "id", c.ID(), "error", err)
	}

	if s.metrics != nil {
		s.metrics.CasesTotal.WithLabelValues(c.def.group, outcome).Inc()
		s.metrics.CaseDuration.WithLabelValues(c.def.group).Observe(elapsed.Seconds())
	}
}

// Cases returns every case generated by the last Run, in execution
// order, including failed ones.
func (s *Session) Cases() []*Case {
	out := make([]*Case, len(s.cases))
	copy(out, s.cases)
	return out
}

// CasesFor returns the cases generated from one registered definition.
func (s *Session) CasesFor(def *Definition) []*Case {
	var out []*Case
	for _, c := range s.cases {
		if c.def == def {
			out = append(out, c)
		}
	}
	return out
}

// Errors returns the per-case failures collected by the last Run.
func (s *Session) Errors() []*CaseError {
	out := make([]*CaseError, len(s.errs))
	copy(out, s.errs)
	return out
}

// Started and Finished bound the last Run's wall-clock span.
func (s *Session) Started() time.Time  { return s.started }
func (s *Session) Finished() time.Time { return s.finished }
