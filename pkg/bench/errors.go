package bench

import (
	"fmt"
	"time"
)

// ValidationError reports a malformed benchmark definition or variation
// declaration. It is raised before any execution and is fatal only to
// the definition it concerns.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ExecutionError reports that the benchmarked function returned an
// error or panicked during warmup or measurement. Partial data for the
// case is discarded; sibling cases in the same run are unaffected.
type ExecutionError struct {
	CaseID    string
	Iteration int  // measured iteration index, -1 during warmup
	Warmup    bool // failed before measurement started
	Err       error
}

func (e *ExecutionError) Error() string {
	phase := fmt.Sprintf("iteration %d", e.Iteration)
	if e.Warmup {
		phase = "warmup"
	}
	return fmt.Sprintf("benchmark case %s failed during %s: %v", e.CaseID, phase, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// ResolutionError reports that a measured iteration batch completed
// faster than the timing source can resolve. A zero-elapsed batch would
// turn into a throughput sample of zero and poison the statistics, so
// the case fails instead; raising Rounds makes each batch span enough
// work to register on the clock.
type ResolutionError struct {
	CaseID string
	Rounds int
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("benchmark case %s measured a zero-elapsed batch at %d rounds; increase Rounds until a batch outlasts the timer resolution",
		e.CaseID, e.Rounds)
}

// TimeoutError reports that a case exceeded its hard deadline and was
// forcibly terminated. No result is produced for the case.
type TimeoutError struct {
	CaseID   string
	Elapsed  time.Duration
	Deadline time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("benchmark case %s timed out after %v (deadline %v)",
		e.CaseID, e.Elapsed, e.Deadline)
}

// CaseError pairs a failed case with the error that stopped it. A run
// collects one CaseError per failed case and keeps going; the caller
// decides whether partial results are acceptable.
type CaseError struct {
	Case *Case
	Err  error
}

func (e *CaseError) Error() string { return e.Err.Error() }

func (e *CaseError) Unwrap() error { return e.Err }
