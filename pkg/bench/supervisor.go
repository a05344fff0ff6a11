package bench

import (
	"context"
	"log/slog"
	"time"
)

// Supervisor bounds the wall-clock duration of one case's entire
// execution (warmup plus measurement) by a hard deadline, distinct from
// the definition's MaxTime, which only steers the controller's own
// loop.
//
// The controller runs in a separate goroutine raced against a monotonic
// deadline timer, so the supervisor's wait is always bounded. On
// expiry the worker's context is cancelled: context-aware actions and
// CommandAction subprocesses terminate promptly, while a CPU-bound
// action that never observes its context is abandoned — its goroutine
// keeps running until it returns on its own, and whatever it produces
// is discarded. Callers who need a hard kill for arbitrary hostile code
// should benchmark it behind CommandAction, which runs it in a child
// process the runtime can terminate outright.
type Supervisor struct {
	Controller *Controller
	Logger     *slog.Logger
}

// Execute runs the case under the definition's deadline. On expiry it
// returns a TimeoutError carrying the case ID, elapsed time and
// configured deadline, and no results. Cancellation of ctx itself
// surfaces as ctx.Err().
func (s *Supervisor) Execute(ctx context.Context, c *Case) ([]*Result, error) {
	ctrl := s.Controller
	if ctrl == nil {
		ctrl = &Controller{}
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	deadline := c.def.timeout

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		results []*Result
		err     error
	}
	// Buffered so an abandoned worker can deliver its discarded
	// outcome without blocking forever.
	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		results, err := ctrl.Run(workCtx, c)
		done <- outcome{results, err}
	}()

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case o := <-done:
		return o.results, o.err
	case <-timer.C:
		cancel()
		elapsed := time.Since(start)
		logger.Warn("benchmark case exceeded deadline, terminating",
			"case", c.Name(), "id", c.id,
			"elapsed", elapsed, "deadline", deadline)
		return nil, &TimeoutError{CaseID: c.id, Elapsed: elapsed, Deadline: deadline}
	case <-ctx.Done():
		cancel()
		return nil, ctx.Err()
	}
}
