package bench

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// Controller drives the measured execution of one case: warmup
// iterations first, then measured iterations until the time and
// iteration budgets are satisfied. Zero-valued fields are filled with
// defaults on first use, so Controller{} is ready to go.
type Controller struct {
	// Clock overrides the timing source. When nil the controller
	// picks wall-clock or CPU time per the case's definition.
	Clock Clock

	// Mem overrides the memory-usage source. Defaults to the runtime
	// allocator statistics.
	Mem MemorySampler

	Logger *slog.Logger
}

// Run executes the case's action and returns one Result per metric
// kind. It returns an ExecutionError if the action fails or panics at
// any point, discarding partial data. The context is checked between
// iterations; cancellation surfaces as ctx.Err().
//
// Measured iterations continue while the wall-clock budget allows:
// the loop stops once MaxTime elapses, or once both the iteration count
// and MinTime are satisfied. MaxTime may be exceeded only by the
// iteration already in flight.
func (ct *Controller) Run(ctx context.Context, c *Case) ([]*Result, error) {
	def := c.def
	clock := ct.Clock
	if clock == nil {
		if def.cpuTime {
			clock = NewCPUClock()
		} else {
			clock = NewWallClock()
		}
	}
	mem := ct.Mem
	if mem == nil {
		mem = NewRuntimeMemorySampler()
	}
	logger := ct.Logger
	if logger == nil {
		logger = slog.Default()
	}

	args := c.variation.Args()
	logger.Debug("benchmark case starting",
		"case", c.Name(), "id", c.id,
		"iterations", def.iterations, "rounds", def.rounds,
		"warmup", def.warmup)

	// Settle the allocator so earlier garbage is not charged to the
	// first iterations.
	runtime.GC()

	for w := 0; w < def.warmup; w++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := ct.runBatch(ctx, clock, mem, def, args); err != nil {
			return nil, &ExecutionError{CaseID: c.id, Iteration: -1, Warmup: true, Err: err}
		}
	}

	minIters := def.iterations
	if minIters < MinMeasuredIterations {
		minIters = MinMeasuredIterations
	}

	var samples []Sample
	start := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sample, err := ct.runBatch(ctx, clock, mem, def, args)
		if err != nil {
			return nil, &ExecutionError{CaseID: c.id, Iteration: len(samples), Err: err}
		}
		if sample.Elapsed <= 0 {
			return nil, &ResolutionError{CaseID: c.id, Rounds: def.rounds}
		}
		samples = append(samples, sample)

		elapsed := time.Since(start)
		if elapsed >= def.maxTime {
			break
		}
		if len(samples) >= minIters && elapsed >= def.minTime {
			break
		}
	}
	totalElapsed := time.Since(start)

	results, err := buildResults(def, samples, totalElapsed)
	if err != nil {
		return nil, err
	}
	logger.Debug("benchmark case finished",
		"case", c.Name(), "id", c.id,
		"measured_iterations", len(samples), "elapsed", totalElapsed)
	return results, nil
}

// runBatch executes one iteration: rounds back-to-back calls measured
// as a single span. Batching amortizes timer resolution over very fast
// actions; the per-round value is derived later by dividing by rounds.
func (ct *Controller) runBatch(ctx context.Context, clock Clock, mem MemorySampler, def *Definition, args Args) (s Sample, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	before := mem.Read()
	t0 := clock.Now()
	for r := 0; r < def.rounds; r++ {
		if err := def.action(ctx, args); err != nil {
			return Sample{}, err
		}
	}
	t1 := clock.Now()
	after := mem.Read()

	peak := before.HeapInUse
	if after.HeapInUse > peak {
		peak = after.HeapInUse
	}
	return Sample{
		Elapsed:    t1 - t0,
		AllocBytes: after.TotalAlloc - before.TotalAlloc,
		PeakBytes:  peak,
	}, nil
}
