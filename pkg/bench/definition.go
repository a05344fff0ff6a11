// Package bench is the benchmark execution engine: it expands a
// benchmark definition into parameterized cases, drives the measured
// iteration loop under a hard deadline, and attaches statistical
// results to each case for consumption by reporters.
package bench

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Execution-control defaults, applied when the corresponding Options
// field is left zero.
const (
	DefaultIterations       = 20
	DefaultWarmupIterations = 10
	DefaultRounds           = 1
	DefaultMinTime          = 5 * time.Second
	DefaultMaxTime          = 20 * time.Second

	// DefaultTimeoutGrace is added to MaxTime to form the hard
	// deadline when Options.Timeout is not set.
	DefaultTimeoutGrace = 500 * time.Millisecond

	// MinMeasuredIterations is the floor on measured iterations the
	// controller aims for regardless of the configured count.
	MinMeasuredIterations = 3

	// NoWarmup disables warmup iterations. A zero WarmupIterations
	// selects the default instead.
	NoWarmup = -1
)

// Args carries one concrete combination of parameter values into the
// benchmarked function.
type Args map[string]any

// Action is the benchmarked function. It is invoked once per round with
// the case's parameter values. A non-nil error aborts the case. The
// context is cancelled when the case's deadline expires; CPU-bound
// actions that cannot observe it are abandoned by the supervisor
// instead (see Supervisor).
type Action func(ctx context.Context, args Args) error

// Param declares one benchmark parameter and its candidate values.
// Params are ordered: the declaration order determines variation
// expansion order and case identity.
type Param struct {
	Name   string
	Values []any
}

// Options configures a benchmark definition. Group, Title and Action
// are required; everything else has documented defaults.
type Options struct {
	Group       string
	Title       string
	Description string
	Action      Action

	// Params declares the parameter matrix. When empty the benchmark
	// runs exactly once with no arguments.
	Params []Param

	// VariationCols maps parameter names to display column labels for
	// reporters. Every key must be a declared parameter name.
	VariationCols map[string]string

	// UseFieldForN names the parameter whose value supplies the
	// complexity weight n for each variation. Must be a declared
	// parameter name when set.
	UseFieldForN string

	// Iterations is the minimum number of measured iterations. Zero
	// means DefaultIterations.
	Iterations int

	// WarmupIterations is the number of discarded priming iterations.
	// Zero means DefaultWarmupIterations; use NoWarmup to disable
	// warmup entirely.
	WarmupIterations int

	Rounds           int           // calls per iteration batch
	MinTime          time.Duration // minimum measured wall-clock time
	MaxTime          time.Duration // measured-time ceiling
	Timeout          time.Duration // hard deadline for warmup+measurement

	// CPUTime selects per-process CPU time instead of wall-clock time
	// as the measurement source for timing samples. The loop budget
	// (MinTime/MaxTime) is always wall-clock.
	CPUTime bool
}

// Definition is an immutable benchmark declaration. Build one with
// NewDefinition; the zero value is not usable.
type Definition struct {
	group       string
	title       string
	description string
	action      Action

	params        []Param
	variationCols map[string]string
	useFieldForN  string

	iterations int
	warmup     int
	rounds     int
	minTime    time.Duration
	maxTime    time.Duration
	timeout    time.Duration
	cpuTime    bool
}

// NewDefinition validates opts and returns an immutable Definition.
// Zero-valued execution-control fields are replaced with the package
// defaults before validation.
func NewDefinition(opts Options) (*Definition, error) {
	if strings.TrimSpace(opts.Group) == "" {
		return nil, &ValidationError{Field: "group", Reason: "must not be blank"}
	}
	if strings.TrimSpace(opts.Title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be blank"}
	}
	if opts.Action == nil {
		return nil, &ValidationError{Field: "action", Reason: "must not be nil"}
	}

	d := &Definition{
		group:        strings.TrimSpace(opts.Group),
		title:        strings.TrimSpace(opts.Title),
		description:  strings.TrimSpace(opts.Description),
		action:       opts.Action,
		useFieldForN: opts.UseFieldForN,
		iterations:   opts.Iterations,
		warmup:       opts.WarmupIterations,
		rounds:       opts.Rounds,
		minTime:      opts.MinTime,
		maxTime:      opts.MaxTime,
		timeout:      opts.Timeout,
		cpuTime:      opts.CPUTime,
	}
	if d.iterations == 0 {
		d.iterations = DefaultIterations
	}
	if d.warmup == 0 {
		d.warmup = DefaultWarmupIterations
	} else if d.warmup == NoWarmup {
		d.warmup = 0
	}
	if d.rounds == 0 {
		d.rounds = DefaultRounds
	}
	if d.minTime == 0 {
		d.minTime = DefaultMinTime
	}
	if d.maxTime == 0 {
		d.maxTime = DefaultMaxTime
	}
	if d.timeout == 0 {
		d.timeout = d.maxTime + DefaultTimeoutGrace
	}

	if d.iterations < 1 {
		return nil, &ValidationError{Field: "iterations", Reason: "must be positive"}
	}
	if d.warmup < 0 {
		return nil, &ValidationError{Field: "warmup_iterations", Reason: "must not be negative"}
	}
	if d.rounds < 1 {
		return nil, &ValidationError{Field: "rounds", Reason: "must be positive"}
	}
	if d.minTime < 0 || d.maxTime < 0 || d.timeout < 0 {
		return nil, &ValidationError{Field: "time limits", Reason: "must be positive"}
	}
	if d.minTime > d.maxTime {
		return nil, &ValidationError{
			Field:  "min_time",
			Reason: fmt.Sprintf("min_time %v exceeds max_time %v", d.minTime, d.maxTime),
		}
	}

	seen := make(map[string]bool, len(opts.Params))
	d.params = make([]Param, 0, len(opts.Params))
	for _, p := range opts.Params {
		if strings.TrimSpace(p.Name) == "" {
			return nil, &ValidationError{Field: "params", Reason: "parameter name must not be blank"}
		}
		if seen[p.Name] {
			return nil, &ValidationError{
				Field:  "params",
				Reason: fmt.Sprintf("parameter %q declared twice", p.Name),
			}
		}
		if len(p.Values) == 0 {
			return nil, &ValidationError{
				Field:  "params",
				Reason: fmt.Sprintf("parameter %q has an empty value list", p.Name),
			}
		}
		seen[p.Name] = true
		values := make([]any, len(p.Values))
		copy(values, p.Values)
		d.params = append(d.params, Param{Name: p.Name, Values: values})
	}

	d.variationCols = make(map[string]string, len(opts.VariationCols))
	for name, label := range opts.VariationCols {
		if !seen[name] {
			return nil, &ValidationError{
				Field:  "variation_cols",
				Reason: fmt.Sprintf("column %q is not a declared parameter", name),
			}
		}
		if strings.TrimSpace(label) == "" {
			return nil, &ValidationError{
				Field:  "variation_cols",
				Reason: fmt.Sprintf("label for %q must not be blank", name),
			}
		}
		d.variationCols[name] = strings.TrimSpace(label)
	}

	if d.useFieldForN != "" && !seen[d.useFieldForN] {
		return nil, &ValidationError{
			Field:  "use_field_for_n",
			Reason: fmt.Sprintf("%q is not a declared parameter", d.useFieldForN),
		}
	}

	return d, nil
}

func (d *Definition) Group() string       { return d.group }
func (d *Definition) Title() string       { return d.title }
func (d *Definition) Description() string { return d.description }

// Params returns the ordered parameter declarations. The returned
// slices are copies; mutating them does not affect the definition.
func (d *Definition) Params() []Param {
	out := make([]Param, len(d.params))
	for i, p := range d.params {
		values := make([]any, len(p.Values))
		copy(values, p.Values)
		out[i] = Param{Name: p.Name, Values: values}
	}
	return out
}

// VariationCols returns the display-column mapping for reporters.
func (d *Definition) VariationCols() map[string]string {
	out := make(map[string]string, len(d.variationCols))
	for k, v := range d.variationCols {
		out[k] = v
	}
	return out
}

func (d *Definition) UseFieldForN() string { return d.useFieldForN }

func (d *Definition) Iterations() int        { return d.iterations }
func (d *Definition) WarmupIterations() int  { return d.warmup }
func (d *Definition) Rounds() int            { return d.rounds }
func (d *Definition) MinTime() time.Duration { return d.minTime }
func (d *Definition) MaxTime() time.Duration { return d.maxTime }
func (d *Definition) Timeout() time.Duration { return d.timeout }
func (d *Definition) UsesCPUTime() bool      { return d.cpuTime }
