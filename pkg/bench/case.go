package bench

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Case binds a definition to one concrete variation. Its identifier is
// derived deterministically from the benchmark title, group and
// variation values, so repeated runs produce the same IDs and external
// tooling can correlate results across invocations.
type Case struct {
	def       *Definition
	variation Variation
	id        string
	results   []*Result
	err       error
}

func newCase(def *Definition, v Variation) *Case {
	return &Case{def: def, variation: v, id: caseID(def, v)}
}

func caseID(def *Definition, v Variation) string {
	h := xxhash.New()
	_, _ = h.WriteString(def.group)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(def.title)
	for _, k := range v.keys {
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(k)
		_, _ = h.WriteString("=")
		fmt.Fprintf(h, "%v", v.values[k])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// ID returns the stable case identifier.
func (c *Case) ID() string { return c.id }

// Definition returns the definition this case was derived from.
func (c *Case) Definition() *Definition { return c.def }

// Variation returns the parameter combination bound to this case.
func (c *Case) Variation() Variation { return c.variation }

// N is the case's complexity weight.
func (c *Case) N() float64 { return c.variation.N() }

// Name renders "group/title" plus the variation bindings, for logs.
func (c *Case) Name() string {
	if len(c.variation.keys) == 0 {
		return fmt.Sprintf("%s/%s", c.def.group, c.def.title)
	}
	return fmt.Sprintf("%s/%s[%s]", c.def.group, c.def.title, c.variation)
}

// Results returns the results attached to this case, one per metric
// kind, in Metric order. Empty until the case has executed
// successfully. Reporters must treat the returned results as read-only.
func (c *Case) Results() []*Result {
	out := make([]*Result, len(c.results))
	copy(out, c.results)
	return out
}

// Result returns the case's result for one metric kind, or nil.
func (c *Case) Result(m Metric) *Result {
	for _, r := range c.results {
		if r.Metric == m {
			return r
		}
	}
	return nil
}

// Err returns the error that stopped this case, or nil if it completed.
func (c *Case) Err() error { return c.err }

func (c *Case) attach(results []*Result) { c.results = results }

// GroupMean averages the mean of metric m over a set of completed
// cases. It is a rough mean-of-means intended for coarse regression
// checks between runs, not for rigorous analysis.
func GroupMean(cases []*Case, m Metric) float64 {
	total, count := 0.0, 0
	for _, c := range cases {
		if r := c.Result(m); r != nil {
			total += r.Stats.Mean
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
