package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbench/pkg/stats"
)

func caseWithMean(t *testing.T, title string, mean float64) *Case {
	t.Helper()
	def := mustDefinition(t, Options{Group: "cmp", Title: title})
	c := newCase(def, def.Variations()[0])
	c.attach([]*Result{{
		Metric: MetricOpsPerSecond,
		Stats:  stats.Summary{Mean: mean},
	}})
	return c
}

func TestCompare_MatchesByID(t *testing.T) {
	prev := []*Case{
		caseWithMean(t, "encode", 100),
		caseWithMean(t, "decode", 50),
	}
	curr := []*Case{
		caseWithMean(t, "decode", 60),
		caseWithMean(t, "encode", 120),
	}

	comps := Compare(prev, curr, MetricOpsPerSecond)
	require.Len(t, comps, 2)

	byName := map[string]Comparison{}
	for _, c := range comps {
		byName[c.Name] = c
	}
	enc := byName["cmp/encode"]
	assert.Equal(t, 100.0, enc.Prev)
	assert.Equal(t, 120.0, enc.Curr)
	assert.InDelta(t, 20.0, enc.PctChange, 1e-9)

	dec := byName["cmp/decode"]
	assert.InDelta(t, 20.0, dec.PctChange, 1e-9)
}

func TestCompare_SkipsUnmatchedCases(t *testing.T) {
	prev := []*Case{caseWithMean(t, "only-before", 10)}
	curr := []*Case{caseWithMean(t, "only-after", 10)}
	assert.Empty(t, Compare(prev, curr, MetricOpsPerSecond))
}

func TestCompare_SkipsMissingMetric(t *testing.T) {
	prev := []*Case{caseWithMean(t, "encode", 100)}
	curr := []*Case{caseWithMean(t, "encode", 120)}
	assert.Empty(t, Compare(prev, curr, MetricTiming))
}

func TestCompare_ZeroBaseline(t *testing.T) {
	prev := []*Case{caseWithMean(t, "encode", 0)}
	curr := []*Case{caseWithMean(t, "encode", 5)}

	comps := Compare(prev, curr, MetricOpsPerSecond)
	require.Len(t, comps, 1)
	assert.Equal(t, 0.0, comps[0].PctChange)
}
