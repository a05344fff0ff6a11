package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleForSmallest(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		baseUnit   string
		wantUnit   string
		wantFactor float64
	}{
		{"kilo ops", []float64{1500, 2500}, "Ops/s", "kOps/s", 1e-3},
		{"mega ops", []float64{2.5e6}, "Ops/s", "MOps/s", 1e-6},
		{"milliseconds", []float64{0.00123}, "s", "ms", 1e3},
		{"nanoseconds", []float64{2.5e-9, 4e-9}, "s", "ns", 1e9},
		{"plain", []float64{2.0}, "s", "s", 1.0},
		{"smallest nonzero wins", []float64{1e6, 0.002}, "s", "ms", 1e3},
		{"zeros ignored", []float64{0, 0.002}, "s", "ms", 1e3},
		{"all zero", []float64{0, 0}, "B", "B", 1.0},
		{"empty", nil, "B", "B", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, factor := ScaleForSmallest(tt.values, tt.baseUnit)
			assert.Equal(t, tt.wantUnit, unit)
			assert.Equal(t, tt.wantFactor, factor)
		})
	}
}

func TestBaseUnit(t *testing.T) {
	assert.Equal(t, "s", BaseUnit("ns"))
	assert.Equal(t, "s", BaseUnit("ms"))
	assert.Equal(t, "Ops/s", BaseUnit("MOps/s"))
	assert.Equal(t, "B", BaseUnit("kB"))
	assert.Equal(t, "s", BaseUnit("s"))
	assert.Equal(t, "Ops/s", BaseUnit("Ops/s"))
}

func TestRoundSigFigs(t *testing.T) {
	assert.Equal(t, 1230.0, RoundSigFigs(1234.5, 3))
	assert.Equal(t, 0.00123, RoundSigFigs(0.0012345, 3))
	assert.Equal(t, 1.23, RoundSigFigs(1.2345, 3))
	assert.Equal(t, 0.0, RoundSigFigs(0, 3))
	assert.Equal(t, -1230.0, RoundSigFigs(-1234.5, 3))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1.23 ms", FormatValue(0.00123, "s"))
	assert.Equal(t, "1.5 kOps/s", FormatValue(1500, "Ops/s"))
	assert.Equal(t, "0 B", FormatValue(0, "B"))
}
