package stats

import (
	"fmt"
	"math"
	"strings"
)

// siPrefix maps a magnitude threshold to the SI prefix used at or above
// it and the factor that converts a base-unit value into the prefixed
// unit.
type siPrefix struct {
	threshold float64
	prefix    string
	factor    float64
}

// Ordered largest to smallest so the first matching threshold wins.
var siPrefixes = []siPrefix{
	{1e15, "P", 1e-15},
	{1e12, "T", 1e-12},
	{1e9, "G", 1e-9},
	{1e6, "M", 1e-6},
	{1e3, "k", 1e-3},
	{1.0, "", 1.0},
	{1e-3, "m", 1e3},
	{1e-6, "µ", 1e6},
	{1e-9, "n", 1e9},
	{1e-12, "p", 1e12},
	{1e-15, "f", 1e15},
}

// ScaleForSmallest picks the SI prefix that keeps the smallest non-zero
// absolute value in values in a human-friendly range, and returns the
// prefixed unit together with the factor to multiply base-unit values
// by. When values is empty or all zero it returns the base unit and a
// factor of 1.
func ScaleForSmallest(values []float64, baseUnit string) (unit string, factor float64) {
	minAbs := 0.0
	for _, v := range values {
		if v == 0 {
			continue
		}
		a := math.Abs(v)
		if minAbs == 0 || a < minAbs {
			minAbs = a
		}
	}
	if minAbs == 0 {
		return baseUnit, 1.0
	}
	for _, p := range siPrefixes {
		if minAbs >= p.threshold {
			return p.prefix + baseUnit, p.factor
		}
	}
	last := siPrefixes[len(siPrefixes)-1]
	return last.prefix + baseUnit, last.factor
}

// BaseUnit strips a recognized SI prefix from unit, so "ns" becomes
// "s" and "MOps/s" becomes "Ops/s". Single-character units are assumed
// to already be base units. Unrecognized prefixes are returned as-is.
func BaseUnit(unit string) string {
	if len(unit) <= 1 {
		return unit
	}
	for _, p := range siPrefixes {
		if p.prefix != "" && strings.HasPrefix(unit, p.prefix) {
			return strings.TrimPrefix(unit, p.prefix)
		}
	}
	return unit
}

// RoundSigFigs rounds v to n significant figures. It is used only when
// formatting values for humans; stored statistics are never rounded.
func RoundSigFigs(v float64, n int) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	mag := math.Ceil(math.Log10(math.Abs(v)))
	power := float64(n) - mag
	scale := math.Pow(10, power)
	return math.Round(v*scale) / scale
}

// FormatValue renders a base-unit value with an auto-selected SI prefix
// at three significant figures, e.g. FormatValue(0.00123, "s") returns
// "1.23 ms".
func FormatValue(v float64, baseUnit string) string {
	unit, factor := ScaleForSmallest([]float64{v}, baseUnit)
	scaled := RoundSigFigs(v*factor, 3)
	return fmt.Sprintf("%g %s", scaled, unit)
}
