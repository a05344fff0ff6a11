package bench

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
)

// Variation is one concrete combination of parameter values from the
// cartesian product of a definition's params, plus the derived
// complexity weight n.
type Variation struct {
	keys   []string
	values map[string]any
	n      float64
}

// Keys returns the parameter names in declaration order.
func (v Variation) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Value returns the value bound to the named parameter.
func (v Variation) Value(name string) (any, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Args returns the variation's bindings as arguments for the action.
func (v Variation) Args() Args {
	args := make(Args, len(v.values))
	for k, val := range v.values {
		args[k] = val
	}
	return args
}

// N is the complexity weight for this variation: 1.0 when no field was
// designated, otherwise derived from the designated parameter's value.
func (v Variation) N() float64 { return v.n }

// String renders the variation as "k1=v1 k2=v2" in declaration order,
// or "-" for the empty variation.
func (v Variation) String() string {
	if len(v.keys) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(v.keys))
	for _, k := range v.keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v.values[k]))
	}
	return strings.Join(parts, " ")
}

// Variations expands the definition's parameter matrix into the ordered
// list of concrete variations. The expansion walks the cartesian
// product with the last declared parameter varying fastest, matching a
// nested-loop expansion over the declaration order. A definition with
// no parameters yields exactly one empty variation with n = 1.
func (d *Definition) Variations() []Variation {
	if len(d.params) == 0 {
		return []Variation{{n: 1.0}}
	}

	total := 1
	keys := make([]string, len(d.params))
	for i, p := range d.params {
		total *= len(p.Values)
		keys[i] = p.Name
	}

	out := make([]Variation, 0, total)
	indices := make([]int, len(d.params))
	for {
		values := make(map[string]any, len(d.params))
		for i, p := range d.params {
			values[p.Name] = p.Values[indices[i]]
		}
		v := Variation{keys: keys, values: values}
		v.n = d.weightFor(v)
		out = append(out, v)

		// Advance like an odometer: rightmost digit first.
		i := len(indices) - 1
		for i >= 0 {
			indices[i]++
			if indices[i] < len(d.params[i].Values) {
				break
			}
			indices[i] = 0
			i--
		}
		if i < 0 {
			return out
		}
	}
}

// weightFor derives the complexity weight for one variation. A positive
// numeric designated value is used directly; a countable non-numeric
// value (string, slice, array, map) contributes its length; anything
// else, including non-positive numbers, falls back to 1 with a warning
// so n stays a non-negative float.
func (d *Definition) weightFor(v Variation) float64 {
	if d.useFieldForN == "" {
		return 1.0
	}
	val := v.values[d.useFieldForN]
	if n, ok := numericValue(val); ok {
		if n <= 0 {
			slog.Warn("complexity weight source is not positive, using 1",
				"benchmark", d.title, "param", d.useFieldForN, "value", val)
			return 1.0
		}
		return n
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		slog.Warn("non-numeric complexity weight source, using element count",
			"benchmark", d.title, "param", d.useFieldForN, "value", val)
		return float64(rv.Len())
	default:
		slog.Warn("complexity weight source is neither numeric nor countable, using 1",
			"benchmark", d.title, "param", d.useFieldForN, "value", val)
		return 1.0
	}
}

func numericValue(val any) (float64, bool) {
	switch n := val.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
