package model

import (
	"math"
	"strconv"
)

// Value is a real number that may be undefined. An undefined Value marks a
// metric whose denominator or data precondition was unmet; it is never a
// stand-in for zero and must not be aggregated as one. The zero Value is
// undefined.
type Value struct {
	v  float64
	ok bool
}

// Def returns a defined Value. NaN and infinities are rejected and collapse
// to undefined so they can never leak into downstream arithmetic.
func Def(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// Undef returns the undefined Value.
func Undef() Value { return Value{} }

// Ratio divides num by den, undefined when den is zero.
func Ratio(num, den float64) Value {
	if den == 0 {
		return Undef()
	}
	return Def(num / den)
}

// Get returns the value and whether it is defined.
func (x Value) Get() (float64, bool) { return x.v, x.ok }

// Defined reports whether the value is set.
func (x Value) Defined() bool { return x.ok }

// Or returns the value, or fallback when undefined.
func (x Value) Or(fallback float64) float64 {
	if !x.ok {
		return fallback
	}
	return x.v
}

func (x Value) String() string {
	if !x.ok {
		return "—"
	}
	return strconv.FormatFloat(x.v, 'f', -1, 64)
}

// MetricVector maps metric names to values for one player over one analysis
// window. It is immutable once computed; callers own the result.
type MetricVector struct {
	PlayerID string
	Values   map[string]Value
}

// Get returns the named metric, undefined when absent from the vector.
func (mv MetricVector) Get(name string) Value {
	return mv.Values[name]
}

// Defined reports whether the named metric is present and defined.
func (mv MetricVector) Defined(name string) bool {
	return mv.Values[name].Defined()
}
