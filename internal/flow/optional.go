package flow

import "math"

// Optional is a float64 that may not be known yet.
type Optional struct {
	value float64
	set   bool
}

func Some(v float64) Optional { return Optional{value: v, set: true} }

// None returns an unset Optional. It is equal to the zero value.
func None() Optional { return Optional{} }

func (o Optional) Get() (float64, bool) { return o.value, o.set }

func (o Optional) IsSet() bool { return o.set }

// Value returns the stored value, or NaN when unset so that arithmetic on an
// incomplete station degrades to NaN instead of a silent zero.
func (o Optional) Value() float64 {
	if !o.set {
		return math.NaN()
	}
	return o.value
}

// Or returns the stored value or fallback when unset.
func (o Optional) Or(fallback float64) float64 {
	if !o.set {
		return fallback
	}
	return o.value
}
