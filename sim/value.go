package sim

import (
	"math"
	"strconv"
)

type valueState uint8

const (
	stateUndefined valueState = iota
	stateDefined
	stateUnstable
)

// Value is a metric that may have no numeric value. The zero Value is Undefined.
type Value struct {
	v     float64
	state valueState
}

var (
	// Undefined marks a metric that cannot be computed from the input, for
	// example any observed metric of an empty trace.
	Undefined = Value{}

	// Unstable marks a closed-form metric that does not exist because rho >= 1.
	Unstable = Value{state: stateUnstable}
)

// Defined wraps a finite number. NaN and infinities become Undefined.
func Defined(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined
	}
	return Value{v: v, state: stateDefined}
}

// Float64 returns the number and whether it is defined.
func (v Value) Float64() (float64, bool) {
	return v.v, v.state == stateDefined
}

// IsDefined reports whether v holds a number.
func (v Value) IsDefined() bool { return v.state == stateDefined }

// IsUnstable reports whether v is the Unstable sentinel.
func (v Value) IsUnstable() bool { return v.state == stateUnstable }

func (v Value) String() string {
	switch v.state {
	case stateDefined:
		return strconv.FormatFloat(v.v, 'f', 4, 64)
	case stateUnstable:
		return "unstable"
	default:
		return "undefined"
	}
}

// absDelta is |a-b| when both sides are defined. Unstable wins over
// Undefined otherwise.
func absDelta(a, b Value) Value {
	x, okA := a.Float64()
	y, okB := b.Float64()
	switch {
	case okA && okB:
		return Defined(math.Abs(x - y))
	case a.IsUnstable() || b.IsUnstable():
		return Unstable
	default:
		return Undefined
	}
}

// MarshalYAML encodes a number, or the sentinel's name as a string.
func (v Value) MarshalYAML() (interface{}, error) {
	if x, ok := v.Float64(); ok {
		return x, nil
	}
	return v.String(), nil
}
