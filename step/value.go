// Package step provides the core step-machine and effect-handler runtime:
// pure (state, message) -> (action, payload, next state) functions composed
// with combinators into loops, conditionals, sequences, and effect-handling
// scopes, driven to completion by a single-threaded driver loop.
package step

import "fmt"

// Value is the payload universe carried on the wire between step machines:
// a tagged union of booleans, integers, strings, the unit value, and tuples
// of Values. Values are immutable; combinators never mutate one in place.
//
// State also implements Value, so a combinator's resume state can be
// carried as an ordinary tuple element or handler payload without a
// separate wrapper type. A handful of combinators in this package define
// further unexported Value implementations purely to carry their own
// opaque bookkeeping inside a State.Args — callers never see these, since
// only the machine that produced a State is allowed to decode it.
type Value interface {
	isValue()
	// String returns a debug representation; never used for wire equality.
	String() string
}

// Bool is a boolean Value.
type Bool bool

func (Bool) isValue() {}
func (b Bool) String() string { return fmt.Sprintf("%t", bool(b)) }

// Int is an integer Value.
type Int int64

func (Int) isValue() {}
func (i Int) String() string { return fmt.Sprintf("%d", int64(i)) }

// Str is a string Value.
type Str string

func (Str) isValue() {}
func (s Str) String() string { return fmt.Sprintf("%q", string(s)) }

// UnitValue is the single-inhabitant unit Value, used where a machine has
// nothing meaningful to carry (e.g. a SingleState effect request with no
// argument).
type UnitValue struct{}

// Unit is the canonical UnitValue instance.
var Unit = UnitValue{}

func (UnitValue) isValue()        {}
func (UnitValue) String() string { return "()" }

// Tuple is a fixed-arity ordered collection of Values.
type Tuple struct {
	Elems []Value
}

// NewTuple builds a Tuple from the given elements.
func NewTuple(elems ...Value) Tuple {
	return Tuple{Elems: elems}
}

func (Tuple) isValue() {}

func (t Tuple) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// At returns the i-th element of the tuple. It panics if i is out of range;
// callers that compose tuples of a known, spec-checked arity (the builder
// layer in particular) rely on this rather than threading an error through
// every projection.
func (t Tuple) At(i int) Value {
	return t.Elems[i]
}

// Arity returns the number of elements in the tuple.
func (t Tuple) Arity() int {
	return len(t.Elems)
}

// Pair is a convenience constructor for the extremely common 2-tuple.
func Pair(a, b Value) Tuple {
	return NewTuple(a, b)
}
