package builder

import (
	"fmt"

	"github.com/hjfreyer/stepwise/step"
)

// Pattern describes how Bind destructures the value on top of the stack: a
// Name captures it under a name, a Literal asserts it equals a constant and
// discards it, and a Tuple pattern requires a step.Tuple of matching arity
// and recursively destructures each element.
type Pattern interface {
	// flatten returns the names this pattern binds, in order — "" has no
	// entry, since a matched literal produces no slot at all.
	flatten() []string
	// match destructures v against the pattern, returning the bound values
	// in the same order as flatten.
	match(v step.Value) ([]step.Value, error)
}

// namePattern binds the matched value to a name.
type namePattern string

// Name builds a Pattern that binds whatever it matches to name.
func Name(name string) Pattern { return namePattern(name) }

func (n namePattern) flatten() []string { return []string{string(n)} }

func (n namePattern) match(v step.Value) ([]step.Value, error) {
	return []step.Value{v}, nil
}

// literalPattern asserts the matched value equals want, then discards it —
// it binds no name and contributes no slot.
type literalPattern struct{ want step.Value }

// Literal builds a Pattern that asserts equality with want (compared via
// Value.String, since Value has no dedicated equality method) and
// produces no binding.
func Literal(want step.Value) Pattern { return literalPattern{want: want} }

func (l literalPattern) flatten() []string { return nil }

func (l literalPattern) match(v step.Value) ([]step.Value, error) {
	if v.String() != l.want.String() {
		return nil, fmt.Errorf("%w: expected literal %s, got %s", step.ErrBadMessage, l.want, v)
	}
	return nil, nil
}

// tuplePattern requires the matched value to be a step.Tuple of len(elems)
// and recursively matches each element.
type tuplePattern struct{ elems []Pattern }

// Tuple builds a Pattern requiring a step.Tuple of arity len(elems),
// recursively matching each element against the corresponding sub-pattern.
func Tuple(elems ...Pattern) Pattern { return tuplePattern{elems: elems} }

func (t tuplePattern) flatten() []string {
	var names []string
	for _, e := range t.elems {
		names = append(names, e.flatten()...)
	}
	return names
}

func (t tuplePattern) match(v step.Value) ([]step.Value, error) {
	tup, ok := v.(step.Tuple)
	if !ok || tup.Arity() != len(t.elems) {
		return nil, fmt.Errorf("%w: tuple pattern expects arity %d", step.ErrBadMessage, len(t.elems))
	}
	var bound []step.Value
	for i, e := range t.elems {
		sub, err := e.match(tup.At(i))
		if err != nil {
			return nil, err
		}
		bound = append(bound, sub...)
	}
	return bound, nil
}
