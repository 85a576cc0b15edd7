package builder

import "github.com/hjfreyer/stepwise/step"

type bindBuilder struct{ pattern Pattern }

// Bind pops the top of the stack and destructures it against pattern,
// pushing back the names pattern binds in order. A Literal pattern
// produces no slot; a Tuple pattern requires the popped value be a
// step.Tuple of matching arity and recursively destructures it.
func Bind(pattern Pattern) MachineBuilder {
	return bindBuilder{pattern: pattern}
}

func (b bindBuilder) Build(in Env) (Exits, step.Machine, error) {
	if in.IsUnreachable() {
		return unreachableExits(), deadMachine, nil
	}
	rest, err := in.Pop()
	if err != nil {
		return nil, nil, err
	}
	out := rest
	for _, name := range b.pattern.flatten() {
		out = out.Push(name)
	}
	depth := in.Depth()
	m := transformStack(depth, func(stack []step.Value) (step.Value, error) {
		top := stack[len(stack)-1]
		bound, err := b.pattern.match(top)
		if err != nil {
			return nil, err
		}
		next := make([]step.Value, 0, len(stack)-1+len(bound))
		next = append(next, stack[:len(stack)-1]...)
		next = append(next, bound...)
		return step.NewTuple(next...), nil
	})
	return Exits{ExitResult: out}, m, nil
}
