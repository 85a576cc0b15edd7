package builder

import "github.com/hjfreyer/stepwise/step"

type pushBuilder struct{ v step.Value }

// Push compiles to an instruction that pushes the constant v onto the top
// of the stack, leaving every existing slot (named or not) untouched.
func Push(v step.Value) MachineBuilder {
	return pushBuilder{v: v}
}

func (p pushBuilder) Build(in Env) (Exits, step.Machine, error) {
	if in.IsUnreachable() {
		return unreachableExits(), deadMachine, nil
	}
	depth := in.Depth()
	out := in.Push("")
	m := transformStack(depth, func(stack []step.Value) (step.Value, error) {
		next := make([]step.Value, 0, depth+1)
		next = append(next, stack...)
		next = append(next, p.v)
		return step.NewTuple(next...), nil
	})
	return Exits{ExitResult: out}, m, nil
}
