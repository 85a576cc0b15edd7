package builder

import "github.com/hjfreyer/stepwise/step"

type makeTupleBuilder struct{ n int }

// MakeTuple pops the top n values off the stack and pushes a single
// anonymous step.Tuple built from them, in the order they were on the
// stack (bottom-most popped element first).
func MakeTuple(n int) MachineBuilder {
	return makeTupleBuilder{n: n}
}

func (mt makeTupleBuilder) Build(in Env) (Exits, step.Machine, error) {
	if in.IsUnreachable() {
		return unreachableExits(), deadMachine, nil
	}
	depth := in.Depth()
	if mt.n < 0 || mt.n > depth {
		return nil, nil, &TypeError{Op: "make-tuple", Detail: "not enough values on the stack"}
	}
	rest := in
	for i := 0; i < mt.n; i++ {
		var err error
		rest, err = rest.Pop()
		if err != nil {
			return nil, nil, err
		}
	}
	out := rest.Push("")
	m := transformStack(depth, func(stack []step.Value) (step.Value, error) {
		elems := stack[depth-mt.n:]
		next := make([]step.Value, 0, depth-mt.n+1)
		next = append(next, stack[:depth-mt.n]...)
		next = append(next, step.NewTuple(append([]step.Value{}, elems...)...))
		return step.NewTuple(next...), nil
	})
	return Exits{ExitResult: out}, m, nil
}
