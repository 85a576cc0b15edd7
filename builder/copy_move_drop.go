package builder

import "github.com/hjfreyer/stepwise/step"

type copyBuilder struct{ name string }

// Copy pushes an unnamed copy of the value bound to name onto the top of
// the stack, leaving the original binding in place.
func Copy(name string) MachineBuilder {
	return copyBuilder{name: name}
}

func (c copyBuilder) Build(in Env) (Exits, step.Machine, error) {
	if in.IsUnreachable() {
		return unreachableExits(), deadMachine, nil
	}
	idx, err := in.Index(c.name)
	if err != nil {
		return nil, nil, err
	}
	depth := in.Depth()
	out := in.Push("")
	m := transformStack(depth, func(stack []step.Value) (step.Value, error) {
		next := make([]step.Value, 0, depth+1)
		next = append(next, stack...)
		next = append(next, stack[idx])
		return step.NewTuple(next...), nil
	})
	return Exits{ExitResult: out}, m, nil
}

type moveBuilder struct{ name string }

// Move removes the binding for name from its current position and pushes
// its value onto the top of the stack, unnamed.
func Move(name string) MachineBuilder {
	return moveBuilder{name: name}
}

func (mv moveBuilder) Build(in Env) (Exits, step.Machine, error) {
	if in.IsUnreachable() {
		return unreachableExits(), deadMachine, nil
	}
	idx, err := in.Index(mv.name)
	if err != nil {
		return nil, nil, err
	}
	depth := in.Depth()
	out := in.Remove(idx).Push("")
	m := transformStack(depth, func(stack []step.Value) (step.Value, error) {
		v := stack[idx]
		next := make([]step.Value, 0, depth)
		next = append(next, stack[:idx]...)
		next = append(next, stack[idx+1:]...)
		next = append(next, v)
		return step.NewTuple(next...), nil
	})
	return Exits{ExitResult: out}, m, nil
}

type dropBuilder struct{ name string }

// Drop removes the bound slot for name entirely; its value is discarded.
func Drop(name string) MachineBuilder {
	return dropBuilder{name: name}
}

func (d dropBuilder) Build(in Env) (Exits, step.Machine, error) {
	if in.IsUnreachable() {
		return unreachableExits(), deadMachine, nil
	}
	idx, err := in.Index(d.name)
	if err != nil {
		return nil, nil, err
	}
	depth := in.Depth()
	out := in.Remove(idx)
	m := transformStack(depth, func(stack []step.Value) (step.Value, error) {
		next := make([]step.Value, 0, depth-1)
		next = append(next, stack[:idx]...)
		next = append(next, stack[idx+1:]...)
		return step.NewTuple(next...), nil
	})
	return Exits{ExitResult: out}, m, nil
}
