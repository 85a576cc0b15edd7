package builder

import "github.com/hjfreyer/stepwise/step"

type breakBuilder struct{}

// Break ends the nearest enclosing ForLoop, handing the entire current
// stack to it as the loop's result. It never falls through to ExitResult.
func Break() MachineBuilder { return breakBuilder{} }

func (breakBuilder) Build(in Env) (Exits, step.Machine, error) {
	if in.IsUnreachable() {
		return unreachableExits(), deadMachine, nil
	}
	return Exits{ExitBreak: in}, exitMachine(step.ActionBreak, in.Depth()), nil
}

type loopBuilder struct{}

// Loop restarts the nearest enclosing ForLoop's body, handing the entire
// current stack back to it as the body's new entry environment. It never
// falls through to ExitResult.
func Loop() MachineBuilder { return loopBuilder{} }

func (loopBuilder) Build(in Env) (Exits, step.Machine, error) {
	if in.IsUnreachable() {
		return unreachableExits(), deadMachine, nil
	}
	return Exits{ExitLoop: in}, exitMachine(step.ActionNextLoop, in.Depth()), nil
}

// exitMachine builds the one-shot Machine backing Break and Loop: on Start
// it decodes the full stack and immediately raises action with it, never to
// be stepped again.
func exitMachine(action string, depth int) step.Machine {
	return step.MachineFunc(func(state step.State, msg step.Value) step.Result {
		if state.Tag != step.TagStart {
			return step.Failed(step.ErrBadState)
		}
		stack, err := stackOf(msg, depth)
		if err != nil {
			return step.Failed(err)
		}
		return step.Raise(action, step.NewTuple(stack...), step.End)
	})
}
