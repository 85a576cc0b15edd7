package builder

import (
	"fmt"

	"github.com/hjfreyer/stepwise/step"
)

type ifThenElseBuilder struct {
	then, els MachineBuilder
}

// IfThenElse pops a Bool condition off the top of the stack and runs then
// if it is true, els otherwise. The two branches must produce compatible
// Locals environments at every exit label they share — Unreachable is
// absorbed by whichever side actually produces a reachable environment.
func IfThenElse(then, els MachineBuilder) MachineBuilder {
	return ifThenElseBuilder{then: then, els: els}
}

func (c ifThenElseBuilder) Build(in Env) (Exits, step.Machine, error) {
	if in.IsUnreachable() {
		return unreachableExits(), deadMachine, nil
	}
	rest, err := in.Pop()
	if err != nil {
		return nil, nil, &TypeError{Op: "if-then-else", Detail: "stack is empty, no condition to branch on"}
	}

	thenExits, thenM, err := c.then.Build(rest)
	if err != nil {
		return nil, nil, err
	}
	elsExits, elsM, err := c.els.Build(rest)
	if err != nil {
		return nil, nil, err
	}

	exits := Exits{}
	labels := map[ExitLabel]bool{}
	for l := range thenExits {
		labels[l] = true
	}
	for l := range elsExits {
		labels[l] = true
	}
	for label := range labels {
		merged, err := compatible(exitLocals(thenExits, label), exitLocals(elsExits, label))
		if err != nil {
			return nil, nil, &TypeError{Op: "if-then-else", Detail: fmt.Sprintf("then/else disagree at exit %q: %v", label, err)}
		}
		exits[label] = merged
	}

	depth := in.Depth()
	// adapter decodes the full stack tuple into the (rest, cond) pair
	// step.NewIfThenElse expects on Start.
	adapter := step.MachineFunc(func(state step.State, msg step.Value) step.Result {
		if state.Tag != step.TagStart {
			return step.Failed(step.ErrBadState)
		}
		stack, err := stackOf(msg, depth)
		if err != nil {
			return step.Failed(err)
		}
		cond := stack[len(stack)-1]
		restTup := step.NewTuple(stack[:len(stack)-1]...)
		return step.ResultOf(step.Pair(restTup, cond))
	})
	m := step.Sequence(adapter, step.NewIfThenElse(thenM, elsM))
	return exits, m, nil
}
