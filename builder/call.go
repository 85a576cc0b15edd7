package builder

import "github.com/hjfreyer/stepwise/step"

type callBuilder struct{ inner step.Machine }

// Call delegates to an external step.Machine, passing it the value on top
// of the stack and pushing back whatever it results in. Any effect the
// delegate raises (after Call has chased its own internal ActionContinue
// self-transitions via step.RunToAction) is surfaced unchanged to whatever
// drives the compiled program — Call is not a handler, just a relocation of
// one value from the builder's stack to a machine's Start message and back.
//
// The rest of the caller's locals are not visible to inner at all; they are
// carried, untouched, as the tuple half of Call's own suspension state, so
// that a suspend-then-resume round trip through an external driver cannot
// disturb bindings the delegate never had access to.
func Call(inner step.Machine) MachineBuilder {
	return callBuilder{inner: inner}
}

func (c callBuilder) Build(in Env) (Exits, step.Machine, error) {
	if in.IsUnreachable() {
		return unreachableExits(), deadMachine, nil
	}
	rest, err := in.Pop()
	if err != nil {
		return nil, nil, &TypeError{Op: "call", Detail: "stack is empty, no argument to call with"}
	}
	out := rest.Push("")
	return Exits{ExitResult: out}, callMachine{inner: c.inner, depth: in.Depth()}, nil
}

const callAwaiting = "call-awaiting"

// callMachine drives callBuilder.inner to completion or suspension. Its own
// Start message is the full operand stack, arg on top; its own suspended
// state pairs the delegate's resume state with the untouched rest of the
// stack, so the caller's other locals survive the round trip verbatim.
type callMachine struct {
	inner step.Machine
	depth int
}

func (c callMachine) Step(state step.State, msg step.Value) step.Result {
	switch state.Tag {
	case step.TagStart:
		stack, err := stackOf(msg, c.depth)
		if err != nil {
			return step.Failed(err)
		}
		rest := append([]step.Value{}, stack[:c.depth-1]...)
		arg := stack[c.depth-1]
		return c.advance(rest, step.RunToAction(c.inner, step.Start, arg))

	case callAwaiting:
		pair, ok := state.Args.(step.Tuple)
		if !ok || pair.Arity() != 2 {
			return step.Failed(step.ErrBadState)
		}
		innerResume, ok := pair.Elems[0].(step.State)
		if !ok {
			return step.Failed(step.ErrBadState)
		}
		restTup, ok := pair.Elems[1].(step.Tuple)
		if !ok {
			return step.Failed(step.ErrBadState)
		}
		return c.advance(restTup.Elems, step.RunToAction(c.inner, innerResume, msg))

	default:
		return step.Failed(step.ErrBadState)
	}
}

func (c callMachine) advance(rest []step.Value, res step.Result) step.Result {
	if res.Err != nil {
		return step.Failed(res.Err)
	}
	if res.Action == step.ActionResult {
		out := append(append([]step.Value{}, rest...), res.ActionArgs)
		return step.ResultOf(step.NewTuple(out...))
	}
	suspend := step.State{
		Tag:  callAwaiting,
		Args: step.Pair(res.Resume, step.NewTuple(rest...)),
	}
	return step.Raise(res.Action, res.ActionArgs, suspend)
}
