package builder

import "github.com/hjfreyer/stepwise/step"

// Every instruction's compiled step.Machine is entered with the current
// stack as a single step.Tuple message, oldest slot first (bottom of stack)
// to newest (top of stack) — this lets Move and Drop reach into the middle
// of the stack without the builder layer inventing a second wire shape.

// stackOf decodes msg as the stack tuple an instruction was compiled
// against, checking its arity matches depth.
func stackOf(msg step.Value, depth int) ([]step.Value, error) {
	tup, ok := msg.(step.Tuple)
	if !ok || tup.Arity() != depth {
		return nil, step.ErrBadMessage
	}
	return tup.Elems, nil
}

// transformStack lifts a pure stack transform into a Machine for the
// stateless instructions (Push, Bind, Copy, Move, Drop, MakeTuple): it
// decodes the incoming stack, applies f, and re-encodes the result as the
// instruction's ActionResult payload.
func transformStack(depth int, f func(stack []step.Value) (step.Value, error)) step.Machine {
	return step.MachineFunc(func(state step.State, msg step.Value) step.Result {
		if state.Tag != step.TagStart {
			return step.Failed(step.ErrBadState)
		}
		stack, err := stackOf(msg, depth)
		if err != nil {
			return step.Failed(err)
		}
		out, err := f(stack)
		if err != nil {
			return step.Failed(err)
		}
		return step.ResultOf(out)
	})
}

// unreachableExits is the canonical Exits value for an instruction compiled
// against an Unreachable entry environment: nothing it does matters, since
// the surrounding static analysis has already proven it never runs.
func unreachableExits() Exits {
	return Exits{ExitResult: Unreachable}
}

// deadMachine backs every instruction compiled against an Unreachable
// environment. It is never stepped by a correctly-typed program; if it
// ever is, that is itself a bug in the static checks above it, so it fails
// loudly rather than silently fabricating a value.
var deadMachine = step.MachineFunc(func(step.State, step.Value) step.Result {
	return step.Failed(step.ErrBadState)
})
