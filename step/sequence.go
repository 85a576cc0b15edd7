package step

// sequenceState tags.
const (
	seqTagRunA = "run_a"
	seqTagRunB = "run_b"
)

type sequenceMachine struct {
	a, b Machine
}

// Sequence runs a to completion, then feeds a's result as the initial
// message to b; effects from either side surface transparently, and b's
// eventual result becomes the sequence's result. a and b's states are never
// collapsed into a product — only one is ever live — which keeps effect
// re-raising trivial: whichever side is currently running just has its
// action re-emitted verbatim.
func Sequence(a, b Machine) Machine {
	return &sequenceMachine{a: a, b: b}
}

func (s *sequenceMachine) Step(state State, msg Value) Result {
	switch state.Tag {
	case TagStart:
		return ContinueWith(msg, State{Tag: seqTagRunA, Args: Start})
	case seqTagRunA:
		aState, ok := state.Args.(State)
		if !ok {
			return Failed(ErrBadState)
		}
		res := s.a.Step(aState, msg)
		if !res.Ok() {
			return res
		}
		switch res.Action {
		case ActionResult:
			return ContinueWith(res.ActionArgs, State{Tag: seqTagRunB, Args: Start})
		case ActionReturn:
			return ResultOf(res.ActionArgs)
		default:
			return Raise(res.Action, res.ActionArgs, State{Tag: seqTagRunA, Args: res.Resume})
		}
	case seqTagRunB:
		bState, ok := state.Args.(State)
		if !ok {
			return Failed(ErrBadState)
		}
		res := s.b.Step(bState, msg)
		if !res.Ok() {
			return res
		}
		return reemit(res.Action, res.ActionArgs, State{Tag: seqTagRunB, Args: res.Resume})
	default:
		return Failed(ErrBadState)
	}
}

// SequenceAll composes machines left to right via repeated Sequence,
// equivalent under the Sequence-associativity testable property regardless
// of how the fold associates.
func SequenceAll(machines ...Machine) Machine {
	if len(machines) == 0 {
		return Transformer(func(v Value) Value { return v })
	}
	result := machines[len(machines)-1]
	for i := len(machines) - 2; i >= 0; i-- {
		result = Sequence(machines[i], result)
	}
	return result
}
