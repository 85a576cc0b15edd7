package step

const (
	ifTagThen = "then"
	ifTagElse = "else"
)

type ifThenElseMachine struct {
	then, els Machine
}

// NewIfThenElse consumes a (smuggled, cond) pair on Start: if cond is true
// it enters the then branch with message smuggled, otherwise the else
// branch. Every subsequent step delegates to whichever branch was taken;
// the untaken branch is never stepped, and its effects and results
// propagate unchanged.
func NewIfThenElse(then, els Machine) Machine {
	return &ifThenElseMachine{then: then, els: els}
}

func (c *ifThenElseMachine) Step(state State, msg Value) Result {
	switch state.Tag {
	case TagStart:
		tup, ok := msg.(Tuple)
		if !ok || tup.Arity() != 2 {
			return Failed(ErrBadMessage)
		}
		cond, ok := tup.At(1).(Bool)
		if !ok {
			return Failed(ErrBadMessage)
		}
		branch := ifTagElse
		if bool(cond) {
			branch = ifTagThen
		}
		return ContinueWith(tup.At(0), State{Tag: branch, Args: Start})
	case ifTagThen:
		return c.step(c.then, state, msg, ifTagThen)
	case ifTagElse:
		return c.step(c.els, state, msg, ifTagElse)
	default:
		return Failed(ErrBadState)
	}
}

func (c *ifThenElseMachine) step(branch Machine, state State, msg Value, tag string) Result {
	branchState, ok := state.Args.(State)
	if !ok {
		return Failed(ErrBadState)
	}
	res := branch.Step(branchState, msg)
	if !res.Ok() {
		return res
	}
	return reemit(res.Action, res.ActionArgs, State{Tag: tag, Args: res.Resume})
}
