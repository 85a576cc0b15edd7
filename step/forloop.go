package step

const forLoopTagBody = "body"

type forLoopMachine struct {
	body Machine
}

// NewForLoop wraps a body machine that additionally recognises ActionBreak
// and ActionNextLoop (alias ActionLoop). The loop has no induction variable
// of its own: each iteration's seed message is whatever the previous
// iteration's ActionNextLoop payload was. Termination is entirely the
// body's responsibility via ActionBreak.
func NewForLoop(body Machine) Machine {
	return &forLoopMachine{body: body}
}

func (f *forLoopMachine) Step(state State, msg Value) Result {
	switch state.Tag {
	case TagStart:
		return ContinueWith(msg, State{Tag: forLoopTagBody, Args: Start})
	case forLoopTagBody:
		bodyState, ok := state.Args.(State)
		if !ok {
			return Failed(ErrBadState)
		}
		res := f.body.Step(bodyState, msg)
		if !res.Ok() {
			return res
		}
		switch res.Action {
		case ActionNextLoop: // == ActionLoop
			return ContinueWith(res.ActionArgs, State{Tag: forLoopTagBody, Args: Start})
		case ActionBreak:
			return ResultOf(res.ActionArgs)
		default:
			return reemit(res.Action, res.ActionArgs, State{Tag: forLoopTagBody, Args: res.Resume})
		}
	default:
		return Failed(ErrBadState)
	}
}
