package step

// implHandler treats a Machine as a Handler: its private State is simply
// the wrapped machine's own resume State, so there is no extra encoding
// layer between the two.
type implHandler struct {
	m Machine
}

// ImplHandler runs m as a sub-program servicing the effect: once m resolves
// to ActionResult, the effect is serviced (Resume) with m's result value.
// Any non-result action m raises is itself re-raised outward (ContinueReply)
// — ImplHandler does not swallow effects its own sub-program can't answer.
func ImplHandler(m Machine) Handler {
	return implHandler{m: m}
}

func (h implHandler) Handle(name string, state State, msg Value) HandlerReply {
	res := h.m.Step(state, msg)
	if !res.Ok() {
		return FailedReply(res.Err)
	}
	if res.Action == ActionResult {
		return Resume(res.Resume, res.ActionArgs)
	}
	return ContinueReply(res.Action, res.ActionArgs, res.Resume)
}

// andThenHandler never resumes the inner machine: every action m produces,
// including its eventual result, is forwarded outward.
type andThenHandler struct {
	m Machine
}

// AndThen is like ImplHandler, but never resumes the scope's inner
// machine — every action m raises, including m's own ActionResult, is
// forwarded outward via ContinueReply. It chains further work onto the
// scope's result value: installed under the name "result", it lets the
// scope's own final value become a new sub-program's effect stream.
func AndThen(m Machine) Handler {
	return andThenHandler{m: m}
}

func (h andThenHandler) Handle(name string, state State, msg Value) HandlerReply {
	res := h.m.Step(state, msg)
	if !res.Ok() {
		return FailedReply(res.Err)
	}
	return ContinueReply(res.Action, res.ActionArgs, res.Resume)
}

const passThroughTagAwaiting = "awaiting"

// passThroughHandler is a one-shot forwarder: it re-raises the effect,
// possibly under a new name, then resumes the inner machine with whatever
// reply arrives.
type passThroughHandler struct {
	rename string
}

// PassThroughHandler re-raises an effect unchanged (or, if rename is
// non-empty, under the given name) and resumes the inner machine with
// whatever reply the outer scope supplies. It is the neutral element that
// lets an effect cross a Bound boundary while remaining composable — the
// basis of the pass-through identity property.
func PassThroughHandler(rename string) Handler {
	return passThroughHandler{rename: rename}
}

func (h passThroughHandler) Handle(name string, state State, msg Value) HandlerReply {
	switch state.Tag {
	case TagStart:
		outName := name
		if h.rename != "" {
			outName = h.rename
		}
		return ContinueReply(outName, msg, State{Tag: passThroughTagAwaiting})
	case passThroughTagAwaiting:
		return Resume(Start, msg)
	default:
		return FailedReply(ErrBadState)
	}
}

// resultHandler terminates the enclosing scope as soon as it is invoked.
type resultHandler struct{}

// ResultHandler terminates the entire enclosing Bound/Call scope with the
// message it receives. It is meaningful only installed under the name
// "result", short-circuiting the scope's own inner machine result.
func ResultHandler() Handler {
	return resultHandler{}
}

func (resultHandler) Handle(name string, state State, msg Value) HandlerReply {
	return ResultReply(msg)
}
