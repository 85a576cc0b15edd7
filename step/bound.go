package step

const (
	boundTagInner   = "inner"
	boundTagHandler = "handler"
)

// handlerStates is Bound's private bookkeeping: each installed handler's
// own State, preserved across every subsequent invocation of that handler
// for the lifetime of one Bound scope. It implements Value purely so it can
// live inside a State.Args; it is never constructed or inspected outside
// this file.
type handlerStates map[string]State

func (handlerStates) isValue()        {}
func (handlerStates) String() string { return "handler_states" }

func (hs handlerStates) clone() handlerStates {
	out := make(handlerStates, len(hs))
	for k, v := range hs {
		out[k] = v
	}
	return out
}

// boundInnerArgs is the Args payload of the "inner" state: about to step the
// inner machine with the incoming message.
type boundInnerArgs struct {
	Inner    State
	Handlers handlerStates
}

func (boundInnerArgs) isValue()        {}
func (boundInnerArgs) String() string { return "inner" }

// boundHandlerArgs is the Args payload of the "handler" state: about to step
// the named handler with the incoming message.
type boundHandlerArgs struct {
	Name     string
	Inner    State
	Handlers handlerStates
}

func (boundHandlerArgs) isValue()        {}
func (a boundHandlerArgs) String() string { return "handler:" + a.Name }

type boundMachine struct {
	inner    Machine
	handlers map[string]Handler
}

// NewBound installs handlers over inner, keyed by effect name. An inner
// step whose action matches a key in handlers is intercepted by that
// handler; every other action — including ActionResult, if "result" has no
// handler — re-raises outward unchanged, and a reply to it resumes inner
// directly. Each handler's own private state is initialised to Start on
// first entry to the scope and threaded across every subsequent
// invocation. ActionContinue is always forwarded without consulting
// handlers, even if "continue" happens to be a key in handlers: it is
// reserved for the driver, never user-interceptable.
func NewBound(inner Machine, handlers map[string]Handler) Machine {
	hCopy := make(map[string]Handler, len(handlers))
	for k, v := range handlers {
		hCopy[k] = v
	}
	return &boundMachine{inner: inner, handlers: hCopy}
}

func (b *boundMachine) Step(state State, msg Value) Result {
	switch state.Tag {
	case TagStart:
		hs := make(handlerStates, len(b.handlers))
		for name := range b.handlers {
			hs[name] = Start
		}
		return b.callInner(Start, msg, hs)
	case boundTagInner:
		args, ok := state.Args.(boundInnerArgs)
		if !ok {
			return Failed(ErrBadState)
		}
		return b.callInner(args.Inner, msg, args.Handlers)
	case boundTagHandler:
		args, ok := state.Args.(boundHandlerArgs)
		if !ok {
			return Failed(ErrBadState)
		}
		return b.callHandler(args.Name, msg, args.Handlers, args.Inner)
	default:
		return Failed(ErrBadState)
	}
}

func (b *boundMachine) callInner(innerState State, msg Value, hs handlerStates) Result {
	res := b.inner.Step(innerState, msg)
	if !res.Ok() {
		return res
	}
	if res.Action == ActionContinue {
		return Result{Action: ActionContinue, ActionArgs: res.ActionArgs,
			Resume: State{Tag: boundTagInner, Args: boundInnerArgs{Inner: res.Resume, Handlers: hs}}}
	}
	if _, handled := b.handlers[res.Action]; handled {
		return b.callHandler(res.Action, res.ActionArgs, hs, res.Resume)
	}
	// No handler installed for this name: re-raise unchanged. A reply to an
	// unhandled effect resumes inner directly, with the same bookkeeping a
	// serviced effect would have used — this is what makes
	// Bound(M, {}) observationally identical to M.
	if res.Action == ActionResult {
		return ResultOf(res.ActionArgs)
	}
	return Result{Action: res.Action, ActionArgs: res.ActionArgs,
		Resume: State{Tag: boundTagInner, Args: boundInnerArgs{Inner: res.Resume, Handlers: hs}}}
}

func (b *boundMachine) callHandler(name string, msg Value, hs handlerStates, innerState State) Result {
	handler, ok := b.handlers[name]
	if !ok {
		return Failed(ErrBadState)
	}
	reply := handler.Handle(name, hs[name], msg)
	if reply.Err != nil {
		return Failed(reply.Err)
	}
	newHS := hs.clone()
	newHS[name] = reply.State
	switch reply.Kind {
	case ReplyResume:
		return Result{Action: ActionContinue, ActionArgs: reply.Msg,
			Resume: State{Tag: boundTagInner, Args: boundInnerArgs{Inner: innerState, Handlers: newHS}}}
	case ReplyContinue:
		if reply.Action == ActionResult {
			return ResultOf(reply.ActionArgs)
		}
		return Result{Action: reply.Action, ActionArgs: reply.ActionArgs,
			Resume: State{Tag: boundTagHandler, Args: boundHandlerArgs{Name: name, Inner: innerState, Handlers: newHS}}}
	case ReplyResult:
		return ResultOf(reply.Msg)
	default:
		return Failed(ErrBadState)
	}
}
