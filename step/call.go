package step

const callTagHandler = "handler"

// callInnerArgs is Call's "inner" state payload: inner's own resume state
// plus the handler's private state.
type callInnerArgs struct {
	Inner   State
	Handler State
}

func (callInnerArgs) isValue()        {}
func (callInnerArgs) String() string { return "inner" }

// callHandlerArgs is Call's "handler" state payload.
type callHandlerArgs struct {
	Name    string
	Inner   State
	Handler State
}

func (callHandlerArgs) isValue()        {}
func (a callHandlerArgs) String() string { return "handler:" + a.Name }

type callMachine struct {
	inner   Machine
	handler Handler
}

// NewCall is a compact alternative to Bound(inner, handlers) that statically
// pairs one inner machine with one handler servicing every non-reserved
// action (every effect) the inner machine raises, using the same
// tri-valued HandlerReply contract as Bound. Reserved actions, including the
// inner machine's own result, never reach the handler: they pass outward
// unchanged. ActionContinue is likewise forwarded without consulting the
// handler.
func NewCall(inner Machine, handler Handler) Machine {
	return &callMachine{inner: inner, handler: handler}
}

func (c *callMachine) Step(state State, msg Value) Result {
	switch state.Tag {
	case TagStart:
		return c.callInner(Start, msg, Start)
	case boundTagInner:
		args, ok := state.Args.(callInnerArgs)
		if !ok {
			return Failed(ErrBadState)
		}
		return c.callInner(args.Inner, msg, args.Handler)
	case callTagHandler:
		args, ok := state.Args.(callHandlerArgs)
		if !ok {
			return Failed(ErrBadState)
		}
		return c.callHandler(args.Name, msg, args.Handler, args.Inner)
	default:
		return Failed(ErrBadState)
	}
}

func (c *callMachine) callInner(innerState State, msg Value, hState State) Result {
	res := c.inner.Step(innerState, msg)
	if !res.Ok() {
		return res
	}
	if res.Action == ActionContinue {
		return Result{Action: ActionContinue, ActionArgs: res.ActionArgs,
			Resume: State{Tag: boundTagInner, Args: callInnerArgs{Inner: res.Resume, Handler: hState}}}
	}
	if IsReserved(res.Action) {
		return reemit(res.Action, res.ActionArgs,
			State{Tag: boundTagInner, Args: callInnerArgs{Inner: res.Resume, Handler: hState}})
	}
	return c.callHandler(res.Action, res.ActionArgs, hState, res.Resume)
}

func (c *callMachine) callHandler(name string, msg Value, hState State, innerState State) Result {
	reply := c.handler.Handle(name, hState, msg)
	if reply.Err != nil {
		return Failed(reply.Err)
	}
	switch reply.Kind {
	case ReplyResume:
		return Result{Action: ActionContinue, ActionArgs: reply.Msg,
			Resume: State{Tag: boundTagInner, Args: callInnerArgs{Inner: innerState, Handler: reply.State}}}
	case ReplyContinue:
		if reply.Action == ActionResult {
			return ResultOf(reply.ActionArgs)
		}
		return Result{Action: reply.Action, ActionArgs: reply.ActionArgs,
			Resume: State{Tag: callTagHandler, Args: callHandlerArgs{Name: name, Inner: innerState, Handler: reply.State}}}
	case ReplyResult:
		return ResultOf(reply.Msg)
	default:
		return Failed(ErrBadState)
	}
}
