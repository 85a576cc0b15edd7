package step

// Reserved action tags with fixed semantics. Any other string is a
// user-defined effect name.
const (
	// ActionResult marks a machine's final value. Resume is always End; the
	// machine must not be stepped again.
	ActionResult = "result"

	// ActionContinue is an internal self-transition: the driver (or an
	// enclosing combinator) must re-invoke the machine with ActionArgs and
	// Resume as the next message and state, without surfacing this action
	// to any external observer.
	ActionContinue = "continue"

	// ActionBreak requests the nearest enclosing ForLoop terminate with
	// ActionArgs as the loop's result. It never surfaces above that loop.
	ActionBreak = "break"

	// ActionNextLoop requests the nearest enclosing ForLoop restart its body
	// with ActionArgs as the new initial message. ActionLoop is an accepted
	// alias for the same tag.
	ActionNextLoop = "next_loop"

	// ActionLoop is a second Go name for ActionNextLoop: it is the same
	// "next_loop" string, so it is accepted everywhere ActionNextLoop is. An
	// action spelled "loop" is not recognised by NewForLoop or IsReserved;
	// it is treated as an ordinary effect name.
	ActionLoop = "next_loop"

	// ActionReturn requests an early return from the nearest enclosing
	// Sequence: skip its remaining steps and propagate ActionArgs as the
	// sequence's own result.
	ActionReturn = "return"
)

// IsReserved reports whether action is one of the fixed-semantics tags
// rather than a user-defined effect name.
func IsReserved(action string) bool {
	switch action {
	case ActionResult, ActionContinue, ActionBreak, ActionNextLoop, ActionReturn:
		return true
	default:
		return false
	}
}

// Result is the uniform value every step machine returns from Step: an
// action tag, the payload that goes with it, and the State to resume from
// next.
//
// Err carries the error taxonomy from the Failure semantics section without
// widening the wire ABI: on every path an external observer can see, Err is
// nil. Combinators check Err first, before inspecting Action at all, and
// propagate it unchanged — the same discipline the teacher's engine applies
// to NodeResult.Err.
type Result struct {
	Action     string
	ActionArgs Value
	Resume     State
	Err        error
}

// Ok reports whether the result carries no error.
func (r Result) Ok() bool {
	return r.Err == nil
}

// Failed builds an error Result. Resume is set to End: a machine that has
// failed is finished, by the same rule as ActionResult.
func Failed(err error) Result {
	return Result{Resume: End, Err: err}
}

// ResultOf builds the terminal ActionResult Result carrying value v.
func ResultOf(v Value) Result {
	return Result{Action: ActionResult, ActionArgs: v, Resume: End}
}

// ContinueWith builds an ActionContinue Result: msg becomes the next
// message, resume the next state, both invisible to external observers.
func ContinueWith(msg Value, resume State) Result {
	return Result{Action: ActionContinue, ActionArgs: msg, Resume: resume}
}

// Raise builds a Result surfacing a user-defined effect (or any other
// action) with the given resume state.
func Raise(action string, args Value, resume State) Result {
	return Result{Action: action, ActionArgs: args, Resume: resume}
}

// reemit rebuilds a Result for verbatim forwarding by a combinator, wrapping
// the inner resume state as resume unless action is ActionResult — a
// terminal result's Resume is always End regardless of which layer of
// wrapping state the outer combinator would otherwise have attached, since
// §3 fixes Resume=End for ActionResult and no caller is permitted to step a
// machine again after observing it.
func reemit(action string, args Value, resume State) Result {
	if action == ActionResult {
		return ResultOf(args)
	}
	return Raise(action, args, resume)
}
