package step

// Transformer lifts a pure value function into a Machine. From Start it
// consumes one message m and emits ResultOf(f(m)); any other incoming state
// is a programmer error (ErrBadState), since a Transformer never suspends.
func Transformer(f func(Value) Value) Machine {
	return MachineFunc(func(state State, msg Value) Result {
		if state.Tag != TagStart {
			return Failed(ErrBadState)
		}
		return ResultOf(f(msg))
	})
}

// SingleState lifts a pure function producing an (action, action_args) pair
// into a Machine that raises it in a single step. Unlike PassThroughEffect
// it never re-enters an awaiting state: the resume state is always End, so
// it is used to inject a single effect request (or any other action) as one
// step of a larger composition, not as a standalone reusable machine.
func SingleState(f func(Value) (string, Value)) Machine {
	return MachineFunc(func(state State, msg Value) Result {
		if state.Tag != TagStart {
			return Failed(ErrBadState)
		}
		action, args := f(msg)
		return Raise(action, args, End)
	})
}

// PassThroughEffect is the two-state identity/pass-through primitive from
// the primitive-adapters design: on Start it raises name(msg) and moves to
// "awaiting"; on "awaiting" it resolves the reply as its result and resets
// to Start, so the same Machine value can service the same effect shape
// repeatedly without being rebuilt.
func PassThroughEffect(name string) Machine {
	awaiting := State{Tag: "awaiting"}
	return MachineFunc(func(state State, msg Value) Result {
		switch state.Tag {
		case TagStart:
			return Raise(name, msg, awaiting)
		case "awaiting":
			return Result{Action: ActionResult, ActionArgs: msg, Resume: Start}
		default:
			return Failed(ErrBadState)
		}
	})
}
