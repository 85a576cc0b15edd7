package step

import "fmt"

// Observer answers the effects a driven Machine surfaces. It is the only
// thing outside this package allowed to see a non-ActionContinue action:
// everything else — logging, LLM calls, HTTP tools — is an external
// collaborator reached through an Observer or a Handler, never wired into
// the core.
type Observer interface {
	// Observe is given a surfaced action and its payload and must return
	// the message to resume the machine with. An error return means the
	// observer declines to answer, which the driver turns into
	// ErrUnhandledEffect.
	Observe(action string, args Value) (Value, error)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(action string, args Value) (Value, error)

// Observe implements Observer.
func (f ObserverFunc) Observe(action string, args Value) (Value, error) {
	return f(action, args)
}

// RunToAction steps m starting from (state, msg), chasing ActionContinue
// self-transitions internally, and returns the first Result whose action is
// not ActionContinue (or an error Result). No chased ActionContinue is ever
// visible outside this function.
func RunToAction(m Machine, state State, msg Value) Result {
	for {
		if state.IsEnd() {
			return Failed(ErrFinalized)
		}
		res := m.Step(state, msg)
		if !res.Ok() || res.Action != ActionContinue {
			return res
		}
		state, msg = res.Resume, res.ActionArgs
	}
}

// Run drives m to completion: it calls RunToAction repeatedly, presenting
// every observable (non-continue) action to observer and feeding its reply
// back in as the next message, until the machine emits ActionResult. It
// returns that result's payload, or an error if the machine fails or an
// effect goes unanswered.
func Run(m Machine, start State, initial Value, observer Observer) (Value, error) {
	state, msg := start, initial
	for {
		res := RunToAction(m, state, msg)
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Action == ActionResult {
			return res.ActionArgs, nil
		}
		reply, err := observer.Observe(res.Action, res.ActionArgs)
		if err != nil {
			return nil, fmt.Errorf("%w: action %q: %v", ErrUnhandledEffect, res.Action, err)
		}
		state, msg = res.Resume, reply
	}
}
