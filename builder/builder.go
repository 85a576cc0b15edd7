package builder

import (
	"fmt"

	"github.com/hjfreyer/stepwise/step"
)

// ExitLabel names one of the four ways control can leave a MachineBuilder
// instruction: falling through normally (ExitResult), an early return that
// ends the nearest enclosing Sequence (ExitReturn), a break out of
// the nearest enclosing ForLoop (ExitBreak), or a loop restart (ExitLoop).
type ExitLabel string

// The four reserved exit labels. They correspond 1:1 to the step package's
// reserved action tags of the same names (ActionResult, ActionReturn,
// ActionBreak, ActionNextLoop) — an instruction's exit label IS the action
// its compiled step.Machine raises to leave.
const (
	ExitResult ExitLabel = step.ActionResult
	ExitReturn ExitLabel = step.ActionReturn
	ExitBreak  ExitLabel = step.ActionBreak
	ExitLoop   ExitLabel = step.ActionNextLoop
)

// Exits maps each exit label an instruction can leave by to the Locals
// environment reached under that label. A label absent from the map is
// never actually taken — equivalent to mapping it to Unreachable.
type Exits map[ExitLabel]Locals

// Env is the Locals environment a MachineBuilder is entered with.
type Env = Locals

// exitLocals looks up label in exits, defaulting to Unreachable when the
// label was never produced.
func exitLocals(exits Exits, label ExitLabel) Locals {
	if loc, ok := exits[label]; ok {
		return loc
	}
	return Unreachable
}

// TypeError reports a stack-type violation caught while composing
// MachineBuilders: a pattern arity mismatch, a name used out of scope, or
// two branches disagreeing about the environment they leave behind. Every
// TypeError is raised at Build/Compile time — never while stepping the
// compiled machine, per the failure taxonomy's "stack-type violation"
// entry.
type TypeError struct {
	Op     string
	Detail string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("builder: %s: %s", e.Op, e.Detail)
}

// MachineBuilder is one instruction in the stack-typed surface. Given the
// Locals environment it is entered with, Build reports the Locals
// environments reached under each exit label it can leave by, and the
// step.Machine that implements it.
type MachineBuilder interface {
	Build(in Env) (Exits, step.Machine, error)
}

// MachineBuilderFunc adapts a plain function to MachineBuilder, mirroring
// the core step package's MachineFunc/HandlerFunc/ObserverFunc adapters.
type MachineBuilderFunc func(in Env) (Exits, step.Machine, error)

// Build implements MachineBuilder.
func (f MachineBuilderFunc) Build(in Env) (Exits, step.Machine, error) {
	return f(in)
}

// Compile builds b against the empty starting environment and returns the
// compiled step.Machine. It is an error for the program not to reach
// ExitResult — Break and Loop are only meaningful nested inside a ForLoop,
// and Return inside a Sequence, never at the top level of a whole program.
func Compile(b MachineBuilder) (step.Machine, error) {
	exits, m, err := b.Build(Empty)
	if err != nil {
		return nil, err
	}
	if res := exitLocals(exits, ExitResult); res.IsUnreachable() {
		return nil, &TypeError{Op: "compile", Detail: "program never reaches its result exit"}
	}
	return m, nil
}
