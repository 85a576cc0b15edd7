package builder

import (
	"fmt"

	"github.com/hjfreyer/stepwise/step"
)

type forLoopBuilder struct{ body MachineBuilder }

// ForLoop repeatedly runs body, which must leave via Break or Loop — never
// by falling through to its own ExitResult, which ForLoop requires stay
// Unreachable. Loop's exit environment must be compatible with the loop's
// own entry environment (restarting the body with a differently-shaped
// stack is a type error); Break's exit environment becomes the whole
// ForLoop's ExitResult.
func ForLoop(body MachineBuilder) MachineBuilder {
	return forLoopBuilder{body: body}
}

func (f forLoopBuilder) Build(in Env) (Exits, step.Machine, error) {
	if in.IsUnreachable() {
		return unreachableExits(), deadMachine, nil
	}

	bodyExits, bodyM, err := f.body.Build(in)
	if err != nil {
		return nil, nil, err
	}

	if res := exitLocals(bodyExits, ExitResult); !res.IsUnreachable() {
		return nil, nil, &TypeError{Op: "for-loop", Detail: "loop body must exit via Break or Loop, not fall through"}
	}

	if loopEnv, ok := bodyExits[ExitLoop]; ok {
		if _, err := compatible(in, loopEnv); err != nil {
			return nil, nil, &TypeError{Op: "for-loop", Detail: fmt.Sprintf("loop exit disagrees with entry environment: %v", err)}
		}
	}

	exits := Exits{ExitResult: exitLocals(bodyExits, ExitBreak)}
	if ret, ok := bodyExits[ExitReturn]; ok {
		exits[ExitReturn] = ret
	}

	return exits, step.NewForLoop(bodyM), nil
}
