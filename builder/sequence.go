package builder

import (
	"fmt"

	"github.com/hjfreyer/stepwise/step"
)

type sequenceBuilder struct{ instrs []MachineBuilder }

// Sequence composes instrs left to right: each instruction's ExitResult
// environment becomes the next instruction's entry environment. The
// compiled program's own ExitResult is the join of the final instruction's
// fall-through shape with every intermediate instruction's ExitReturn shape
// — the underlying step.Sequence combinator swallows an ActionReturn from
// any step into its own ActionResult, so a mid-sequence Return and a normal
// fall-through must agree on the stack shape they leave behind. ExitBreak
// and ExitLoop pass through unchanged (joined across every instruction that
// can raise them), for an enclosing ForLoop to consume.
func Sequence(instrs ...MachineBuilder) MachineBuilder {
	return sequenceBuilder{instrs: instrs}
}

func (s sequenceBuilder) Build(in Env) (Exits, step.Machine, error) {
	cur := in
	machines := make([]step.Machine, 0, len(s.instrs))
	returnJoin := Unreachable
	passThrough := Exits{}

	for i, instr := range s.instrs {
		subExits, m, err := instr.Build(cur)
		if err != nil {
			return nil, nil, err
		}
		machines = append(machines, m)

		if ret, ok := subExits[ExitReturn]; ok {
			returnJoin, err = compatible(returnJoin, ret)
			if err != nil {
				return nil, nil, &TypeError{Op: "sequence", Detail: fmt.Sprintf("step %d's return exit disagrees with an earlier one: %v", i, err)}
			}
		}
		for _, label := range []ExitLabel{ExitBreak, ExitLoop} {
			loc, ok := subExits[label]
			if !ok {
				continue
			}
			if existing, ok2 := passThrough[label]; ok2 {
				merged, err := compatible(existing, loc)
				if err != nil {
					return nil, nil, &TypeError{Op: "sequence", Detail: fmt.Sprintf("step %d's %s exit disagrees with an earlier one: %v", i, label, err)}
				}
				passThrough[label] = merged
			} else {
				passThrough[label] = loc
			}
		}

		cur = exitLocals(subExits, ExitResult)
	}

	finalResult, err := compatible(returnJoin, cur)
	if err != nil {
		return nil, nil, &TypeError{Op: "sequence", Detail: fmt.Sprintf("fall-through exit disagrees with an earlier return: %v", err)}
	}

	exits := passThrough
	exits[ExitResult] = finalResult
	return exits, step.SequenceAll(machines...), nil
}
