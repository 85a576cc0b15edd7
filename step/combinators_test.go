package step

import "testing"

// echoEffect raises name(msg) once, then resolves to the reply.
func echoEffect(name string) Machine {
	return MachineFunc(func(state State, msg Value) Result {
		switch state.Tag {
		case TagStart:
			return Raise(name, msg, State{Tag: "awaiting"})
		case "awaiting":
			return ResultOf(msg)
		default:
			return Failed(ErrBadState)
		}
	})
}

func TestSequenceChainsResults(t *testing.T) {
	addOne := Transformer(func(v Value) Value { return Int(int64(v.(Int)) + 1) })
	double := Transformer(func(v Value) Value { return Int(int64(v.(Int)) * 2) })
	seq := Sequence(addOne, double)

	res := RunToAction(seq, Start, Int(5))
	if res.Action != ActionResult || res.ActionArgs.(Int) != 12 {
		t.Fatalf("expected result 12, got %+v", res)
	}
}

func TestSequencePropagatesEffectFromA(t *testing.T) {
	seq := Sequence(echoEffect("ask"), Transformer(func(v Value) Value { return v }))
	res := RunToAction(seq, Start, Str("x"))
	if res.Action != "ask" || res.ActionArgs.(Str) != "x" {
		t.Fatalf("expected effect 'ask' to surface from a, got %+v", res)
	}
	res = RunToAction(seq, res.Resume, Str("reply"))
	if res.Action != ActionResult || res.ActionArgs.(Str) != "reply" {
		t.Fatalf("expected final result 'reply', got %+v", res)
	}
}

func TestSequenceAssociativity(t *testing.T) {
	inc := func(n int64) Machine {
		return Transformer(func(v Value) Value { return Int(int64(v.(Int)) + n) })
	}
	left := Sequence(Sequence(inc(1), inc(2)), inc(3))
	right := Sequence(inc(1), Sequence(inc(2), inc(3)))

	r1 := RunToAction(left, Start, Int(0))
	r2 := RunToAction(right, Start, Int(0))
	if r1.Action != ActionResult || r2.Action != ActionResult {
		t.Fatalf("expected both to terminate: %+v / %+v", r1, r2)
	}
	if r1.ActionArgs.(Int) != r2.ActionArgs.(Int) {
		t.Errorf("associativity violated: %v != %v", r1.ActionArgs, r2.ActionArgs)
	}
}

func TestSequenceAllEmptyIsIdentity(t *testing.T) {
	m := SequenceAll()
	res := RunToAction(m, Start, Str("same"))
	if res.Action != ActionResult || res.ActionArgs.(Str) != "same" {
		t.Fatalf("expected identity pass-through, got %+v", res)
	}
}

// countBody is a ForLoop body: n < 3 -> next_loop(n+1); else break(n).
var countBody = MachineFunc(func(state State, msg Value) Result {
	n := int64(msg.(Int))
	if n >= 3 {
		return Raise(ActionBreak, Int(n), End)
	}
	return Raise(ActionNextLoop, Int(n+1), End)
})

func TestForLoopCountsToBreak(t *testing.T) {
	loop := NewForLoop(countBody)
	res := RunToAction(loop, Start, Int(0))
	if res.Action != ActionResult {
		t.Fatalf("expected terminal result, got %+v", res)
	}
	if got := res.ActionArgs.(Int); got != 3 {
		t.Errorf("expected loop to break at 3, got %v", got)
	}
}

func TestForLoopPropagatesBodyEffect(t *testing.T) {
	loop := NewForLoop(echoEffect("ask"))
	res := RunToAction(loop, Start, Str("hi"))
	if res.Action != "ask" {
		t.Fatalf("expected effect 'ask' from body, got %+v", res)
	}
	res = RunToAction(loop, res.Resume, Str("bye"))
	if res.Action != ActionResult || res.ActionArgs.(Str) != "bye" {
		t.Fatalf("expected result 'bye', got %+v", res)
	}
}

func TestIfThenElseBranches(t *testing.T) {
	then := Transformer(func(v Value) Value { return Str("then:" + string(v.(Str))) })
	els := Transformer(func(v Value) Value { return Str("else:" + string(v.(Str))) })
	cond := NewIfThenElse(then, els)

	res := RunToAction(cond, Start, Pair(Str("x"), Bool(true)))
	if res.Action != ActionResult || res.ActionArgs.(Str) != "then:x" {
		t.Fatalf("expected then branch, got %+v", res)
	}

	res = RunToAction(cond, Start, Pair(Str("y"), Bool(false)))
	if res.Action != ActionResult || res.ActionArgs.(Str) != "else:y" {
		t.Fatalf("expected else branch, got %+v", res)
	}
}

func TestIfThenElseBadMessage(t *testing.T) {
	cond := NewIfThenElse(Transformer(func(v Value) Value { return v }), Transformer(func(v Value) Value { return v }))
	res := cond.Step(Start, Str("not a tuple"))
	if res.Err != ErrBadMessage {
		t.Errorf("expected ErrBadMessage, got %v", res.Err)
	}
}
