package step

import "testing"

// TestDeterminism: stepping a pure Machine twice from the same (state, msg)
// must produce the same Result both times.
func TestDeterminism(t *testing.T) {
	m := NewForLoop(strIterEqualsBody)
	state := State{Tag: forLoopTagBody, Args: State{Tag: "next_cb", Args: iterEqState{s: "ab", offset: 0}}}
	msg := Pair(Str("iter"), Bool(true))

	r1 := m.Step(state, msg)
	r2 := m.Step(state, msg)
	if r1.Action != r2.Action || r1.ActionArgs.String() != r2.ActionArgs.String() {
		t.Fatalf("same (state, msg) produced different results: %+v vs %+v", r1, r2)
	}
}

// TestContinueNeverObserved: a driver's Observer must never be asked to
// answer ActionContinue — it is chased internally by RunToAction no matter
// how many self-transitions a machine performs.
func TestContinueNeverObserved(t *testing.T) {
	selfLoop := MachineFunc(func(state State, msg Value) Result {
		if state.Tag == "awaiting" {
			return ResultOf(msg)
		}
		n := int64(msg.(Int))
		if n >= 10 {
			return Raise("done", Int(n), State{Tag: "awaiting"})
		}
		return ContinueWith(Int(n+1), Start)
	})
	seen := false
	_, err := Run(selfLoop, Start, Int(0), ObserverFunc(func(action string, args Value) (Value, error) {
		seen = true
		if action == ActionContinue {
			t.Fatalf("observer must never see ActionContinue")
		}
		return args, nil
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seen {
		t.Fatalf("expected the observer to be consulted for the 'done' effect")
	}
}

// TestHandlerLocality: an effect fully serviced by the innermost enclosing
// Bound that installs a handler for it must never reach an outer Bound's
// handler for the same name, even when the outer scope also installs one.
func TestHandlerLocality(t *testing.T) {
	outerInvoked := false
	outerHandler := HandlerFunc(func(name string, state State, msg Value) HandlerReply {
		outerInvoked = true
		return Resume(Start, msg)
	})
	innerHandler := ImplHandler(Transformer(func(v Value) Value { return Str("inner:" + string(v.(Str))) }))

	innerBound := NewBound(echoOnce("ask"), map[string]Handler{"ask": innerHandler})
	outerBound := NewBound(innerBound, map[string]Handler{"ask": outerHandler})

	res := RunToAction(outerBound, Start, Str("x"))
	if res.Action != ActionResult {
		t.Fatalf("expected the inner scope to fully service 'ask', got %+v", res)
	}
	if got := res.ActionArgs.(Str); got != "inner:x" {
		t.Errorf("expected the inner handler's answer, got %v", got)
	}
	if outerInvoked {
		t.Errorf("outer handler must never be invoked for an effect the inner scope already serviced")
	}
}

// TestPassThroughIdentityAcrossCombinators: Bound(M, {}) must be
// observationally identical to M for an arbitrary composition, not just a
// bare effect machine.
func TestPassThroughIdentityAcrossCombinators(t *testing.T) {
	m := Sequence(echoOnce("first"), echoOnce("second"))
	bound := NewBound(m, map[string]Handler{})

	driveBoth := func(mach Machine) (actions []string, final Value) {
		state, msg := Start, Value(Str("seed"))
		for {
			res := RunToAction(mach, state, msg)
			if res.Err != nil {
				t.Fatalf("unexpected error: %v", res.Err)
			}
			if res.Action == ActionResult {
				return actions, res.ActionArgs
			}
			actions = append(actions, res.Action)
			state, msg = res.Resume, Str("reply-"+res.Action)
		}
	}

	aActions, aFinal := driveBoth(m)
	bActions, bFinal := driveBoth(bound)

	if len(aActions) != len(bActions) {
		t.Fatalf("action trace length differs: %v vs %v", aActions, bActions)
	}
	for i := range aActions {
		if aActions[i] != bActions[i] {
			t.Errorf("action %d differs: %q vs %q", i, aActions[i], bActions[i])
		}
	}
	if aFinal.String() != bFinal.String() {
		t.Errorf("final value differs: %v vs %v", aFinal, bFinal)
	}
}
