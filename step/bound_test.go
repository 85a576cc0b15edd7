package step

import "testing"

// echoOnce raises name(msg) once and resolves to whatever reply it gets,
// terminating for good (Resume == End) — unlike PassThroughEffect it is not
// meant to be reused, which makes it a clean fixture for scope-exit tests.
func echoOnce(name string) Machine {
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

func TestBoundServicesHandledEffect(t *testing.T) {
	inner := echoOnce("ask")
	upper := ImplHandler(Transformer(func(v Value) Value { return Str("handled:" + string(v.(Str))) }))
	m := NewBound(inner, map[string]Handler{"ask": upper})

	res := RunToAction(m, Start, Str("x"))
	if res.Action != ActionResult {
		t.Fatalf("expected the handler to fully service 'ask' with no outward effect, got %+v", res)
	}
	if got := res.ActionArgs.(Str); got != "handled:x" {
		t.Errorf("expected handled:x, got %v", got)
	}
}

func TestBoundPassThroughIdentity(t *testing.T) {
	// Bound(M, {}) must behave exactly like M.
	inner := echoOnce("ask")
	bound := NewBound(inner, map[string]Handler{})

	res := RunToAction(bound, Start, Str("payload"))
	if res.Action != "ask" || res.ActionArgs.(Str) != "payload" {
		t.Fatalf("expected unhandled effect to surface unchanged, got %+v", res)
	}

	res = RunToAction(bound, res.Resume, Str("reply"))
	if res.Action != ActionResult || res.ActionArgs.(Str) != "reply" {
		t.Fatalf("expected result 'reply', got %+v", res)
	}
}

func TestBoundPassThroughHandlerRenames(t *testing.T) {
	inner := echoOnce("iter")
	m := NewBound(inner, map[string]Handler{"iter": PassThroughHandler("str_iter")})

	res := RunToAction(m, Start, Str("payload"))
	if res.Action != "str_iter" {
		t.Fatalf("expected effect renamed to 'str_iter', got %q", res.Action)
	}
	if res.ActionArgs.(Str) != "payload" {
		t.Errorf("expected payload forwarded unchanged, got %v", res.ActionArgs)
	}

	res = RunToAction(m, res.Resume, Str("echo"))
	if res.Action != ActionResult || res.ActionArgs.(Str) != "echo" {
		t.Fatalf("expected the reply to resume the inner machine to a result, got %+v", res)
	}
}

func TestBoundResultHandler(t *testing.T) {
	// Installing ResultHandler() under "result" lets an external handler
	// decide the scope's final value instead of the inner machine's own
	// ActionResult terminating it directly.
	inner := Transformer(func(v Value) Value { return Str("raw:" + string(v.(Str))) })
	m := NewBound(inner, map[string]Handler{"result": ResultHandler()})

	res := RunToAction(m, Start, Str("x"))
	if res.Action != ActionResult {
		t.Fatalf("expected ResultHandler to terminate the scope, got %+v", res)
	}
	if got := res.ActionArgs.(Str); got != "raw:x" {
		t.Errorf("expected raw:x forwarded through ResultHandler, got %v", got)
	}
}

func TestBoundAndThenChainsOntoResult(t *testing.T) {
	inner := Transformer(func(v Value) Value { return Int(int64(v.(Int)) + 1) })
	chain := AndThen(Transformer(func(v Value) Value { return Int(int64(v.(Int)) * 10) }))
	m := NewBound(inner, map[string]Handler{"result": chain})

	res := RunToAction(m, Start, Int(4))
	if res.Action != ActionResult || res.ActionArgs.(Int) != 50 {
		t.Fatalf("expected AndThen to chain 5*10=50, got %+v", res)
	}
}

func TestBoundContinueNeverConsultsHandlers(t *testing.T) {
	// A machine that internally self-loops via ActionContinue must never
	// have that transition intercepted even if "continue" is (perversely)
	// installed as a handler key.
	selfLoop := MachineFunc(func(state State, msg Value) Result {
		n := int64(msg.(Int))
		if n >= 2 {
			return ResultOf(Int(n))
		}
		return ContinueWith(Int(n+1), Start)
	})
	badHandler := HandlerFunc(func(name string, state State, msg Value) HandlerReply {
		t.Fatalf("handler must never be invoked for ActionContinue")
		return FailedReply(ErrBadState)
	})
	m := NewBound(selfLoop, map[string]Handler{ActionContinue: badHandler})

	res := RunToAction(m, Start, Int(0))
	if res.Action != ActionResult || res.ActionArgs.(Int) != 2 {
		t.Fatalf("expected result 2 via internally-chased continue, got %+v", res)
	}
}
