package step

import "testing"

func TestTransformer(t *testing.T) {
	double := Transformer(func(v Value) Value { return Int(int64(v.(Int)) * 2) })

	res := double.Step(Start, Int(21))
	if res.Action != ActionResult || res.Resume != End {
		t.Fatalf("expected terminal result, got %+v", res)
	}
	if got := res.ActionArgs.(Int); got != 42 {
		t.Errorf("expected 42, got %v", got)
	}
}

func TestTransformerBadState(t *testing.T) {
	m := Transformer(func(v Value) Value { return v })
	res := m.Step(State{Tag: "awaiting"}, Unit)
	if res.Err != ErrBadState {
		t.Errorf("expected ErrBadState, got %v", res.Err)
	}
}

func TestSingleState(t *testing.T) {
	m := SingleState(func(v Value) (string, Value) {
		return "greet", Str("hello " + string(v.(Str)))
	})
	res := m.Step(Start, Str("world"))
	if res.Action != "greet" {
		t.Fatalf("expected effect 'greet', got %q", res.Action)
	}
	if res.ActionArgs.(Str) != "hello world" {
		t.Errorf("unexpected args: %v", res.ActionArgs)
	}
	if res.Resume != End {
		t.Errorf("SingleState never suspends: expected End, got %v", res.Resume)
	}
}

func TestPassThroughEffectReusable(t *testing.T) {
	m := PassThroughEffect("ping")

	res := m.Step(Start, Str("one"))
	if res.Action != "ping" || res.ActionArgs.(Str) != "one" {
		t.Fatalf("expected ping(one), got %+v", res)
	}
	res = m.Step(res.Resume, Str("reply-one"))
	if res.Action != ActionResult || res.ActionArgs.(Str) != "reply-one" {
		t.Fatalf("expected result reply-one, got %+v", res)
	}
	if res.Resume != Start {
		t.Fatalf("PassThroughEffect must reset to Start for reuse, got %v", res.Resume)
	}

	// Reused a second time from the same machine value.
	res = m.Step(res.Resume, Str("two"))
	if res.Action != "ping" || res.ActionArgs.(Str) != "two" {
		t.Fatalf("expected ping(two) on reuse, got %+v", res)
	}
}
