package step

import "testing"

func TestImplHandlerResumesOnResult(t *testing.T) {
	h := ImplHandler(Transformer(func(v Value) Value { return Int(int64(v.(Int)) + 1) }))
	reply := h.Handle("ask", Start, Int(41))
	if reply.Kind != ReplyResume {
		t.Fatalf("expected ReplyResume, got %+v", reply)
	}
	if reply.Msg.(Int) != 42 {
		t.Errorf("expected 42, got %v", reply.Msg)
	}
}

func TestImplHandlerForwardsUnansweredEffect(t *testing.T) {
	h := ImplHandler(echoOnce("nested"))
	reply := h.Handle("ask", Start, Str("x"))
	if reply.Kind != ReplyContinue {
		t.Fatalf("expected ReplyContinue for a sub-program's own unanswered effect, got %+v", reply)
	}
	if reply.Action != "nested" {
		t.Errorf("expected forwarded action 'nested', got %q", reply.Action)
	}
}

func TestAndThenAlwaysForwards(t *testing.T) {
	h := AndThen(Transformer(func(v Value) Value { return Str("done") }))
	reply := h.Handle("result", Start, Str("x"))
	if reply.Kind != ReplyContinue || reply.Action != ActionResult {
		t.Fatalf("expected AndThen to forward even the wrapped machine's own result, got %+v", reply)
	}
}

func TestPassThroughHandlerNoRenameUsesEffectName(t *testing.T) {
	h := PassThroughHandler("")
	reply := h.Handle("ask", Start, Str("x"))
	if reply.Kind != ReplyContinue || reply.Action != "ask" {
		t.Fatalf("expected the effect forwarded under its own name, got %+v", reply)
	}
	reply2 := h.Handle("ask", reply.State, Str("answer"))
	if reply2.Kind != ReplyResume || reply2.Msg.(Str) != "answer" {
		t.Fatalf("expected resume with the reply, got %+v", reply2)
	}
}

func TestResultHandlerTerminates(t *testing.T) {
	h := ResultHandler()
	reply := h.Handle("result", Start, Str("final"))
	if reply.Kind != ReplyResult || reply.Msg.(Str) != "final" {
		t.Fatalf("expected ReplyResult carrying the value, got %+v", reply)
	}
}
