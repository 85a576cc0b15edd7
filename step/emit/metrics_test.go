package emit

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusEmitter_EffectsTotal(t *testing.T) {
	registry := prometheus.NewRegistry()
	emitter := NewPrometheusEmitter(registry)

	emitter.Emit(DriverEvent{RunID: "run-001", Step: 1, Action: "ask", Msg: "effect_raised"})
	emitter.Emit(DriverEvent{RunID: "run-001", Step: 1, Action: "ask", Msg: "effect_resolved"})

	if got := testutil.ToFloat64(emitter.effectsTotal.WithLabelValues("ask")); got != 2 {
		t.Errorf("effects_total{action=ask} = %v, want 2", got)
	}
}

func TestPrometheusEmitter_ActiveRuns(t *testing.T) {
	registry := prometheus.NewRegistry()
	emitter := NewPrometheusEmitter(registry)

	emitter.Emit(DriverEvent{RunID: "run-001", Msg: "start"})
	if got := testutil.ToFloat64(emitter.activeRuns); got != 1 {
		t.Errorf("active_runs = %v, want 1", got)
	}

	emitter.Emit(DriverEvent{RunID: "run-001", Msg: "completed"})
	if got := testutil.ToFloat64(emitter.activeRuns); got != 0 {
		t.Errorf("active_runs = %v, want 0", got)
	}
}

func TestPrometheusEmitter_ErrorsTotal(t *testing.T) {
	registry := prometheus.NewRegistry()
	emitter := NewPrometheusEmitter(registry)

	emitter.Emit(DriverEvent{
		RunID:  "run-001",
		Action: "ask",
		Msg:    "error",
		Meta:   map[string]interface{}{"error": "unhandled effect"},
	})

	if got := testutil.ToFloat64(emitter.errorsTotal.WithLabelValues("ask", "unhandled effect")); got != 1 {
		t.Errorf("errors_total{action=ask,reason=unhandled effect} = %v, want 1", got)
	}
}

func TestPrometheusEmitter_EffectLatency(t *testing.T) {
	registry := prometheus.NewRegistry()
	emitter := NewPrometheusEmitter(registry)

	emitter.Emit(DriverEvent{
		RunID:  "run-001",
		Action: "ask",
		Msg:    "effect_resolved",
		Meta:   map[string]interface{}{"duration_ms": float64(42)},
	})

	count := testutil.CollectAndCount(emitter.effectLatency)
	if count != 1 {
		t.Errorf("expected 1 histogram series, got %d", count)
	}
}

func TestPrometheusEmitter_DisableEnable(t *testing.T) {
	registry := prometheus.NewRegistry()
	emitter := NewPrometheusEmitter(registry)

	emitter.Disable()
	emitter.Emit(DriverEvent{RunID: "run-001", Action: "ask", Msg: "effect_raised"})
	if got := testutil.ToFloat64(emitter.effectsTotal.WithLabelValues("ask")); got != 0 {
		t.Errorf("expected no recording while disabled, got %v", got)
	}

	emitter.Enable()
	emitter.Emit(DriverEvent{RunID: "run-001", Action: "ask", Msg: "effect_raised"})
	if got := testutil.ToFloat64(emitter.effectsTotal.WithLabelValues("ask")); got != 1 {
		t.Errorf("expected recording after re-enable, got %v", got)
	}
}

func TestPrometheusEmitter_EmitBatch(t *testing.T) {
	registry := prometheus.NewRegistry()
	emitter := NewPrometheusEmitter(registry)

	events := []DriverEvent{
		{RunID: "run-001", Action: "ask", Msg: "effect_raised"},
		{RunID: "run-001", Action: "ask", Msg: "effect_resolved"},
		{RunID: "run-001", Action: "tell", Msg: "effect_raised"},
	}
	if err := emitter.EmitBatch(nil, events); err != nil {
		t.Fatalf("EmitBatch failed: %v", err)
	}

	if got := testutil.ToFloat64(emitter.effectsTotal.WithLabelValues("ask")); got != 2 {
		t.Errorf("effects_total{action=ask} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(emitter.effectsTotal.WithLabelValues("tell")); got != 1 {
		t.Errorf("effects_total{action=tell} = %v, want 1", got)
	}
}
