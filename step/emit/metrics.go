package emit

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusEmitter implements Emitter by recording Prometheus-compatible
// metrics for driver runs in production environments.
//
// Metrics exposed (all namespaced with "stepwise"):
//
//  1. active_runs (gauge): Number of Driver.Run invocations currently in
//     flight. Incremented on a "start" event, decremented on "completed" or
//     "error".
//  2. effect_latency_ms (histogram): Time spent servicing a raised effect,
//     from the Meta["duration_ms"] field on an "effect_resolved" event.
//     Labels: action, status (success/error).
//  3. effects_total (counter): Cumulative count of events that carry a
//     non-empty Action (a raised and a resolved event for the same effect
//     both count). Labels: action.
//  4. errors_total (counter): Cumulative count of errors surfaced by the
//     failure taxonomy (ErrBadState, ErrBadMessage, ErrUnhandledEffect,
//     ErrFinalized, or a machine/handler failure). Labels: action, reason.
//
// Usage:
//
//	registry := prometheus.NewRegistry()
//	metrics := emit.NewPrometheusEmitter(registry)
//	// Have the Observer forward each DriverEvent to metrics.Emit
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
type PrometheusEmitter struct {
	activeRuns    prometheus.Gauge
	effectLatency *prometheus.HistogramVec
	effectsTotal  *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec

	mu      sync.RWMutex
	enabled bool
}

// NewPrometheusEmitter creates and registers driver metrics with the
// provided Prometheus registry. If registry is nil, the default global
// registerer is used.
func NewPrometheusEmitter(registry prometheus.Registerer) *PrometheusEmitter {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	pm := &PrometheusEmitter{enabled: true}

	pm.activeRuns = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: "stepwise",
		Name:      "active_runs",
		Help:      "Number of Driver.Run invocations currently in flight",
	})

	pm.effectLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stepwise",
		Name:      "effect_latency_ms",
		Help:      "Time spent servicing a raised effect, in milliseconds",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
	}, []string{"action", "status"})

	pm.effectsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stepwise",
		Name:      "effects_total",
		Help:      "Cumulative count of driver events that carry an action",
	}, []string{"action"})

	pm.errorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stepwise",
		Name:      "errors_total",
		Help:      "Cumulative count of errors surfaced while driving a machine",
	}, []string{"action", "reason"})

	return pm
}

// Emit records a single DriverEvent as one or more metric observations.
func (pm *PrometheusEmitter) Emit(event DriverEvent) {
	pm.mu.RLock()
	enabled := pm.enabled
	pm.mu.RUnlock()
	if !enabled {
		return
	}

	switch event.Msg {
	case "start":
		pm.activeRuns.Inc()
	case "completed":
		pm.activeRuns.Dec()
	case "error":
		pm.activeRuns.Dec()
	}

	if event.Action != "" {
		pm.effectsTotal.WithLabelValues(event.Action).Inc()
	}

	if reason, ok := event.Meta["error"].(string); ok {
		pm.errorsTotal.WithLabelValues(event.Action, reason).Inc()
	}

	status := "success"
	if _, ok := event.Meta["error"]; ok {
		status = "error"
	}
	if durMs, ok := event.Meta["duration_ms"].(float64); ok {
		pm.effectLatency.WithLabelValues(event.Action, status).Observe(durMs)
	}
}

// EmitBatch records each event in order.
func (pm *PrometheusEmitter) EmitBatch(_ context.Context, events []DriverEvent) error {
	for _, event := range events {
		pm.Emit(event)
	}
	return nil
}

// Flush is a no-op: Prometheus metrics are updated synchronously and scraped
// by a collector, not pushed on flush.
func (pm *PrometheusEmitter) Flush(_ context.Context) error {
	return nil
}

// Disable temporarily stops metric recording (useful for testing).
func (pm *PrometheusEmitter) Disable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = false
}

// Enable re-enables metric recording after Disable.
func (pm *PrometheusEmitter) Enable() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.enabled = true
}
