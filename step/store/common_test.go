package store

import (
	"context"
	"testing"

	"github.com/hjfreyer/stepwise/step/emit"
)

// conformanceTest exercises the TranscriptStore contract identically against
// every backend, mirroring the teacher's shared table-driven suite run
// against each Store implementation.
func conformanceTest(t *testing.T, newStore func() TranscriptStore) {
	t.Run("NotFoundForUnknownRun", func(t *testing.T) {
		s := newStore()
		_, err := s.Transcript(context.Background(), "missing")
		if err != ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AppendPreservesOrder", func(t *testing.T) {
		s := newStore()
		ctx := context.Background()
		events := []emit.DriverEvent{
			{Step: 1, Action: "ask", Msg: "effect_raised"},
			{Step: 1, Action: "ask", Handler: "impl", Msg: "effect_resolved"},
			{Step: 2, Action: "result", Msg: "completed"},
		}
		for _, e := range events {
			if err := s.Append(ctx, "run-1", e); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}

		got, err := s.Transcript(ctx, "run-1")
		if err != nil {
			t.Fatalf("Transcript failed: %v", err)
		}
		if len(got) != len(events) {
			t.Fatalf("expected %d events, got %d", len(events), len(got))
		}
		for i := range events {
			if got[i].Action != events[i].Action || got[i].Msg != events[i].Msg {
				t.Errorf("event %d: expected %+v, got %+v", i, events[i], got[i])
			}
		}
	})

	t.Run("RunsAreIsolated", func(t *testing.T) {
		s := newStore()
		ctx := context.Background()
		_ = s.Append(ctx, "run-a", emit.DriverEvent{Action: "x"})
		_ = s.Append(ctx, "run-b", emit.DriverEvent{Action: "y"})

		a, err := s.Transcript(ctx, "run-a")
		if err != nil || len(a) != 1 || a[0].Action != "x" {
			t.Fatalf("unexpected transcript for run-a: %v, %+v", err, a)
		}
		b, err := s.Transcript(ctx, "run-b")
		if err != nil || len(b) != 1 || b[0].Action != "y" {
			t.Fatalf("unexpected transcript for run-b: %v, %+v", err, b)
		}
	})

	t.Run("RunIDsListsEveryRun", func(t *testing.T) {
		s := newStore()
		ctx := context.Background()
		_ = s.Append(ctx, "run-a", emit.DriverEvent{Action: "x"})
		_ = s.Append(ctx, "run-b", emit.DriverEvent{Action: "y"})

		ids, err := s.RunIDs(ctx)
		if err != nil {
			t.Fatalf("RunIDs failed: %v", err)
		}
		seen := map[string]bool{}
		for _, id := range ids {
			seen[id] = true
		}
		if !seen["run-a"] || !seen["run-b"] {
			t.Errorf("expected both runs listed, got %v", ids)
		}
	})

	t.Run("MetaRoundTrips", func(t *testing.T) {
		s := newStore()
		ctx := context.Background()
		meta := map[string]interface{}{"duration_ms": float64(12)}
		if err := s.Append(ctx, "run-meta", emit.DriverEvent{Action: "ask", Meta: meta}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		got, err := s.Transcript(ctx, "run-meta")
		if err != nil {
			t.Fatalf("Transcript failed: %v", err)
		}
		if got[0].Meta["duration_ms"] != float64(12) {
			t.Errorf("expected meta to round-trip, got %v", got[0].Meta)
		}
	})
}

func TestMemStoreConformance(t *testing.T) {
	conformanceTest(t, func() TranscriptStore { return NewMemStore() })
}

func TestSQLiteStoreConformance(t *testing.T) {
	conformanceTest(t, func() TranscriptStore {
		s, err := NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("NewSQLiteStore failed: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}
