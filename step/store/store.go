// Package store provides append-only transcript persistence for Driver runs.
//
// A TranscriptStore is deliberately write-mostly: it is an audit log of
// DriverEvents a Driver has already observed, kept for debugging, metrics
// rollups, and compliance trails. Nothing in this package, or anywhere else
// in this module, reads a stored transcript back into a running Machine —
// step machines carry no state across process boundaries by design, and a
// TranscriptStore does not change that. It is an external collaborator, the
// same way an emit.Emitter or a model.ChatModel is.
package store

import (
	"context"
	"errors"

	"github.com/hjfreyer/stepwise/step/emit"
)

// ErrNotFound is returned when a requested run ID has no recorded transcript.
var ErrNotFound = errors.New("not found")

// TranscriptStore persists the sequence of DriverEvents observed for each
// run, in the order they occurred.
//
// Implementations can use:
//   - In-memory storage (for testing, see memory.go)
//   - SQLite (for local, single-process persistence, see sqlite.go)
//   - MySQL/MariaDB (for shared, multi-process persistence, see mysql.go)
type TranscriptStore interface {
	// Append records event as the next entry in runID's transcript.
	Append(ctx context.Context, runID string, event emit.DriverEvent) error

	// Transcript returns every event recorded for runID, in append order.
	// Returns ErrNotFound if no event has ever been appended for runID.
	Transcript(ctx context.Context, runID string) ([]emit.DriverEvent, error)

	// RunIDs lists every run with at least one recorded event, in no
	// particular order.
	RunIDs(ctx context.Context) ([]string, error)
}
