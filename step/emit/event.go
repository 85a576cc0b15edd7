package emit

// DriverEvent represents an observability event emitted while a Driver runs
// a step machine to completion.
//
// Events provide detailed insight into a driven machine's behavior:
//   - Effects raised and the replies they received
//   - Handler installs and invocations inside a Bound/Call scope
//   - Errors surfaced by the failure taxonomy
//   - Final results
//
// Events are emitted to an Emitter which can:
//   - Log to stdout/stderr
//   - Send to OpenTelemetry
//   - Record metrics in Prometheus
//   - Persist to a TranscriptStore for later inspection
type DriverEvent struct {
	// RunID identifies the Driver invocation that emitted this event.
	RunID string

	// Step is the sequential RunToAction call number within the run
	// (1-indexed). Zero for run-level events (start, complete, error).
	Step int

	// Action is the effect or reserved action name this event concerns.
	// Empty string for run-level events.
	Action string

	// Handler names the handler installed for Action inside the nearest
	// enclosing Bound/Call scope, if any. Empty when the effect escaped to
	// the top-level Observer instead of being serviced by a handler.
	Handler string

	// Msg is a human-readable description of the event.
	Msg string

	// Meta contains additional structured data specific to this event.
	// Common keys:
	//   - "duration_ms": time spent servicing the effect
	//   - "error": error details
	//   - "event_id": identifier used by a TranscriptStore
	Meta map[string]interface{}
}
