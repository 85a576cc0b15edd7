package step

import "errors"

// ErrBadState indicates Step was called with a state tag the machine does
// not recognise for its current position in the composition tree. Fatal
// programmer error (Failure semantics taxonomy item 1).
var ErrBadState = errors.New("step: unrecognised state tag")

// ErrBadMessage indicates the message shape does not match what the current
// state expects (Failure semantics taxonomy item 2).
var ErrBadMessage = errors.New("step: message does not match state")

// ErrUnhandledEffect indicates the driver received an effect action with no
// handler installed and the observer declined to answer it (Failure
// semantics taxonomy item 3).
var ErrUnhandledEffect = errors.New("step: unhandled effect at top level")

// ErrFinalized indicates a machine whose previous Result carried
// ActionResult (Resume == End) was stepped again (Failure semantics
// taxonomy item 5).
var ErrFinalized = errors.New("step: machine re-entered after result")
