package step

// Machine is a pure step machine: given a prior State and a message, it
// returns a Result. Implementations must be pure functions of their
// arguments — no shared mutable state, no I/O, no goroutines. Suspension
// between calls is represented entirely by the returned Result.Resume; the
// caller (a combinator or the driver) is responsible for deciding when and
// with what message to call Step again.
type Machine interface {
	// Step advances the machine by one transition. state must be a value
	// the machine itself previously returned as Result.Resume (or Start, on
	// the very first call); msg is the message being delivered at that
	// resume point.
	Step(state State, msg Value) Result
}

// MachineFunc adapts a plain function to the Machine interface, mirroring
// the teacher's NodeFunc adapter for its Node interface.
type MachineFunc func(state State, msg Value) Result

// Step implements Machine.
func (f MachineFunc) Step(state State, msg Value) Result {
	return f(state, msg)
}
