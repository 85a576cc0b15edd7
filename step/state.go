package step

// State is the opaque resume point every step machine hands back to its
// caller. By convention a State is a tagged pair (Tag, Args): Tag is a short
// symbol naming where in the machine's logic to resume, and Args is
// whatever Value (often another nested State) that resume point needs.
//
// Callers must never inspect a State's Tag or Args — only the machine that
// produced it knows how to decode them. State implements Value so it can be
// embedded as a tuple element or carried as a handler's private state.
type State struct {
	Tag  string
	Args Value
}

func (State) isValue() {}

func (s State) String() string {
	if s.Args == nil {
		return s.Tag
	}
	return s.Tag + ":" + s.Args.String()
}

const (
	// TagStart is the reserved initial state tag every machine accepts as
	// its first call.
	TagStart = "start"

	// TagEnd is the reserved terminal state tag. A machine whose last Result
	// carried TagEnd must never be stepped again (see ErrFinalized).
	TagEnd = "end"
)

// Start is the canonical initial state, (TagStart, Unit).
var Start = State{Tag: TagStart, Args: Unit}

// End is the canonical terminal state, (TagEnd, Unit).
var End = State{Tag: TagEnd, Args: Unit}

// IsEnd reports whether s is the terminal state.
func (s State) IsEnd() bool {
	return s.Tag == TagEnd
}
