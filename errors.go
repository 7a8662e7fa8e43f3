package pushfsm

import "errors"

// Sentinel errors returned by handler operations. All are wrapped with the
// offending states, so match with errors.Is. Programming errors (operating
// on an unbound handler, binding a mis-sized stack) panic instead.
var (
	// ErrInvalidTransition reports a Jump or Push along an edge the
	// transition table does not declare.
	ErrInvalidTransition = errors.New("pushfsm: invalid transition")

	// ErrStackOverflow reports a Push onto a full stack.
	ErrStackOverflow = errors.New("pushfsm: state stack overflow")

	// ErrStackUnderflow reports a Pop with no paused state left to resume.
	ErrStackUnderflow = errors.New("pushfsm: state stack underflow")
)
