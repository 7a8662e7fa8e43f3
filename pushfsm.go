// Package pushfsm implements a pushdown finite state machine engine for
// per-tick simulations: game entities, robotics control loops, anything that
// drives many actors through a shared set of validated states.
//
// A Handler is configured once with a behavior per state and a table of
// allowed transitions. Each entity owns a StateStack; the handler is bound
// to one stack at a time, driven through Jump/Push/Pop/Update, and unbound
// again. Jump switches the active state in place, while Push suspends it and
// Pop resumes it, giving call/return semantics on top of the same
// edge-validated graph.
//
//	h, err := pushfsm.NewHandler(int(StateCount), behaviors, transitions)
//	...
//	h.Bind(stack, ctx) // first Bind enters state 0
//	h.Update(ctx)
//	h.Unbind()
//
// The engine is fully synchronous and never schedules ticks itself; see the
// realtime package for a caller-side tick driver and the config package for
// declarative machine definitions.
package pushfsm

import "time"

// StateID identifies one state of a machine. States are dense and zero-based:
// a machine declaring N states uses identifiers 0..N-1, and state 0 is the
// one entered on a stack's first Bind.
type StateID int

// None marks the absence of a state: the top of an uninitialized stack and
// the from side of the initial entry.
const None StateID = -1

// Context is the per-tick value handed to every behavior hook: a
// monotonically increasing tick sequence number, the elapsed time since the
// previous tick, and an opaque caller-owned payload. The engine never reads
// Data; per-entity mutable state belongs there, not on behavior instances.
type Context struct {
	Seq   uint64
	Delta time.Duration
	Data  any
}

// Transition declares the states directly reachable from From, for Jump and
// Push alike. Several declarations for the same From accumulate.
type Transition struct {
	From StateID
	To   []StateID
}
