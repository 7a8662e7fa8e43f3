package pushfsm

import "fmt"

// StateStack holds one entity's active state and, beneath it, the states
// paused by Push in the order they were paused. It is pure data: all
// validation and hook dispatch lives in the Handler. A fresh stack is
// uninitialized until its first Bind enters state 0.
//
// Capacity equals the declared state count, which bounds any chain of
// pushes; the backing array never grows.
type StateStack struct {
	slots []StateID
	top   int // index of the active state, -1 while uninitialized
}

// NewStateStack creates an uninitialized stack for a machine with the given
// declared state count.
func NewStateStack(states int) *StateStack {
	if states <= 0 {
		panic(fmt.Sprintf("pushfsm: state count must be positive, got %d", states))
	}
	return &StateStack{
		slots: make([]StateID, states),
		top:   -1,
	}
}

// Initialized reports whether the stack has entered its first state.
func (s *StateStack) Initialized() bool { return s.top >= 0 }

// Depth returns the number of stacked states, the paused ones included.
// Zero means uninitialized.
func (s *StateStack) Depth() int { return s.top + 1 }

// Cap returns the fixed capacity, equal to the declared state count.
func (s *StateStack) Cap() int { return len(s.slots) }

// Top returns the active state, or None while the stack is uninitialized.
func (s *StateStack) Top() StateID {
	if s.top < 0 {
		return None
	}
	return s.slots[s.top]
}

// States returns a copy of the stacked states from bottom to top.
func (s *StateStack) States() []StateID {
	out := make([]StateID, s.Depth())
	copy(out, s.slots[:s.Depth()])
	return out
}
