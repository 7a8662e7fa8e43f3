package pushfsm

import (
	"errors"
	"fmt"
)

// BehaviorRegistry indexes exactly one behavior per declared state for
// constant-time dispatch.
type BehaviorRegistry struct {
	behaviors []Behavior
}

// NewBehaviorRegistry places each behavior at the slot named by its StateID.
// Every state in [0, states) must be covered by exactly one instance;
// missing, duplicate, nil or out-of-range behaviors are configuration
// errors.
func NewBehaviorRegistry(states int, behaviors []Behavior) (*BehaviorRegistry, error) {
	if states <= 0 {
		return nil, fmt.Errorf("pushfsm: state count must be positive, got %d", states)
	}
	r := &BehaviorRegistry{behaviors: make([]Behavior, states)}
	for _, b := range behaviors {
		if b == nil {
			return nil, errors.New("pushfsm: nil behavior")
		}
		id := b.StateID()
		if id < 0 || int(id) >= states {
			return nil, fmt.Errorf("pushfsm: behavior state %d out of range [0,%d)", id, states)
		}
		if r.behaviors[id] != nil {
			return nil, fmt.Errorf("pushfsm: duplicate behavior for state %d", id)
		}
		r.behaviors[id] = b
	}
	for id, b := range r.behaviors {
		if b == nil {
			return nil, fmt.Errorf("pushfsm: no behavior registered for state %d", id)
		}
	}
	return r, nil
}

// At returns the behavior owning the given state. The id must be in range;
// the handler only dispatches ids that came off a validated stack.
func (r *BehaviorRegistry) At(id StateID) Behavior {
	return r.behaviors[id]
}

// setup attaches the handler back-reference to every behavior and runs its
// OnSetup hook, in state order. Called once from NewHandler.
func (r *BehaviorRegistry) setup(h *Handler) {
	for _, b := range r.behaviors {
		b.attach(h)
		b.OnSetup()
	}
}
