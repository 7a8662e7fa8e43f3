package pushfsm

import "fmt"

// Op identifies the operation behind a committed stack mutation.
type Op uint8

const (
	// OpInitial is the unconditional first entry driven by Bind.
	OpInitial Op = iota
	// OpJump replaced the active state at the same depth.
	OpJump
	// OpPush paused the active state and entered a new one above it.
	OpPush
	// OpPop terminated the active state and resumed the one beneath.
	OpPop
)

func (op Op) String() string {
	switch op {
	case OpInitial:
		return "initial"
	case OpJump:
		return "jump"
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	default:
		return fmt.Sprintf("op(%d)", uint8(op))
	}
}

// Observer is notified after a stack mutation commits and before the entry
// or resume hook of the new active state runs. For OpInitial from is None;
// for OpPop to is the resumed state. Observers are for logging, metrics and
// tracing; they must not call back into the handler.
type Observer interface {
	Transition(op Op, from, to StateID)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(op Op, from, to StateID)

// Transition calls f.
func (f ObserverFunc) Transition(op Op, from, to StateID) { f(op, from, to) }

// MultiObserver fans each notification out to every observer in order, in
// the manner of io.MultiWriter. Nil entries are skipped.
func MultiObserver(observers ...Observer) Observer {
	kept := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			kept = append(kept, o)
		}
	}
	return multiObserver(kept)
}

type multiObserver []Observer

func (m multiObserver) Transition(op Op, from, to StateID) {
	for _, o := range m {
		o.Transition(op, from, to)
	}
}
