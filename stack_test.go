package pushfsm_test

import (
	"reflect"
	"testing"

	. "github.com/comalice/pushfsm"
)

func TestNewStateStackValidation(t *testing.T) {
	mustPanic(t, "zero states", func() { NewStateStack(0) })
	mustPanic(t, "negative states", func() { NewStateStack(-3) })
}

func TestFreshStackIsUninitialized(t *testing.T) {
	s := NewStateStack(int(numRobotStates))
	if s.Initialized() {
		t.Error("expected fresh stack uninitialized")
	}
	if got := s.Top(); got != None {
		t.Errorf("expected top None, got %d", got)
	}
	if got := s.Depth(); got != 0 {
		t.Errorf("expected depth 0, got %d", got)
	}
	if got := s.Cap(); got != int(numRobotStates) {
		t.Errorf("expected capacity %d, got %d", numRobotStates, got)
	}
	if got := s.States(); len(got) != 0 {
		t.Errorf("expected no stacked states, got %v", got)
	}
}

func TestStackAccessorsTrackOperations(t *testing.T) {
	h, _ := newRobot(t)
	s := h.NewStack()
	h.Bind(s, tick(1))

	if !s.Initialized() {
		t.Error("expected stack initialized after bind")
	}
	if err := h.Push(tick(1), dancing); err != nil {
		t.Fatal(err)
	}

	if got, want := s.States(), []StateID{idle, dancing}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected states %v, got %v", want, got)
	}
	if got := s.Top(); got != dancing {
		t.Errorf("expected top %d, got %d", dancing, got)
	}
	if got := s.Depth(); got != 2 {
		t.Errorf("expected depth 2, got %d", got)
	}
}

// States hands out a copy; mutating it cannot corrupt the stack.
func TestStatesReturnsCopy(t *testing.T) {
	h, _ := newRobot(t)
	s := h.NewStack()
	h.Bind(s, tick(1))

	states := s.States()
	states[0] = dancing

	if got := s.Top(); got != idle {
		t.Errorf("expected top unaffected at %d, got %d", idle, got)
	}
}
