// Package testutil provides behaviors that record their hook invocations,
// shared by the engine's test suites.
package testutil

import "github.com/comalice/pushfsm"

// Counts tallies the hook invocations one state has received.
type Counts struct {
	Setup     int
	Enter     int
	Terminate int
	Pause     int
	Resume    int
	Before    int
	Update    int
}

// Blackboard aggregates hook counts per state. One blackboard backs a whole
// behavior set so a test can assert the full invocation picture at once.
type Blackboard struct {
	counts []Counts
}

// NewBlackboard creates a zeroed blackboard for the given state count.
func NewBlackboard(states int) *Blackboard {
	return &Blackboard{counts: make([]Counts, states)}
}

// At returns the counts recorded for the given state.
func (b *Blackboard) At(id pushfsm.StateID) Counts {
	return b.counts[id]
}

// Reset zeroes every counter.
func (b *Blackboard) Reset() {
	for i := range b.counts {
		b.counts[i] = Counts{}
	}
}

// RecordingBehavior counts every hook call on a shared blackboard. The
// entry, pre-update and update hooks can additionally run a scripted
// function, which is how tests drive reentrant transitions.
type RecordingBehavior struct {
	pushfsm.BaseBehavior
	board *Blackboard

	// EnterFunc, when set, runs after OnEnter is counted.
	EnterFunc func(ctx pushfsm.Context)
	// BeforeFunc, when set, decides BeforeUpdate's result after the call
	// is counted; otherwise BeforeUpdate returns false.
	BeforeFunc func(ctx pushfsm.Context) bool
	// UpdateFunc, when set, runs after Update is counted.
	UpdateFunc func(ctx pushfsm.Context)
}

// NewRecordingBehavior creates a recording behavior for one state.
func NewRecordingBehavior(id pushfsm.StateID, board *Blackboard) *RecordingBehavior {
	return &RecordingBehavior{
		BaseBehavior: pushfsm.NewBaseBehavior(id),
		board:        board,
	}
}

// NewRecordingSet creates one recording behavior per state in [0, states)
// against a fresh blackboard.
func NewRecordingSet(states int) ([]pushfsm.Behavior, *Blackboard) {
	board := NewBlackboard(states)
	behaviors := make([]pushfsm.Behavior, states)
	for i := range behaviors {
		behaviors[i] = NewRecordingBehavior(pushfsm.StateID(i), board)
	}
	return behaviors, board
}

func (r *RecordingBehavior) OnSetup() {
	r.board.counts[r.StateID()].Setup++
}

func (r *RecordingBehavior) OnEnter(ctx pushfsm.Context) {
	r.board.counts[r.StateID()].Enter++
	if r.EnterFunc != nil {
		r.EnterFunc(ctx)
	}
}

func (r *RecordingBehavior) OnTerminate(ctx pushfsm.Context) {
	r.board.counts[r.StateID()].Terminate++
}

func (r *RecordingBehavior) OnPause(ctx pushfsm.Context) {
	r.board.counts[r.StateID()].Pause++
}

func (r *RecordingBehavior) OnResume(ctx pushfsm.Context) {
	r.board.counts[r.StateID()].Resume++
}

func (r *RecordingBehavior) BeforeUpdate(ctx pushfsm.Context) bool {
	r.board.counts[r.StateID()].Before++
	if r.BeforeFunc != nil {
		return r.BeforeFunc(ctx)
	}
	return false
}

func (r *RecordingBehavior) Update(ctx pushfsm.Context) {
	r.board.counts[r.StateID()].Update++
	if r.UpdateFunc != nil {
		r.UpdateFunc(ctx)
	}
}
