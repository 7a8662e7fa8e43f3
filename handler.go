package pushfsm

import "fmt"

// Handler drives any number of state stacks through one shared behavior set
// and transition graph. It is bound to a single stack at a time: bind an
// entity's stack, run the tick's operations against it, unbind, move to the
// next entity. The stack carries all per-entity position, so serial
// rebinding is cheap and allocation-free.
//
// A Handler is not safe for concurrent use; drive it from one goroutine, as
// the realtime package does.
type Handler struct {
	graph    *TransitionGraph
	registry *BehaviorRegistry
	observer Observer

	stack *StateStack // bound stack, nil in between
}

// NewHandler validates the transition table and the behavior set for a
// machine with the given declared state count, then attaches and sets up
// every behavior. The returned handler starts unbound.
func NewHandler(states int, behaviors []Behavior, transitions []Transition, opts ...Option) (*Handler, error) {
	graph, err := NewTransitionGraph(states, transitions)
	if err != nil {
		return nil, err
	}
	registry, err := NewBehaviorRegistry(states, behaviors)
	if err != nil {
		return nil, err
	}
	h := &Handler{graph: graph, registry: registry}
	for _, opt := range opts {
		opt(h)
	}
	registry.setup(h)
	return h, nil
}

// StateCount returns the declared number of states.
func (h *Handler) StateCount() int { return h.graph.StateCount() }

// Graph exposes the transition graph for introspection and rendering.
func (h *Handler) Graph() *TransitionGraph { return h.graph }

// NewStack creates an uninitialized stack sized for this handler's machine.
func (h *Handler) NewStack() *StateStack { return NewStateStack(h.graph.StateCount()) }

// Bound reports whether a stack is currently bound.
func (h *Handler) Bound() bool { return h.stack != nil }

// Bind makes stack the handler's current stack. A stack that has never
// entered a state is initialized here: state 0 is entered unconditionally,
// with no edge check, firing its OnEnter with ctx. Rebinding an initialized
// stack fires nothing.
//
// Binding a nil stack, binding while another stack is bound, or binding a
// stack sized for a different machine is a programming error and panics.
func (h *Handler) Bind(stack *StateStack, ctx Context) {
	if stack == nil {
		panic("pushfsm: Bind with nil stack")
	}
	if h.stack != nil {
		panic("pushfsm: Bind while another stack is bound")
	}
	if stack.Cap() != h.graph.StateCount() {
		panic(fmt.Sprintf("pushfsm: stack capacity %d does not match declared state count %d",
			stack.Cap(), h.graph.StateCount()))
	}
	h.stack = stack
	if !stack.Initialized() {
		stack.top = 0
		stack.slots[0] = 0
		h.observe(OpInitial, None, 0)
		h.registry.At(0).OnEnter(ctx)
	}
}

// Unbind releases the current stack, leaving its contents untouched for a
// later Bind. Unbinding an already unbound handler is a no-op.
func (h *Handler) Unbind() {
	h.stack = nil
}

// Top returns the active state of the bound stack.
func (h *Handler) Top() StateID {
	return h.bound().Top()
}

// Jump replaces the active state with to at the same stack depth. The edge
// Top() -> to must be declared: on success the active behavior's
// OnTerminate runs, the top slot is swapped, and to's OnEnter runs. On an
// undeclared edge ErrInvalidTransition is returned and nothing happens.
func (h *Handler) Jump(ctx Context, to StateID) error {
	stack := h.bound()
	from := stack.Top()
	if !h.graph.Allowed(from, to) {
		return fmt.Errorf("%w: jump %d -> %d", ErrInvalidTransition, from, to)
	}
	h.registry.At(from).OnTerminate(ctx)
	stack.slots[stack.top] = to
	h.observe(OpJump, from, to)
	h.registry.At(to).OnEnter(ctx)
	return nil
}

// Push pauses the active state and enters to on top of it, validating the
// edge exactly like Jump. On success the active behavior's OnPause runs,
// to is stacked, and its OnEnter runs. An undeclared edge returns
// ErrInvalidTransition and a full stack returns ErrStackOverflow; either
// way nothing happens, no hook fires.
func (h *Handler) Push(ctx Context, to StateID) error {
	stack := h.bound()
	from := stack.Top()
	if !h.graph.Allowed(from, to) {
		return fmt.Errorf("%w: push %d -> %d", ErrInvalidTransition, from, to)
	}
	if stack.Depth() == stack.Cap() {
		return fmt.Errorf("%w: push %d -> %d at depth %d", ErrStackOverflow, from, to, stack.Depth())
	}
	h.registry.At(from).OnPause(ctx)
	stack.top++
	stack.slots[stack.top] = to
	h.observe(OpPush, from, to)
	h.registry.At(to).OnEnter(ctx)
	return nil
}

// Pop terminates the active state and resumes the paused state beneath it:
// the active behavior's OnTerminate runs, the slot is dropped, and the
// uncovered behavior's OnResume runs. Popping with no paused state beneath
// the active one returns ErrStackUnderflow and nothing happens.
func (h *Handler) Pop(ctx Context) error {
	stack := h.bound()
	if stack.Depth() < 2 {
		return fmt.Errorf("%w: pop at depth %d", ErrStackUnderflow, stack.Depth())
	}
	from := stack.Top()
	h.registry.At(from).OnTerminate(ctx)
	stack.top--
	to := stack.Top()
	h.observe(OpPop, from, to)
	h.registry.At(to).OnResume(ctx)
	return nil
}

// Update runs one tick against the active state: BeforeUpdate first, and if
// it returns true the tick ends there. Otherwise Update runs on whatever
// state is active at that point, which matters when BeforeUpdate jumped,
// pushed or popped and declined to end the tick. Paused states receive
// nothing.
func (h *Handler) Update(ctx Context) {
	stack := h.bound()
	if h.registry.At(stack.Top()).BeforeUpdate(ctx) {
		return
	}
	h.registry.At(stack.Top()).Update(ctx)
}

func (h *Handler) bound() *StateStack {
	if h.stack == nil {
		panic("pushfsm: no state stack bound")
	}
	return h.stack
}

func (h *Handler) observe(op Op, from, to StateID) {
	if h.observer != nil {
		h.observer.Transition(op, from, to)
	}
}
