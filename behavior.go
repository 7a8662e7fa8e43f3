package pushfsm

// Behavior implements one state's logic as a set of lifecycle hooks. One
// instance is registered per state and shared by every stack the handler is
// ever bound to, so per-entity data belongs in Context.Data, never on the
// behavior itself.
//
// Concrete behaviors embed BaseBehavior, which supplies no-op hooks and the
// handler back-reference used for reentrant transitions:
//
//	type Moving struct {
//		pushfsm.BaseBehavior
//	}
//
//	func (m *Moving) Update(ctx pushfsm.Context) {
//		if arrived(ctx) {
//			m.Handler().Jump(ctx, StateIdle)
//		}
//	}
//
// Only types embedding BaseBehavior can satisfy the interface; register
// them as pointers so the embedded back-reference is shared.
type Behavior interface {
	// StateID reports the state this behavior implements.
	StateID() StateID

	// OnSetup runs exactly once, during handler construction, after the
	// back-reference is attached and before any stack exists. Wire
	// collaborators here.
	OnSetup()

	// OnEnter runs when the state becomes active through the initial
	// Bind, a Jump or a Push.
	OnEnter(ctx Context)

	// OnTerminate runs when the state is discarded by a Jump or a Pop.
	OnTerminate(ctx Context)

	// OnPause runs when a Push buries the state under a new active one.
	OnPause(ctx Context)

	// OnResume runs when a Pop re-exposes the state as the active one.
	OnResume(ctx Context)

	// BeforeUpdate runs first on every tick. Returning true ends the
	// tick without an Update call, typically after a reentrant Jump,
	// Push or Pop has already moved the machine on.
	BeforeUpdate(ctx Context) bool

	// Update runs once per tick while the state is active and
	// BeforeUpdate declined to end the tick. Paused states receive
	// neither.
	Update(ctx Context)

	// attach stores the owning handler; called once at registration.
	attach(h *Handler)
}

// BaseBehavior carries a behavior's state identity and the non-owning
// back-reference to the handler that registered it. Embed it by value in
// every concrete behavior.
type BaseBehavior struct {
	id StateID
	h  *Handler
}

// NewBaseBehavior names the state a concrete behavior implements.
func NewBaseBehavior(id StateID) BaseBehavior {
	return BaseBehavior{id: id}
}

// StateID reports the state this behavior implements.
func (b *BaseBehavior) StateID() StateID { return b.id }

// Handler returns the owning handler, for reentrant Jump, Push and Pop
// calls from inside hooks. It is nil until the behavior is registered.
func (b *BaseBehavior) Handler() *Handler { return b.h }

func (b *BaseBehavior) attach(h *Handler) { b.h = h }

// No-op defaults; override the hooks the state needs.

func (b *BaseBehavior) OnSetup()            {}
func (b *BaseBehavior) OnEnter(Context)     {}
func (b *BaseBehavior) OnTerminate(Context) {}
func (b *BaseBehavior) OnPause(Context)     {}
func (b *BaseBehavior) OnResume(Context)    {}

// BeforeUpdate never ends the tick by default.
func (b *BaseBehavior) BeforeUpdate(Context) bool { return false }

func (b *BaseBehavior) Update(Context) {}
