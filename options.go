package pushfsm

// Option configures a Handler at construction time.
type Option func(*Handler)

// WithObserver wires an observer for committed transitions. Later calls
// replace earlier ones; combine several with MultiObserver.
func WithObserver(o Observer) Option {
	return func(h *Handler) {
		h.observer = o
	}
}
