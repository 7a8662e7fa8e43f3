package pushfsm

import "fmt"

// TransitionGraph is the immutable allowed-edge relation over a machine's
// states. It answers one question, Allowed(from, to), in constant time; the
// handler consults it before every Jump and Push.
type TransitionGraph struct {
	states int
	edges  []bool // row-major adjacency: edges[from*states+to]
}

// NewTransitionGraph builds the edge relation for a machine with the given
// declared state count. Every endpoint must lie in [0, states); an edge
// declared twice is fine.
func NewTransitionGraph(states int, transitions []Transition) (*TransitionGraph, error) {
	if states <= 0 {
		return nil, fmt.Errorf("pushfsm: state count must be positive, got %d", states)
	}
	g := &TransitionGraph{
		states: states,
		edges:  make([]bool, states*states),
	}
	for _, t := range transitions {
		if !g.inRange(t.From) {
			return nil, fmt.Errorf("pushfsm: transition source %d out of range [0,%d)", t.From, states)
		}
		for _, to := range t.To {
			if !g.inRange(to) {
				return nil, fmt.Errorf("pushfsm: transition %d -> %d: target out of range [0,%d)", t.From, to, states)
			}
			g.edges[int(t.From)*states+int(to)] = true
		}
	}
	return g, nil
}

func (g *TransitionGraph) inRange(s StateID) bool {
	return s >= 0 && int(s) < g.states
}

// StateCount returns the declared number of states.
func (g *TransitionGraph) StateCount() int { return g.states }

// Allowed reports whether the edge from -> to is declared. Out-of-range
// endpoints are simply not allowed.
func (g *TransitionGraph) Allowed(from, to StateID) bool {
	if !g.inRange(from) || !g.inRange(to) {
		return false
	}
	return g.edges[int(from)*g.states+int(to)]
}

// Targets returns the declared successors of from in ascending order. It
// allocates; intended for introspection and rendering, not the hot path.
func (g *TransitionGraph) Targets(from StateID) []StateID {
	if !g.inRange(from) {
		return nil
	}
	var out []StateID
	for to := 0; to < g.states; to++ {
		if g.edges[int(from)*g.states+to] {
			out = append(out, StateID(to))
		}
	}
	return out
}
