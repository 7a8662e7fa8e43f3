package graph

import (
	"fmt"
	"strings"

	"github.com/comalice/pushfsm"
)

// DOT renders the transition graph as a Graphviz digraph. Every state is a
// node, every declared edge a solid arrow, and a point marks the entry into
// state 0.
func DOT(g *pushfsm.TransitionGraph, resolve NameFunc) string {
	var sb strings.Builder
	sb.WriteString("digraph {\n")
	sb.WriteString("node [shape=Mrecord]\n")
	sb.WriteString("rankdir=\"LR\"\n")

	for id := pushfsm.StateID(0); int(id) < g.StateCount(); id++ {
		name := escapeLabel(nameFor(resolve, id))
		sb.WriteString(fmt.Sprintf("\"%s\" [label=\"%s\"];\n", name, name))
	}

	for from := pushfsm.StateID(0); int(from) < g.StateCount(); from++ {
		for _, to := range g.Targets(from) {
			sb.WriteString(fmt.Sprintf("\"%s\" -> \"%s\" [style=\"solid\"];\n",
				escapeLabel(nameFor(resolve, from)), escapeLabel(nameFor(resolve, to))))
		}
	}

	sb.WriteString(" init [label=\"\", shape=point];\n")
	sb.WriteString(fmt.Sprintf(" init -> \"%s\"[style = \"solid\"]\n", escapeLabel(nameFor(resolve, 0))))
	sb.WriteString("}")
	return sb.String()
}
