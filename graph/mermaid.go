package graph

import (
	"fmt"
	"strings"

	"github.com/comalice/pushfsm"
)

// Mermaid renders the transition graph as a stateDiagram-v2. State names
// are sanitized into Mermaid identifiers; when sanitizing changes a name,
// an alias line keeps the original as the display label. The [*] marker
// points at state 0.
func Mermaid(g *pushfsm.TransitionGraph, direction Direction, resolve NameFunc) string {
	ids := make([]string, g.StateCount())
	seen := make(map[string]bool, g.StateCount())
	for i := range ids {
		id := sanitizeName(nameFor(resolve, pushfsm.StateID(i)))
		for n := 1; seen[id]; n++ {
			id = fmt.Sprintf("%s_%d", sanitizeName(nameFor(resolve, pushfsm.StateID(i))), n)
		}
		seen[id] = true
		ids[i] = id
	}

	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	sb.WriteString(fmt.Sprintf("\tdirection %s\n", directionCode(direction)))

	for i, id := range ids {
		if name := nameFor(resolve, pushfsm.StateID(i)); name != id {
			sb.WriteString(fmt.Sprintf("\t%s : %s\n", id, name))
		}
	}

	sb.WriteString(fmt.Sprintf("\t[*] --> %s\n", ids[0]))
	for from := pushfsm.StateID(0); int(from) < g.StateCount(); from++ {
		for _, to := range g.Targets(from) {
			sb.WriteString(fmt.Sprintf("\t%s --> %s\n", ids[from], ids[to]))
		}
	}
	return sb.String()
}
