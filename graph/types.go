// Package graph renders a machine's transition graph as Graphviz DOT or
// Mermaid text for documentation and debugging.
package graph

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/comalice/pushfsm"
)

// NameFunc maps a state to its display name. A nil NameFunc falls back to
// "s0", "s1", and so on.
type NameFunc func(pushfsm.StateID) string

// Direction specifies the flow direction of a Mermaid graph.
type Direction int

const (
	// TopToBottom flows from top to bottom.
	TopToBottom Direction = iota
	// BottomToTop flows from bottom to top.
	BottomToTop
	// LeftToRight flows from left to right.
	LeftToRight
	// RightToLeft flows from right to left.
	RightToLeft
)

func directionCode(d Direction) string {
	switch d {
	case TopToBottom:
		return "TB"
	case BottomToTop:
		return "BT"
	case LeftToRight:
		return "LR"
	case RightToLeft:
		return "RL"
	default:
		return "TB"
	}
}

func nameFor(resolve NameFunc, id pushfsm.StateID) string {
	if resolve != nil {
		return resolve(id)
	}
	return fmt.Sprintf("s%d", id)
}

// escapeLabel escapes special characters in a DOT label.
func escapeLabel(label string) string {
	label = strings.ReplaceAll(label, "\\", "\\\\")
	label = strings.ReplaceAll(label, "\"", "\\\"")
	return label
}

// sanitizeName removes characters that would cause invalid Mermaid graphs.
func sanitizeName(name string) string {
	var result strings.Builder
	for _, c := range name {
		if !unicode.IsSpace(c) && c != ':' && c != '-' {
			result.WriteRune(c)
		}
	}
	return result.String()
}
