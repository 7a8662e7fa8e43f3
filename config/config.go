// Package config loads declarative machine definitions from YAML and turns
// them into pushfsm handlers. Definitions name states; the package maps
// names onto the engine's dense identifiers, with the first declared state
// becoming state 0, the one entered on a stack's first Bind.
//
//	id: robot
//	states: [idle, moving, dancing]
//	transitions:
//	  - from: idle
//	    to: [moving, dancing]
//	  - from: moving
//	    to: [idle, dancing]
//	  - from: dancing
//	    to: [idle]
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/comalice/pushfsm"
)

// TransitionConfig declares the states reachable from one named state.
type TransitionConfig struct {
	From string   `json:"from" yaml:"from"`
	To   []string `json:"to" yaml:"to"`
}

// MachineConfig is the declarative form of a machine: an identifier, the
// ordered state list, and the allowed edges. Declaration order is
// significant: the first state is the initial one.
type MachineConfig struct {
	ID          string             `json:"id" yaml:"id"`
	States      []string           `json:"states" yaml:"states"`
	Transitions []TransitionConfig `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// Load parses and validates a machine definition from r.
func Load(r io.Reader) (*MachineConfig, error) {
	var m MachineConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFile parses and validates the machine definition at path.
func LoadFile(path string) (*MachineConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks the definition:
//   - non-empty machine ID
//   - at least one state, all names non-empty and unique
//   - every transition endpoint references a declared state
func (m *MachineConfig) Validate() error {
	if m.ID == "" {
		return errors.New("config: machine id is required")
	}
	if len(m.States) == 0 {
		return errors.New("config: at least one state is required")
	}
	seen := make(map[string]bool, len(m.States))
	for _, name := range m.States {
		if name == "" {
			return errors.New("config: state names cannot be empty")
		}
		if seen[name] {
			return fmt.Errorf("config: duplicate state %q", name)
		}
		seen[name] = true
	}
	for _, t := range m.Transitions {
		if !seen[t.From] {
			return fmt.Errorf("config: transition source %q is not a declared state", t.From)
		}
		for _, to := range t.To {
			if !seen[to] {
				return fmt.Errorf("config: transition %q -> %q: target is not a declared state", t.From, to)
			}
		}
	}
	return nil
}

// StateCount returns the number of declared states.
func (m *MachineConfig) StateCount() int { return len(m.States) }

// StateID resolves a state name to its identifier, which is the state's
// position in the declaration order.
func (m *MachineConfig) StateID(name string) (pushfsm.StateID, bool) {
	for i, s := range m.States {
		if s == name {
			return pushfsm.StateID(i), true
		}
	}
	return pushfsm.None, false
}

// StateName resolves an identifier back to its declared name.
func (m *MachineConfig) StateName(id pushfsm.StateID) (string, bool) {
	if id < 0 || int(id) >= len(m.States) {
		return "", false
	}
	return m.States[id], true
}

// EdgeList translates the named transitions into engine transitions.
func (m *MachineConfig) EdgeList() ([]pushfsm.Transition, error) {
	edges := make([]pushfsm.Transition, 0, len(m.Transitions))
	for _, t := range m.Transitions {
		from, ok := m.StateID(t.From)
		if !ok {
			return nil, fmt.Errorf("config: transition source %q is not a declared state", t.From)
		}
		targets := make([]pushfsm.StateID, 0, len(t.To))
		for _, name := range t.To {
			to, ok := m.StateID(name)
			if !ok {
				return nil, fmt.Errorf("config: transition %q -> %q: target is not a declared state", t.From, name)
			}
			targets = append(targets, to)
		}
		edges = append(edges, pushfsm.Transition{From: from, To: targets})
	}
	return edges, nil
}

// Build constructs a handler for this definition. Behaviors are matched to
// states by their StateID, so the behavior for the first declared state
// must report identifier 0, and so on.
func (m *MachineConfig) Build(behaviors []pushfsm.Behavior, opts ...pushfsm.Option) (*pushfsm.Handler, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	edges, err := m.EdgeList()
	if err != nil {
		return nil, err
	}
	return pushfsm.NewHandler(len(m.States), behaviors, edges, opts...)
}
