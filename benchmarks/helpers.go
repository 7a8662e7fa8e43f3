// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/comalice/pushfsm"
	"github.com/comalice/pushfsm/config"
)

// NopBehaviors creates one bare behavior per state in [0, n).
func NopBehaviors(n int) []pushfsm.Behavior {
	behaviors := make([]pushfsm.Behavior, n)
	for i := range behaviors {
		b := pushfsm.NewBaseBehavior(pushfsm.StateID(i))
		behaviors[i] = &b
	}
	return behaviors
}

// RingTransitions creates a ring of n states cycling s0 -> s1 -> ... -> s0.
func RingTransitions(n int) []pushfsm.Transition {
	if n < 1 {
		n = 1
	}
	transitions := make([]pushfsm.Transition, n)
	for i := 0; i < n; i++ {
		transitions[i] = pushfsm.Transition{
			From: pushfsm.StateID(i),
			To:   []pushfsm.StateID{pushfsm.StateID((i + 1) % n)},
		}
	}
	return transitions
}

// DenseTransitions creates a complete graph over n states: every state may
// jump to every other.
func DenseTransitions(n int) []pushfsm.Transition {
	if n < 1 {
		n = 1
	}
	transitions := make([]pushfsm.Transition, n)
	for i := 0; i < n; i++ {
		targets := make([]pushfsm.StateID, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				targets = append(targets, pushfsm.StateID(j))
			}
		}
		transitions[i] = pushfsm.Transition{From: pushfsm.StateID(i), To: targets}
	}
	return transitions
}

// RingHandler creates a handler over a ring of n states with no-op
// behaviors.
func RingHandler(n int) (*pushfsm.Handler, error) {
	return pushfsm.NewHandler(n, NopBehaviors(n), RingTransitions(n))
}

// RingConfigYAML generates the YAML definition of a ring machine with n
// states, for parser benchmarks.
func RingConfigYAML(n int) []byte {
	if n < 1 {
		n = 1
	}
	cfg := config.MachineConfig{
		ID:     fmt.Sprintf("ring_%d", n),
		States: make([]string, n),
	}
	for i := 0; i < n; i++ {
		cfg.States[i] = fmt.Sprintf("s%d", i)
	}
	cfg.Transitions = make([]config.TransitionConfig, n)
	for i := 0; i < n; i++ {
		cfg.Transitions[i] = config.TransitionConfig{
			From: cfg.States[i],
			To:   []string{cfg.States[(i+1)%n]},
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		panic(err)
	}
	return data
}
