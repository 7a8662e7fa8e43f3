package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/pushfsm"
	"github.com/comalice/pushfsm/config"
	"github.com/comalice/pushfsm/testutil"
)

const robotYAML = `
id: robot
states: [idle, moving, dancing]
transitions:
  - from: idle
    to: [moving, dancing]
  - from: moving
    to: [idle, dancing]
  - from: dancing
    to: [idle]
`

func TestLoadParsesAndValidates(t *testing.T) {
	m, err := config.Load(strings.NewReader(robotYAML))
	require.NoError(t, err)

	assert.Equal(t, "robot", m.ID)
	assert.Equal(t, []string{"idle", "moving", "dancing"}, m.States)
	assert.Equal(t, 3, m.StateCount())
	require.Len(t, m.Transitions, 3)
	assert.Equal(t, "idle", m.Transitions[0].From)
	assert.Equal(t, []string{"moving", "dancing"}, m.Transitions[0].To)
}

// Unknown keys are rejected rather than silently ignored; in particular
// there is no initial key, the first declared state is the initial one.
func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := config.Load(strings.NewReader("id: x\nstates: [a]\ninitial: a\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MachineConfig
		ok   bool
	}{
		{
			name: "valid",
			cfg: config.MachineConfig{
				ID:     "m",
				States: []string{"a", "b"},
				Transitions: []config.TransitionConfig{
					{From: "a", To: []string{"b"}},
				},
			},
			ok: true,
		},
		{name: "missing id", cfg: config.MachineConfig{States: []string{"a"}}},
		{name: "no states", cfg: config.MachineConfig{ID: "m"}},
		{name: "empty state name", cfg: config.MachineConfig{ID: "m", States: []string{""}}},
		{name: "duplicate state", cfg: config.MachineConfig{ID: "m", States: []string{"a", "a"}}},
		{
			name: "unknown transition source",
			cfg: config.MachineConfig{
				ID:     "m",
				States: []string{"a"},
				Transitions: []config.TransitionConfig{
					{From: "x", To: []string{"a"}},
				},
			},
		},
		{
			name: "unknown transition target",
			cfg: config.MachineConfig{
				ID:     "m",
				States: []string{"a"},
				Transitions: []config.TransitionConfig{
					{From: "a", To: []string{"x"}},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNameIdentifierMapping(t *testing.T) {
	m, err := config.Load(strings.NewReader(robotYAML))
	require.NoError(t, err)

	id, ok := m.StateID("idle")
	require.True(t, ok)
	assert.Equal(t, pushfsm.StateID(0), id, "first declared state is the initial one")

	id, ok = m.StateID("dancing")
	require.True(t, ok)
	assert.Equal(t, pushfsm.StateID(2), id)

	_, ok = m.StateID("flying")
	assert.False(t, ok)

	name, ok := m.StateName(1)
	require.True(t, ok)
	assert.Equal(t, "moving", name)

	_, ok = m.StateName(99)
	assert.False(t, ok)
	_, ok = m.StateName(pushfsm.None)
	assert.False(t, ok)
}

func TestEdgeList(t *testing.T) {
	m, err := config.Load(strings.NewReader(robotYAML))
	require.NoError(t, err)

	edges, err := m.EdgeList()
	require.NoError(t, err)
	assert.Equal(t, []pushfsm.Transition{
		{From: 0, To: []pushfsm.StateID{1, 2}},
		{From: 1, To: []pushfsm.StateID{0, 2}},
		{From: 2, To: []pushfsm.StateID{0}},
	}, edges)
}

func TestBuildConstructsWorkingHandler(t *testing.T) {
	m, err := config.Load(strings.NewReader(robotYAML))
	require.NoError(t, err)

	behaviors, _ := testutil.NewRecordingSet(m.StateCount())
	h, err := m.Build(behaviors)
	require.NoError(t, err)

	h.Bind(h.NewStack(), pushfsm.Context{Seq: 1})
	assert.Equal(t, pushfsm.StateID(0), h.Top())

	moving, ok := m.StateID("moving")
	require.True(t, ok)
	require.NoError(t, h.Jump(pushfsm.Context{Seq: 1}, moving))
	assert.Equal(t, moving, h.Top())

	dancing, ok := m.StateID("dancing")
	require.True(t, ok)
	require.NoError(t, h.Jump(pushfsm.Context{Seq: 2}, dancing))

	err = h.Jump(pushfsm.Context{Seq: 3}, moving) // dancing -> moving is not declared
	assert.ErrorIs(t, err, pushfsm.ErrInvalidTransition)
}

func TestBuildRejectsMismatchedBehaviors(t *testing.T) {
	m, err := config.Load(strings.NewReader(robotYAML))
	require.NoError(t, err)

	behaviors, _ := testutil.NewRecordingSet(2) // one behavior short
	_, err = m.Build(behaviors)
	assert.Error(t, err)
}
