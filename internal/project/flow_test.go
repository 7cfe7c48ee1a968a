package project

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yqhp/flow-dispatch/pkg/types"
)

func embeddedTestFlow() *FlowDefinition {
	return &FlowDefinition{
		ID: "jobe",
		Nodes: []*NodeDefinition{
			{ID: "joba", Type: "command"},
			{ID: "jobb", Type: "command"},
			{ID: "jobc", Type: "command"},
			{ID: "jobd", Type: "command"},
			{ID: "jobe", Type: "command"},
		},
		Edges: []Edge{
			{Source: "joba", Target: "jobb"},
			{Source: "joba", Target: "jobc"},
			{Source: "joba", Target: "jobd"},
			{Source: "jobb", Target: "jobe"},
			{Source: "jobc", Target: "jobe"},
			{Source: "jobd", Target: "jobe"},
		},
	}
}

func TestNodeLevelComputation(t *testing.T) {
	levels, err := embeddedTestFlow().ComputeLevels()
	require.NoError(t, err)

	assert.Equal(t, 0, levels["joba"])
	assert.Equal(t, 1, levels["jobb"])
	assert.Equal(t, 1, levels["jobc"])
	assert.Equal(t, 1, levels["jobd"])
	assert.Equal(t, 2, levels["jobe"])
}

func TestNodeLevelUsesDeepestDependency(t *testing.T) {
	flow := &FlowDefinition{
		ID:    "f",
		Nodes: []*NodeDefinition{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "c"},
			{Source: "a", Target: "c"},
		},
	}

	levels, err := flow.ComputeLevels()
	require.NoError(t, err)
	assert.Equal(t, 2, levels["c"])
}

func TestNodeLevelCycle(t *testing.T) {
	flow := &FlowDefinition{
		ID:    "f",
		Nodes: []*NodeDefinition{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "a"}},
	}

	_, err := flow.ComputeLevels()
	assert.ErrorContains(t, err, "cycle")
}

func TestNodeLevelUnknownNode(t *testing.T) {
	flow := &FlowDefinition{
		ID:    "f",
		Nodes: []*NodeDefinition{{ID: "a"}},
		Edges: []Edge{{Source: "a", Target: "missing"}},
	}

	_, err := flow.ComputeLevels()
	assert.ErrorContains(t, err, "missing")
}

func TestFlowDefinitionFor(t *testing.T) {
	registry := NewInMemoryRegistry()
	def := embeddedTestFlow()
	require.NoError(t, registry.AddProject(&Project{
		ID:    7,
		Name:  "proj",
		Flows: map[string]*FlowDefinition{def.ID: def},
	}))

	flow := types.NewFlowInstance()
	flow.ProjectID = 7
	flow.FlowID = "jobe"

	got, err := FlowDefinitionFor(context.Background(), registry, flow)
	require.NoError(t, err)
	assert.Same(t, def, got)

	flow.FlowID = "other"
	_, err = FlowDefinitionFor(context.Background(), registry, flow)
	assert.Error(t, err)

	flow.ProjectID = 8
	_, err = FlowDefinitionFor(context.Background(), registry, flow)
	assert.Error(t, err)
}

func TestPropsGetString(t *testing.T) {
	var empty Props
	assert.Equal(t, "def", empty.GetString(UserToProxy, "def"))

	props := Props{UserToProxy: "alice"}
	assert.Equal(t, "alice", props.GetString(UserToProxy, ""))
	assert.Equal(t, "", props.GetString("missing", ""))
}
