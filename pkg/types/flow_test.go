package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFlowInstance(t *testing.T) {
	f := NewFlowInstance()
	assert.Equal(t, -1, f.ExecutionID)
	assert.Equal(t, int64(-1), f.UpdateTime)
	assert.Equal(t, StatusReady, f.Status)
}

func TestFlowInstance_FlowName(t *testing.T) {
	f := &FlowInstance{ProjectName: "etl", FlowID: "daily"}
	assert.Equal(t, "etl.daily", f.FlowName())
}

func TestFlowInstance_Version(t *testing.T) {
	assert.True(t, (&FlowInstance{FlowVersion: 2.0}).IsFlowVersion20())
	assert.False(t, (&FlowInstance{FlowVersion: 1.0}).IsFlowVersion20())
	assert.False(t, (&FlowInstance{}).IsFlowVersion20())
}

func TestFlowInstance_Root(t *testing.T) {
	a := &FlowNode{ID: "a", Kind: NodeKindJob, Type: "java"}
	f := &FlowInstance{FlowID: "daily", Status: StatusRunning, Nodes: []*FlowNode{a}}

	root := f.Root()
	assert.Equal(t, "daily", root.ID)
	assert.True(t, root.IsComposite())
	assert.Equal(t, StatusRunning, root.Status)
	assert.Same(t, a, root.Children[0])
}

func TestFlowNode_Kind(t *testing.T) {
	assert.False(t, (&FlowNode{Kind: NodeKindJob}).IsComposite())
	assert.True(t, (&FlowNode{Kind: NodeKindFlow}).IsComposite())
	assert.True(t, (&FlowNode{Children: []*FlowNode{{}}}).IsComposite())
	assert.False(t, (&FlowNode{}).IsComposite())
	// an explicit job kind wins over stray children
	assert.False(t, (&FlowNode{Kind: NodeKindJob, Children: []*FlowNode{{}}}).IsComposite())

	assert.True(t, (&FlowNode{Status: StatusDisabled}).IsDisabled())
	assert.False(t, (&FlowNode{Status: StatusReady}).IsDisabled())
}
