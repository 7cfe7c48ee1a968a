package container

import (
	"fmt"

	"yqhp/flow-dispatch/pkg/types"
)

// MaxNestingDepth bounds how deep embedded flows may nest.
const MaxNestingDepth = 64

// GraphError reports a flow tree that is not a finite, acyclic tree.
type GraphError struct {
	NodeID  string
	Message string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("malformed flow graph at node %q: %s", e.NodeID, e.Message)
}

// walkLeaves calls fn for every enabled job node under root, depth first,
// in child order. Composite nodes are only descended into.
func walkLeaves(root *types.FlowNode, fn func(node *types.FlowNode) error) error {
	if root == nil {
		return &GraphError{Message: "flow root is nil"}
	}
	onPath := make(map[*types.FlowNode]bool)
	return walk(root, 0, onPath, fn)
}

func walk(node *types.FlowNode, depth int, onPath map[*types.FlowNode]bool, fn func(*types.FlowNode) error) error {
	if depth > MaxNestingDepth {
		return &GraphError{NodeID: node.ID, Message: fmt.Sprintf("nesting deeper than %d", MaxNestingDepth)}
	}
	if onPath[node] {
		return &GraphError{NodeID: node.ID, Message: "cycle detected"}
	}

	if !node.IsComposite() {
		if node.IsDisabled() {
			return nil
		}
		return fn(node)
	}

	onPath[node] = true
	defer delete(onPath, node)

	for _, child := range node.Children {
		if child == nil {
			return &GraphError{NodeID: node.ID, Message: "nil child node"}
		}
		if err := walk(child, depth+1, onPath, fn); err != nil {
			return err
		}
	}
	return nil
}
