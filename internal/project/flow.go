package project

import (
	"context"
	"fmt"

	"github.com/duke-git/lancet/v2/slice"

	"yqhp/flow-dispatch/pkg/types"
)

// Project is a named collection of flow definitions.
type Project struct {
	ID    int                        `yaml:"id"`
	Name  string                     `yaml:"name"`
	Flows map[string]*FlowDefinition `yaml:"flows,omitempty"`
}

// Flow returns the flow definition with the given id.
func (p *Project) Flow(id string) (*FlowDefinition, bool) {
	f, ok := p.Flows[id]
	return f, ok
}

// NodeDefinition is a node of a static flow definition.
type NodeDefinition struct {
	ID           string `yaml:"id"`
	Type         string `yaml:"type"`
	JobSource    string `yaml:"job_source,omitempty"`
	EmbeddedFlow string `yaml:"embedded_flow,omitempty"`
}

// Edge is a dependency: Target runs after Source.
type Edge struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// FlowDefinition is the static definition of a flow.
type FlowDefinition struct {
	ID        string            `yaml:"id"`
	ProjectID int               `yaml:"project_id"`
	Version   float64           `yaml:"version,omitempty"`
	Nodes     []*NodeDefinition `yaml:"nodes"`
	Edges     []Edge            `yaml:"edges,omitempty"`
	// PropertySources lists every property file referenced anywhere in a 1.0 flow.
	PropertySources []string `yaml:"property_sources,omitempty"`
}

// Node returns the node with the given id.
func (f *FlowDefinition) Node(id string) (*NodeDefinition, bool) {
	for _, n := range f.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// ComputeLevels returns each node's distance from the flow's start nodes:
// nodes without dependencies are level 0, every other node sits one level
// below its deepest dependency. A dependency cycle is an error.
func (f *FlowDefinition) ComputeLevels() (map[string]int, error) {
	indegree := make(map[string]int, len(f.Nodes))
	children := make(map[string][]string, len(f.Nodes))
	for _, n := range f.Nodes {
		indegree[n.ID] = 0
	}
	for _, e := range f.Edges {
		if _, ok := indegree[e.Source]; !ok {
			return nil, fmt.Errorf("flow %s: edge references unknown node %s", f.ID, e.Source)
		}
		if _, ok := indegree[e.Target]; !ok {
			return nil, fmt.Errorf("flow %s: edge references unknown node %s", f.ID, e.Target)
		}
		indegree[e.Target]++
		children[e.Source] = append(children[e.Source], e.Target)
	}

	levels := make(map[string]int, len(f.Nodes))
	queue := make([]string, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		if indegree[n.ID] == 0 {
			queue = append(queue, n.ID)
			levels[n.ID] = 0
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, child := range children[id] {
			if levels[id]+1 > levels[child] {
				levels[child] = levels[id] + 1
			}
			indegree[child]--
			if indegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if visited != len(f.Nodes) {
		return nil, fmt.Errorf("flow %s: dependency cycle detected", f.ID)
	}
	return levels, nil
}

// SortedPropertySources returns PropertySources in lexical order.
func (f *FlowDefinition) SortedPropertySources() []string {
	sources := append([]string(nil), f.PropertySources...)
	slice.Sort(sources)
	return sources
}

// FlowDefinitionFor fetches the static definition a flow instance was created from.
func FlowDefinitionFor(ctx context.Context, registry ProjectRegistry, flow *types.FlowInstance) (*FlowDefinition, error) {
	p, err := registry.Project(ctx, flow.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", flow.ProjectID, err)
	}
	def, ok := p.Flow(flow.FlowID)
	if !ok {
		return nil, fmt.Errorf("flow %s not found in project %s", flow.FlowID, p.Name)
	}
	return def, nil
}
