package project

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"yqhp/flow-dispatch/pkg/types"
)

// Bundle is a self-contained description of one flow execution: the project,
// the static flow definition, the instance tree, and the property sources the
// instance resolves against.
type Bundle struct {
	Project    Project            `yaml:"project"`
	Flow       FlowDefinition     `yaml:"flow"`
	Instance   types.FlowInstance `yaml:"instance"`
	FlowParams map[string]string  `yaml:"flow_params,omitempty"`
	Properties []PropertyEntry    `yaml:"properties,omitempty"`
	Overrides  []PropertyEntry    `yaml:"overrides,omitempty"`
}

// PropertyEntry is one property source of a bundle.
type PropertyEntry struct {
	Node   string `yaml:"node,omitempty"`
	Source string `yaml:"source"`
	Props  Props  `yaml:"props"`
}

// Registry builds an in-memory registry holding the bundle's project and properties.
func (b *Bundle) Registry() *InMemoryRegistry {
	r := NewInMemoryRegistry()

	p := b.Project
	p.Flows = map[string]*FlowDefinition{b.Flow.ID: &b.Flow}
	_ = r.AddProject(&p)

	for _, e := range b.Properties {
		r.SetProperties(b.key(e), e.Props)
	}
	for _, e := range b.Overrides {
		r.SetJobOverride(b.key(e), e.Props)
	}
	return r
}

func (b *Bundle) key(e PropertyEntry) PropertyKey {
	return PropertyKey{
		ProjectID: b.Project.ID,
		FlowID:    b.Flow.ID,
		NodeID:    e.Node,
		Source:    e.Source,
	}
}

// BundleParser parses flow bundles from YAML.
type BundleParser struct{}

// NewBundleParser creates a new BundleParser.
func NewBundleParser() *BundleParser {
	return &BundleParser{}
}

// Parse parses a bundle from bytes.
func (p *BundleParser) Parse(data []byte) (*Bundle, error) {
	var bundle Bundle

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&bundle); err != nil {
		return nil, wrapYAMLError(err)
	}

	p.applyDefaults(&bundle)

	if err := p.validate(&bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// ParseFile parses a bundle from a file.
func (p *BundleParser) ParseFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewParseError(0, 0, fmt.Sprintf("failed to read file: %s", path), err)
	}
	return p.Parse(data)
}

func (p *BundleParser) applyDefaults(b *Bundle) {
	inst := &b.Instance
	if inst.ProjectID == 0 {
		inst.ProjectID = b.Project.ID
	}
	if inst.ProjectName == "" {
		inst.ProjectName = b.Project.Name
	}
	if inst.FlowID == "" {
		inst.FlowID = b.Flow.ID
	}
	if inst.FlowVersion == 0 {
		inst.FlowVersion = b.Flow.Version
	}
	if inst.Status == "" {
		inst.Status = types.StatusReady
	}
	if b.Flow.ProjectID == 0 {
		b.Flow.ProjectID = b.Project.ID
	}
	setNestingLevels(inst.Nodes, 0)
}

func setNestingLevels(nodes []*types.FlowNode, level int) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		n.Level = level
		if n.Kind == "" {
			n.Kind = types.NodeKindJob
			if len(n.Children) > 0 {
				n.Kind = types.NodeKindFlow
			}
		}
		if n.Status == "" {
			n.Status = types.StatusReady
		}
		setNestingLevels(n.Children, level+1)
	}
}

func (p *BundleParser) validate(b *Bundle) error {
	if b.Project.Name == "" {
		return NewValidationError("project.name", "project name is required")
	}
	if b.Flow.ID == "" {
		return NewValidationError("flow.id", "flow ID is required")
	}
	if b.Instance.FlowID != b.Flow.ID {
		return NewValidationError("instance.flow_id", fmt.Sprintf("instance flow %s does not match flow %s", b.Instance.FlowID, b.Flow.ID))
	}
	method, err := types.ParseDispatchMethod(string(b.Instance.DispatchMethod))
	if err != nil {
		return NewValidationError("instance.dispatch_method", err.Error())
	}
	b.Instance.DispatchMethod = method
	if len(b.Instance.Nodes) == 0 {
		return NewValidationError("instance.nodes", "flow instance must have at least one node")
	}
	if err := validateNodes(b.Instance.Nodes, "instance.nodes"); err != nil {
		return err
	}
	if _, err := b.Flow.ComputeLevels(); err != nil {
		return NewValidationError("flow.edges", err.Error())
	}
	return nil
}

func validateNodes(nodes []*types.FlowNode, path string) error {
	ids := make(map[string]bool, len(nodes))
	for i, n := range nodes {
		nodePath := fmt.Sprintf("%s[%d]", path, i)
		if n == nil {
			return NewValidationError(nodePath, "node cannot be empty")
		}
		if n.ID == "" {
			return NewValidationError(nodePath+".id", "node ID is required")
		}
		if ids[n.ID] {
			return NewValidationError(nodePath+".id", fmt.Sprintf("duplicate node ID: %s", n.ID))
		}
		ids[n.ID] = true

		switch n.Kind {
		case types.NodeKindJob:
			if n.Type == "" {
				return NewValidationError(nodePath+".type", "job type is required")
			}
			if len(n.Children) > 0 {
				return NewValidationError(nodePath+".children", "job nodes cannot have children")
			}
		case types.NodeKindFlow:
			if err := validateNodes(n.Children, nodePath+".children"); err != nil {
				return err
			}
		default:
			return NewValidationError(nodePath+".kind", fmt.Sprintf("invalid node kind: %s", n.Kind))
		}
	}
	return nil
}

func wrapYAMLError(err error) error {
	errStr := err.Error()
	line, column := extractLineColumn(errStr)
	return NewParseError(line, column, strings.TrimPrefix(errStr, "yaml: "), err)
}

// extractLineColumn attempts to extract line and column from a YAML error message.
func extractLineColumn(errStr string) (int, int) {
	var line, column int
	if idx := strings.Index(errStr, "line "); idx != -1 {
		fmt.Sscanf(errStr[idx:], "line %d", &line)
	}
	if idx := strings.Index(errStr, "column "); idx != -1 {
		fmt.Sscanf(errStr[idx:], "column %d", &column)
	}
	return line, column
}
