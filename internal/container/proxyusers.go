package container

import (
	"context"
	"fmt"
	"strings"

	set "github.com/duke-git/lancet/v2/datastructure/set"

	"yqhp/flow-dispatch/internal/project"
	"yqhp/flow-dispatch/pkg/types"
)

// VariableMarker starts an unresolved ${...} substitution. Values containing
// it are not concrete user names.
const VariableMarker = "$"

// NodeProxySource yields a node's proxy user from one property source.
// An empty result means the source has no opinion.
type NodeProxySource func(ctx context.Context, key project.PropertyKey) (string, error)

// ProxyUserCollector computes the identities a flow's jobs run as.
type ProxyUserCollector struct {
	lookup project.PropertyLookup
	// nodeSources is evaluated in order; the first non-empty value wins.
	nodeSources []NodeProxySource
}

// NewProxyUserCollector returns a collector whose per-node precedence is the
// UI override first, then the job's own properties.
func NewProxyUserCollector(lookup project.PropertyLookup) *ProxyUserCollector {
	c := &ProxyUserCollector{lookup: lookup}
	c.nodeSources = []NodeProxySource{
		propertySource(lookup.JobOverrideProperties),
		propertySource(lookup.Properties),
	}
	return c
}

// WithNodeSources replaces the per-node precedence chain.
func (c *ProxyUserCollector) WithNodeSources(sources ...NodeProxySource) *ProxyUserCollector {
	c.nodeSources = sources
	return c
}

func propertySource(get func(context.Context, project.PropertyKey) (project.Props, error)) NodeProxySource {
	return func(ctx context.Context, key project.PropertyKey) (string, error) {
		props, err := get(ctx, key)
		if err != nil {
			return "", err
		}
		return props.GetString(project.UserToProxy, ""), nil
	}
}

// Collect returns the sorted set of proxy users of flow. flowParams holds the
// launch-time flow parameters and may be nil.
func (c *ProxyUserCollector) Collect(ctx context.Context, flow *types.FlowInstance, def *project.FlowDefinition, flowParams map[string]string) ([]string, error) {
	users := set.New[string]()

	if user, ok := flowParams[project.UserToProxy]; ok {
		users.Add(user)
	}

	flowUsers, err := c.flowLevelUsers(ctx, flow, def)
	if err != nil {
		return nil, err
	}
	users.Add(flowUsers...)

	err = walkLeaves(flow.Root(), func(node *types.FlowNode) error {
		user, err := c.nodeUser(ctx, def, node)
		if err != nil {
			return err
		}
		if user != "" {
			users.Add(user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, user := range users.Values() {
		if user == "" || strings.Contains(user, VariableMarker) {
			users.Delete(user)
		}
	}
	return sortedValues(users), nil
}

// flowLevelUsers reads the proxy user declared for the flow as a whole.
// 2.0 flows keep it in the "{flowId}.flow" source; 1.0 flows have no single
// top-level source, so every property file of the flow is consulted.
func (c *ProxyUserCollector) flowLevelUsers(ctx context.Context, flow *types.FlowInstance, def *project.FlowDefinition) ([]string, error) {
	key := project.PropertyKey{ProjectID: flow.ProjectID, FlowID: def.ID}

	if flow.IsFlowVersion20() {
		key.Source = flow.FlowID + project.FlowFileSuffix
		props, err := c.lookup.Properties(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load flow properties %s: %w", key, err)
		}
		if props == nil {
			return nil, nil
		}
		return []string{props.GetString(project.UserToProxy, "")}, nil
	}

	var users []string
	for _, source := range def.SortedPropertySources() {
		key.Source = source
		props, err := c.lookup.Properties(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load flow properties %s: %w", key, err)
		}
		users = append(users, props.GetString(project.UserToProxy, ""))
	}
	return users, nil
}

func (c *ProxyUserCollector) nodeUser(ctx context.Context, def *project.FlowDefinition, node *types.FlowNode) (string, error) {
	key := project.PropertyKey{ProjectID: def.ProjectID, FlowID: def.ID, NodeID: node.ID, Source: node.JobSource}
	for _, source := range c.nodeSources {
		user, err := source(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to resolve proxy user of node %s: %w", node.ID, err)
		}
		if user != "" {
			return user, nil
		}
	}
	return "", nil
}

// CollectProxyUsers is a convenience wrapper around the default collector.
func CollectProxyUsers(ctx context.Context, flow *types.FlowInstance, def *project.FlowDefinition, flowParams map[string]string, lookup project.PropertyLookup) ([]string, error) {
	return NewProxyUserCollector(lookup).Collect(ctx, flow, def, flowParams)
}
