package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yqhp/flow-dispatch/internal/project"
)

func TestAnalyzer_Analyze(t *testing.T) {
	f := newProxyFixture(t, 2.0)
	f.registry.SetProperties(f.nodeKey("A"), proxyProps("node_a"))

	jobTypeUsers, err := ParseJobTypeProxyMap("java,svc_java;pig,svc_pig;hive,svc_hive")
	require.NoError(t, err)

	analyzer := NewAnalyzer(f.registry, f.registry, jobTypeUsers)
	plan, err := analyzer.Analyze(context.Background(), f.flow, nil)
	require.NoError(t, err)

	assert.Equal(t, "etl.daily", plan.FlowName)
	assert.Equal(t, RolloutBucket("etl.daily"), plan.RolloutBucket)
	assert.Equal(t, []string{"java", "pig"}, plan.JobTypes)
	assert.Equal(t, []string{"node_a"}, plan.ProxyUsers)
	// hive only appears on a disabled node
	assert.Equal(t, []string{"svc_java", "svc_pig"}, plan.JobTypeProxyUsers)
}

func TestAnalyzer_UnknownFlow(t *testing.T) {
	f := newProxyFixture(t, 2.0)
	f.flow.FlowID = "missing"

	analyzer := NewAnalyzer(f.registry, f.registry, nil)
	_, err := analyzer.Analyze(context.Background(), f.flow, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestAnalyzer_UnknownProject(t *testing.T) {
	f := newProxyFixture(t, 2.0)
	f.flow.ProjectID = 99

	analyzer := NewAnalyzer(project.NewInMemoryRegistry(), f.registry, nil)
	_, err := analyzer.Analyze(context.Background(), f.flow, nil)
	require.Error(t, err)
}
