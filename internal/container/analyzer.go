package container

import (
	"context"

	"go.uber.org/zap"

	"yqhp/flow-dispatch/internal/project"
	"yqhp/flow-dispatch/pkg/logger"
	"yqhp/flow-dispatch/pkg/types"
)

// ProvisionPlan is what a container launcher needs to know about a flow
// before building its pod.
type ProvisionPlan struct {
	FlowName          string   `json:"flow_name" yaml:"flow_name"`
	RolloutBucket     int      `json:"rollout_bucket" yaml:"rollout_bucket"`
	JobTypes          []string `json:"job_types" yaml:"job_types"`
	ProxyUsers        []string `json:"proxy_users" yaml:"proxy_users"`
	JobTypeProxyUsers []string `json:"job_type_proxy_users" yaml:"job_type_proxy_users"`
}

// Analyzer builds provisioning plans for flows.
type Analyzer struct {
	registry     project.ProjectRegistry
	collector    *ProxyUserCollector
	jobTypeUsers JobTypeProxyMap
}

// NewAnalyzer creates an analyzer. jobTypeUsers may be nil.
func NewAnalyzer(registry project.ProjectRegistry, lookup project.PropertyLookup, jobTypeUsers JobTypeProxyMap) *Analyzer {
	return &Analyzer{
		registry:     registry,
		collector:    NewProxyUserCollector(lookup),
		jobTypeUsers: jobTypeUsers,
	}
}

// Analyze computes the plan of flow.
func (a *Analyzer) Analyze(ctx context.Context, flow *types.FlowInstance, flowParams map[string]string) (*ProvisionPlan, error) {
	jobTypes, err := JobTypesForFlow(flow)
	if err != nil {
		return nil, err
	}

	def, err := project.FlowDefinitionFor(ctx, a.registry, flow)
	if err != nil {
		return nil, err
	}

	proxyUsers, err := a.collector.Collect(ctx, flow, def, flowParams)
	if err != nil {
		return nil, err
	}

	plan := &ProvisionPlan{
		FlowName:          flow.FlowName(),
		RolloutBucket:     FlowRolloutBucket(flow),
		JobTypes:          jobTypes,
		ProxyUsers:        proxyUsers,
		JobTypeProxyUsers: SelectRelevantProxyUsers(a.jobTypeUsers, jobTypes),
	}

	logger.Debug("flow analyzed",
		zap.Int("exec_id", flow.ExecutionID),
		zap.String("flow", plan.FlowName),
		zap.Int("bucket", plan.RolloutBucket),
		zap.Strings("job_types", plan.JobTypes),
		zap.Strings("proxy_users", plan.ProxyUsers))

	return plan, nil
}
