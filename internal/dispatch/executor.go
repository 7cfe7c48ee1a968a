package dispatch

import (
	"yqhp/flow-dispatch/internal/config"
	"yqhp/flow-dispatch/pkg/types"
)

// ServiceName returns the name of the container service of an execution:
// "{prefix}-{cluster}-{execId}".
func ServiceName(routing config.RoutingConfig, execID int) string {
	return routing.ServiceNamePrefix + "-" + ClusterQualifiedExecID(routing.ClusterName, execID)
}

// ServiceHost returns the in-cluster host name of an execution's container
// service: "{prefix}-{cluster}-{execId}.{namespace}".
func ServiceHost(routing config.RoutingConfig, execID int) string {
	return ServiceName(routing, execID) + "." + routing.Namespace
}

// ResolveExecutor returns the endpoint serving the execution.
//
// Containerized executions get a virtual executor computed from the service
// naming convention; the container platform exposes that name once the pod
// exists. Other executions use the executor bound on the reference.
func ResolveExecutor(ref *types.ExecutionReference, routing config.RoutingConfig) (*types.Executor, error) {
	if ref.DispatchMethod().IsContainerized() {
		return types.NewExecutor(types.VirtualExecutorID, ServiceHost(routing, ref.ExecID()), routing.ServicePort, false), nil
	}
	executor, ok := ref.Executor()
	if !ok {
		return nil, ErrNoBoundExecutor
	}
	return executor, nil
}
