package dispatch

import (
	"fmt"

	"yqhp/flow-dispatch/internal/config"
	"yqhp/flow-dispatch/pkg/types"
)

// Resource segments of the executor endpoints.
const (
	ExecutorResource  = "executor"
	ContainerResource = "container"

	// BareMetalPath is served by bare-metal executors.
	BareMetalPath = "/" + ExecutorResource
	// ContainerPath is served by a flow container reached directly.
	ContainerPath = "/" + ContainerResource
)

// ResolvePath returns the URL path an RPC for the execution is posted to.
//
// Containerized executions behind the reverse proxy get a per-execution prefix
// the proxy routes on, so execID is required there and ErrMissingExecutionID
// is returned without it. All other combinations ignore execID.
func ResolvePath(execID *int, method types.DispatchMethod, routing config.RoutingConfig) (string, error) {
	if !method.IsContainerized() {
		return BareMetalPath, nil
	}
	if !routing.ReverseProxyEnabled {
		return ContainerPath, nil
	}
	if execID == nil {
		return "", ErrMissingExecutionID
	}
	return "/" + ClusterQualifiedExecID(routing.ClusterName, *execID) + "/" + ContainerResource, nil
}

// ClusterQualifiedExecID returns "{cluster}-{execId}", the execution's name
// unique across clusters sharing one container platform.
func ClusterQualifiedExecID(cluster string, execID int) string {
	return fmt.Sprintf("%s-%d", cluster, execID)
}
