package dispatch

import (
	"context"
	"fmt"

	"yqhp/flow-dispatch/pkg/types"
	"yqhp/flow-dispatch/pkg/utils"
)

// UpdateExecutions polls executor for the state of executions in one call.
//
// Execution ids and last update times are sent as two JSON lists in input
// order. The call carries no execution id, user or dispatch method, so it is
// always posted to the bare-metal path of executor, whatever the dispatch
// method of each execution.
func (g *Gateway) UpdateExecutions(ctx context.Context, executor *types.Executor, executions []*types.FlowInstance) (map[string]any, error) {
	execIDs := make([]int, 0, len(executions))
	updateTimes := make([]int64, 0, len(executions))
	for _, flow := range executions {
		execIDs = append(execIDs, flow.ExecutionID)
		updateTimes = append(updateTimes, flow.UpdateTime)
	}

	execIDsJSON, err := utils.ToJSON(execIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode execution ids: %w", err)
	}
	updateTimesJSON, err := utils.ToJSON(updateTimes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode update times: %w", err)
	}

	return g.CallWithExecutionID(ctx, executor.Host, executor.Port, ActionUpdate, nil, nil, types.DispatchMethodUnset,
		types.NewParam(ExecIDListParam, execIDsJSON),
		types.NewParam(UpdateTimeListParam, updateTimesJSON))
}

// Ping checks that executor is alive.
func (g *Gateway) Ping(ctx context.Context, executor *types.Executor) (map[string]any, error) {
	return g.CallWithExecutionID(ctx, executor.Host, executor.Port, ActionPing, nil, nil, types.DispatchMethodBareMetal)
}

// ExecutorInfo is the load report of a bare-metal executor.
type ExecutorInfo struct {
	RemainingMemoryPercent float64 `json:"remainingMemoryPercent"`
	RemainingMemoryInMB    int64   `json:"remainingMemoryInMB"`
	RemainingFlowCapacity  int     `json:"remainingFlowCapacity"`
	NumberOfAssignedFlows  int     `json:"numberOfAssignedFlows"`
	LastDispatchedTime     int64   `json:"lastDispatchedTime"`
	CPUUsage               float64 `json:"cpuUsage"`
}

// ExecutorInfo fetches the load report of executor. It returns nil when the
// executor sends an empty reply.
func (g *Gateway) ExecutorInfo(ctx context.Context, executor *types.Executor) (*ExecutorInfo, error) {
	return CallForJSONType[ExecutorInfo](ctx, g, executor.Host, executor.Port, ServerStatisticsPath, types.DispatchMethodBareMetal, nil)
}
