package container

import (
	"github.com/spaolacci/murmur3"

	"yqhp/flow-dispatch/pkg/types"
)

// RolloutBucket maps a flow name of the form "{project}.{flowId}" to a
// bucket in [1, 100]. The bucket depends on the name only, so percentage
// based rollouts ("buckets 1-10") pick the same flows on every run.
func RolloutBucket(flowName string) int {
	hash := int32(murmur3.Sum32([]byte(flowName)))
	// Widen before taking the absolute value so math.MinInt32 stays in range.
	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}
	return int(abs%100) + 1
}

// FlowRolloutBucket returns the rollout bucket of a flow instance.
func FlowRolloutBucket(flow *types.FlowInstance) int {
	return RolloutBucket(flow.FlowName())
}
