package container

import (
	set "github.com/duke-git/lancet/v2/datastructure/set"
	"github.com/duke-git/lancet/v2/slice"

	"yqhp/flow-dispatch/pkg/types"
)

// CollectJobTypes returns the job types a flow needs images for, sorted.
// Disabled jobs are skipped; composite nodes contribute only their children.
func CollectJobTypes(root *types.FlowNode) ([]string, error) {
	jobTypes := set.New[string]()
	err := walkLeaves(root, func(node *types.FlowNode) error {
		jobTypes.Add(node.Type)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sortedValues(jobTypes), nil
}

// JobTypesForFlow returns the job types of a flow instance.
func JobTypesForFlow(flow *types.FlowInstance) ([]string, error) {
	return CollectJobTypes(flow.Root())
}

func sortedValues(s set.Set[string]) []string {
	values := s.Values()
	slice.Sort(values)
	return values
}
