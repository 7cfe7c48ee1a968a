package types

// Status is the lifecycle status of a flow or node.
type Status string

const (
	StatusReady           Status = "READY"
	StatusDispatching     Status = "DISPATCHING"
	StatusPreparing       Status = "PREPARING"
	StatusRunning         Status = "RUNNING"
	StatusPaused          Status = "PAUSED"
	StatusSucceeded       Status = "SUCCEEDED"
	StatusKilling         Status = "KILLING"
	StatusKilled          Status = "KILLED"
	StatusFailed          Status = "FAILED"
	StatusFailedFinishing Status = "FAILED_FINISHING"
	StatusSkipped         Status = "SKIPPED"
	StatusDisabled        Status = "DISABLED"
	StatusQueued          Status = "QUEUED"
	StatusCancelled       Status = "CANCELLED"
)

// NodeKind tags a FlowNode as a job or an embedded flow.
type NodeKind string

const (
	// NodeKindJob is a leaf node that runs a job type.
	NodeKindJob NodeKind = "job"
	// NodeKindFlow is a composite node holding an embedded sub-flow.
	NodeKindFlow NodeKind = "flow"
)

// FlowNode is a node of a flow's execution tree.
//
// Composite nodes (Kind == NodeKindFlow) own an ordered list of children and
// never run a job themselves. Leaf nodes carry the job type to run.
type FlowNode struct {
	ID        string      `yaml:"id" json:"id"`
	Kind      NodeKind    `yaml:"kind,omitempty" json:"kind,omitempty"`
	Type      string      `yaml:"type" json:"type"`
	Status    Status      `yaml:"status,omitempty" json:"status,omitempty"`
	Level     int         `yaml:"level,omitempty" json:"level,omitempty"`
	JobSource string      `yaml:"job_source,omitempty" json:"job_source,omitempty"`
	Children  []*FlowNode `yaml:"children,omitempty" json:"children,omitempty"`
}

// IsComposite reports whether the node holds an embedded sub-flow.
// A node with children is treated as composite even when Kind is unset.
func (n *FlowNode) IsComposite() bool {
	return n.Kind == NodeKindFlow || (n.Kind == "" && len(n.Children) > 0)
}

// IsDisabled reports whether the node was disabled for this execution.
func (n *FlowNode) IsDisabled() bool {
	return n.Status == StatusDisabled
}

// FlowInstance is one execution of a flow.
type FlowInstance struct {
	ExecutionID    int            `yaml:"execution_id" json:"execution_id"`
	ProjectID      int            `yaml:"project_id" json:"project_id"`
	ProjectName    string         `yaml:"project_name" json:"project_name"`
	FlowID         string         `yaml:"flow_id" json:"flow_id"`
	FlowVersion    float64        `yaml:"flow_version,omitempty" json:"flow_version,omitempty"`
	DispatchMethod DispatchMethod `yaml:"dispatch_method,omitempty" json:"dispatch_method,omitempty"`
	Status         Status         `yaml:"status,omitempty" json:"status,omitempty"`
	SubmitUser     string         `yaml:"submit_user,omitempty" json:"submit_user,omitempty"`
	UpdateTime     int64          `yaml:"update_time,omitempty" json:"update_time,omitempty"`
	Nodes          []*FlowNode    `yaml:"nodes" json:"nodes"`
}

// NewFlowInstance returns an instance with unassigned execution id and update time.
func NewFlowInstance() *FlowInstance {
	return &FlowInstance{
		ExecutionID: -1,
		UpdateTime:  -1,
		Status:      StatusReady,
	}
}

// FlowName returns "{project}.{flowId}".
func (f *FlowInstance) FlowName() string {
	return f.ProjectName + "." + f.FlowID
}

// IsFlowVersion20 reports whether the flow uses the YAML based 2.0 definition format.
func (f *FlowInstance) IsFlowVersion20() bool {
	return f.FlowVersion == 2.0
}

// Root returns the instance as a composite node whose children are the
// top-level nodes.
func (f *FlowInstance) Root() *FlowNode {
	return &FlowNode{
		ID:       f.FlowID,
		Kind:     NodeKindFlow,
		Type:     string(NodeKindFlow),
		Status:   f.Status,
		Children: f.Nodes,
	}
}
