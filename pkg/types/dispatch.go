package types

import (
	"fmt"
	"strings"
)

// DispatchMethod defines where an execution runs.
type DispatchMethod string

const (
	// DispatchMethodUnset means the caller did not supply a dispatch method.
	// It resolves like bare-metal.
	DispatchMethodUnset DispatchMethod = ""
	// DispatchMethodBareMetal runs the flow inside a long-lived executor process.
	DispatchMethodBareMetal DispatchMethod = "BARE_METAL"
	// DispatchMethodContainerized runs the flow inside a per-execution container.
	DispatchMethodContainerized DispatchMethod = "CONTAINERIZED"
)

// ParseDispatchMethod parses a dispatch method name, case-insensitively.
func ParseDispatchMethod(s string) (DispatchMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return DispatchMethodUnset, nil
	case string(DispatchMethodBareMetal), "PUSH", "POLL":
		return DispatchMethodBareMetal, nil
	case string(DispatchMethodContainerized):
		return DispatchMethodContainerized, nil
	default:
		return DispatchMethodUnset, fmt.Errorf("unknown dispatch method: %s", s)
	}
}

// IsContainerized reports whether d is the containerized dispatch method.
func (d DispatchMethod) IsContainerized() bool {
	return d == DispatchMethodContainerized
}

// VirtualExecutorID is the id carried by executors synthesized for container
// service endpoints. It marks an endpoint that is not a registered bare-metal
// executor; callers outside this module compare against it.
const VirtualExecutorID = -1

// Executor is a callable executor endpoint.
type Executor struct {
	ID     int    `json:"id" yaml:"id"`
	Host   string `json:"host" yaml:"host"`
	Port   int    `json:"port" yaml:"port"`
	Active bool   `json:"active" yaml:"active"`
}

// NewExecutor creates an executor value.
func NewExecutor(id int, host string, port int, active bool) *Executor {
	return &Executor{ID: id, Host: host, Port: port, Active: active}
}

// IsVirtual reports whether e is a synthesized container endpoint.
func (e *Executor) IsVirtual() bool {
	return e.ID == VirtualExecutorID
}

// Address returns host:port.
func (e *Executor) Address() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

func (e *Executor) String() string {
	return fmt.Sprintf("Executor(id=%d, %s, active=%t)", e.ID, e.Address(), e.Active)
}

// ExecutionReference identifies one queued or running flow instance.
// It is created at dispatch time and not modified afterwards.
type ExecutionReference struct {
	execID         int
	dispatchMethod DispatchMethod
	executor       *Executor
}

// NewExecutionReference creates a reference without a bound executor.
func NewExecutionReference(execID int, method DispatchMethod) *ExecutionReference {
	return &ExecutionReference{execID: execID, dispatchMethod: method}
}

// NewBoundExecutionReference creates a reference bound to a bare-metal executor.
func NewBoundExecutionReference(execID int, executor *Executor, method DispatchMethod) *ExecutionReference {
	return &ExecutionReference{execID: execID, dispatchMethod: method, executor: executor}
}

// ExecID returns the execution id.
func (r *ExecutionReference) ExecID() int { return r.execID }

// DispatchMethod returns the dispatch method.
func (r *ExecutionReference) DispatchMethod() DispatchMethod { return r.dispatchMethod }

// Executor returns the bound executor, if any.
func (r *ExecutionReference) Executor() (*Executor, bool) {
	return r.executor, r.executor != nil
}
