package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yqhp/flow-dispatch/internal/config"
	"yqhp/flow-dispatch/pkg/logger"
	"yqhp/flow-dispatch/pkg/types"
	"yqhp/flow-dispatch/pkg/utils"
)

// Call describes one RPC to an executor.
type Call struct {
	Host   string
	Port   int
	Action string
	// ExecutionID is nil for executor-wide calls; it is then sent as NullExecID.
	ExecutionID *int
	// User is sent as a null parameter when nil.
	User           *string
	DispatchMethod types.DispatchMethod
	// Timeout overrides the gateway timeout when positive.
	Timeout time.Duration
	// Params are sent before the mandatory action, execid and user parameters.
	Params types.Params
}

// params returns the full parameter list of the call in wire order.
func (c *Call) params() types.Params {
	params := make(types.Params, 0, len(c.Params)+3)
	params = append(params, c.Params...)
	params = params.Add(ActionParam, c.Action)
	params = params.Add(ExecIDParam, execIDString(c.ExecutionID))
	return append(params, types.OptionalParam(UserParam, c.User))
}

// Gateway sends RPCs to bare-metal executors and flow containers.
type Gateway struct {
	client  APIClient
	routing config.RoutingConfig
	timeout time.Duration
	log     *zap.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithTimeout sets the default timeout of every call. Zero disables it.
func WithTimeout(timeout time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.timeout = timeout
	}
}

// WithLogger sets the logger of the gateway.
func WithLogger(log *zap.Logger) GatewayOption {
	return func(g *Gateway) {
		g.log = log
	}
}

// NewGateway creates a gateway.
func NewGateway(client APIClient, routing config.RoutingConfig, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		client:  client,
		routing: routing,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.Named("dispatch")
	}
	return g
}

// Routing returns the routing snapshot the gateway resolves with.
func (g *Gateway) Routing() config.RoutingConfig {
	return g.routing
}

// Do performs call and returns the decoded reply.
func (g *Gateway) Do(ctx context.Context, call *Call) (map[string]any, error) {
	params := call.params()
	path, err := ResolvePath(call.ExecutionID, call.DispatchMethod, g.routing)
	if err != nil {
		g.log.Error("failed to resolve execution path",
			zap.String("host", call.Host),
			zap.Int("port", call.Port),
			zap.String("action", call.Action),
			zap.String("dispatch_method", string(call.DispatchMethod)),
			zap.Error(err))
		return nil, err
	}

	resp, err := g.CallForJSONObjectMap(ctx, call.Host, call.Port, path, call.DispatchMethod, call.Timeout, params)
	if err != nil {
		var transportErr *TransportError
		if errors.As(err, &transportErr) {
			transportErr.Action = call.Action
			transportErr.ExecutionID = call.ExecutionID
		}
		g.log.Error("call with execution id failed",
			zap.String("host", call.Host),
			zap.Int("port", call.Port),
			zap.String("action", call.Action),
			zap.String("execid", execIDString(call.ExecutionID)),
			zap.String("dispatch_method", string(call.DispatchMethod)),
			zap.Stringer("params", call.Params),
			zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// CallWithExecutionID calls action on host:port for one execution.
func (g *Gateway) CallWithExecutionID(ctx context.Context, host string, port int, action string,
	execID *int, user *string, method types.DispatchMethod, params ...types.Param) (map[string]any, error) {
	return g.Do(ctx, &Call{
		Host:           host,
		Port:           port,
		Action:         action,
		ExecutionID:    execID,
		User:           user,
		DispatchMethod: method,
		Params:         params,
	})
}

// CallWithExecutable calls action for flow on executor.
func (g *Gateway) CallWithExecutable(ctx context.Context, flow *types.FlowInstance, executor *types.Executor, action string) (map[string]any, error) {
	execID := flow.ExecutionID
	return g.CallWithExecutionID(ctx, executor.Host, executor.Port, action, &execID, nil, flow.DispatchMethod)
}

// CallWithReference calls action for the referenced execution.
func (g *Gateway) CallWithReference(ctx context.Context, ref *types.ExecutionReference, action string, params ...types.Param) (map[string]any, error) {
	return g.callWithReference(ctx, ref, action, nil, params)
}

// CallWithReferenceByUser calls action for the referenced execution on behalf of user.
func (g *Gateway) CallWithReferenceByUser(ctx context.Context, ref *types.ExecutionReference, action, user string, params ...types.Param) (map[string]any, error) {
	return g.callWithReference(ctx, ref, action, &user, params)
}

func (g *Gateway) callWithReference(ctx context.Context, ref *types.ExecutionReference, action string, user *string, params types.Params) (map[string]any, error) {
	executor, err := g.Executor(ref)
	if err != nil {
		return nil, err
	}
	execID := ref.ExecID()
	return g.CallWithExecutionID(ctx, executor.Host, executor.Port, action, &execID, user, ref.DispatchMethod(), params...)
}

// Executor returns the endpoint serving the referenced execution.
func (g *Gateway) Executor(ref *types.ExecutionReference) (*types.Executor, error) {
	return ResolveExecutor(ref, g.routing)
}

// CallForJSONObjectMap posts params to path and decodes the reply as a JSON
// object. A reply carrying ResponseErrorKey is returned as a *RemoteError.
func (g *Gateway) CallForJSONObjectMap(ctx context.Context, host string, port int, path string,
	method types.DispatchMethod, timeout time.Duration, params types.Params) (map[string]any, error) {
	body, err := g.callForJSONString(ctx, host, port, path, method, timeout, params)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}

	resp, err := utils.DecodeObject(body)
	if err != nil {
		return nil, &DecodeError{Body: string(body), Err: err}
	}
	if resp == nil {
		return nil, &DecodeError{Body: string(body), Err: fmt.Errorf("not a JSON object")}
	}

	if msg, ok := resp[ResponseErrorKey]; ok && msg != nil {
		g.log.Error("executor returned an error",
			zap.String("host", host),
			zap.Int("port", port),
			zap.String("path", path),
			zap.String("dispatch_method", string(method)),
			zap.Stringer("params", params),
			zap.Any("error", msg))
		return nil, &RemoteError{Host: host, Port: port, Path: path, Message: fmt.Sprint(msg)}
	}
	return resp, nil
}

// CallForJSONType posts params to path on executor and decodes the reply into
// T. An empty reply gives a nil result. The reply is not checked for
// ResponseErrorKey, so use it only with endpoints that never set it.
func CallForJSONType[T any](ctx context.Context, g *Gateway, host string, port int, path string,
	method types.DispatchMethod, params types.Params) (*T, error) {
	body, err := g.callForJSONString(ctx, host, port, path, method, 0, params)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	v, err := utils.FromJSONBytes[T](body)
	if err != nil {
		return nil, &DecodeError{Body: string(body), Err: err}
	}
	return &v, nil
}

func (g *Gateway) callForJSONString(ctx context.Context, host string, port int, path string,
	method types.DispatchMethod, timeout time.Duration, params types.Params) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout = g.effectiveTimeout(ctx, timeout)
	uri := g.client.BuildExecutorURI(host, port, path, method)
	callID := uuid.NewString()

	if logger.IsDebugEnabled() {
		g.log.Debug("posting to executor",
			zap.String("call_id", callID),
			zap.String("uri", uri),
			zap.Duration("timeout", timeout),
			zap.Stringer("params", params))
	}

	start := time.Now()
	body, err := g.client.DoPost(uri, timeout, params)
	if err != nil {
		g.log.Warn("executor post failed",
			zap.String("call_id", callID),
			zap.String("uri", uri),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, &TransportError{Host: host, Port: port, Err: err}
	}

	if logger.IsDebugEnabled() {
		g.log.Debug("executor replied",
			zap.String("call_id", callID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("bytes", len(body)))
	}
	return body, nil
}

// effectiveTimeout picks the call timeout, else the gateway timeout, capped by
// the context deadline.
func (g *Gateway) effectiveTimeout(ctx context.Context, timeout time.Duration) time.Duration {
	if timeout <= 0 {
		timeout = g.timeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			remaining = time.Millisecond
		}
		if timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}
	return timeout
}

// ExecID returns a pointer to id for use as an optional execution id.
func ExecID(id int) *int {
	return &id
}

// ParseExecID parses a decimal execution id.
func ParseExecID(s string) (*int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid execution id %q: %w", s, err)
	}
	return &id, nil
}
