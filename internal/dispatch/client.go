package dispatch

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"yqhp/flow-dispatch/internal/config"
	"yqhp/flow-dispatch/pkg/types"
)

// APIClient is the transport used by Gateway.
type APIClient interface {
	// BuildExecutorURI returns the URI of path on the given executor.
	BuildExecutorURI(host string, port int, path string, method types.DispatchMethod) string
	// DoPost posts params form-encoded to uri and returns the reply body.
	// A zero timeout waits indefinitely.
	DoPost(uri string, timeout time.Duration, params types.Params) ([]byte, error)
}

// FiberClient implements APIClient over the fiber HTTP client.
type FiberClient struct {
	routing config.RoutingConfig
	agent   *fiber.Client
	dial    fasthttp.DialFunc
}

// ClientOption configures a FiberClient.
type ClientOption func(*FiberClient)

// WithDial replaces the dialer of every request.
func WithDial(dial fasthttp.DialFunc) ClientOption {
	return func(c *FiberClient) {
		c.dial = dial
	}
}

// NewFiberClient creates a client for the given routing configuration.
func NewFiberClient(routing config.RoutingConfig, opts ...ClientOption) *FiberClient {
	c := &FiberClient{
		routing: routing,
		agent:   fiber.AcquireClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildExecutorURI returns http://{host}:{port}{path}. Containerized calls are
// sent to the reverse proxy instead of host when the proxy is enabled.
func (c *FiberClient) BuildExecutorURI(host string, port int, path string, method types.DispatchMethod) string {
	if method.IsContainerized() && c.routing.ReverseProxyEnabled {
		host = c.routing.ReverseProxyHost
		port = c.routing.ReverseProxyPort
	}
	return fmt.Sprintf("http://%s:%d%s", host, port, path)
}

// DoPost implements APIClient.
func (c *FiberClient) DoPost(uri string, timeout time.Duration, params types.Params) ([]byte, error) {
	req := c.agent.Post(uri)
	if c.dial != nil && req.HostClient != nil {
		req.HostClient.Dial = c.dial
	}
	req.Form(params.Args())
	if timeout > 0 {
		req.Timeout(timeout)
	}

	statusCode, body, errs := req.Bytes()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if statusCode < fiber.StatusOK || statusCode >= fiber.StatusMultipleChoices {
		return nil, &StatusError{Code: statusCode, Body: string(body)}
	}
	return body, nil
}

// Close returns the underlying fiber client to its pool.
func (c *FiberClient) Close() {
	fiber.ReleaseClient(c.agent)
}
