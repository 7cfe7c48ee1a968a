package dispatch

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/valyala/fasthttp"
)

var (
	// ErrMissingExecutionID is returned when a containerized execution behind
	// the reverse proxy is addressed without an execution id.
	ErrMissingExecutionID = errors.New("execution id must be provided when reverse-proxy is enabled")

	// ErrNoBoundExecutor is returned when a non-containerized reference carries
	// no executor.
	ErrNoBoundExecutor = errors.New("execution reference has no bound executor")

	// ErrEmptyResponse is returned when an executor replies with an empty body
	// where a JSON object is required.
	ErrEmptyResponse = errors.New("empty response from executor")
)

// StatusError is an unexpected HTTP status from an executor.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code %d", e.Code)
	}
	return fmt.Sprintf("unexpected status code %d: %s", e.Code, e.Body)
}

// TransportError wraps a connection, I/O or timeout failure of an RPC.
type TransportError struct {
	Host        string
	Port        int
	Action      string
	ExecutionID *int
	Err         error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rpc %s to %s:%d (execid=%s) failed: %v",
		e.Action, e.Host, e.Port, execIDString(e.ExecutionID), e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call gave up waiting for the executor.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, fasthttp.ErrTimeout) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// RemoteError is an application error the executor reported in the
// ResponseErrorKey field of an otherwise successful reply.
type RemoteError struct {
	Host    string
	Port    int
	Path    string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// DecodeError is a reply body that is not the expected JSON.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode executor response %q: %v", e.Body, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func execIDString(execID *int) string {
	if execID == nil {
		return NullExecID
	}
	return strconv.Itoa(*execID)
}
