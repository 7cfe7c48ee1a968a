package dispatch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"yqhp/flow-dispatch/internal/config"
	"yqhp/flow-dispatch/pkg/types"
)

func testRouting(reverseProxy bool) config.RoutingConfig {
	return config.RoutingConfig{
		ClusterName:         "azkaban",
		ReverseProxyEnabled: reverseProxy,
		ReverseProxyHost:    "proxyhost",
		ReverseProxyPort:    9999,
		ServiceNamePrefix:   "fc-svc",
		Namespace:           "cop-dev",
		ServicePort:         54343,
	}
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name         string
		execID       *int
		method       types.DispatchMethod
		reverseProxy bool
		expected     string
		expectedErr  error
	}{
		{"bare metal", ExecID(1), types.DispatchMethodBareMetal, false, "/executor", nil},
		{"bare metal behind proxy", ExecID(1), types.DispatchMethodBareMetal, true, "/executor", nil},
		{"unset method", nil, types.DispatchMethodUnset, true, "/executor", nil},
		{"container direct", ExecID(12345), types.DispatchMethodContainerized, false, "/container", nil},
		{"container direct without id", nil, types.DispatchMethodContainerized, false, "/container", nil},
		{"container behind proxy", ExecID(12345), types.DispatchMethodContainerized, true, "/azkaban-12345/container", nil},
		{"container behind proxy without id", nil, types.DispatchMethodContainerized, true, "", ErrMissingExecutionID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := ResolvePath(tt.execID, tt.method, testRouting(tt.reverseProxy))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)
		})
	}
}

func TestResolvePath_UsesClusterName(t *testing.T) {
	routing := testRouting(true)
	routing.ClusterName = "prod-west"

	path, err := ResolvePath(ExecID(7), types.DispatchMethodContainerized, routing)
	require.NoError(t, err)
	assert.Equal(t, "/prod-west-7/container", path)
}

func TestClusterQualifiedExecID(t *testing.T) {
	assert.Equal(t, "azkaban-12345", ClusterQualifiedExecID("azkaban", 12345))
	assert.Equal(t, "c--1", ClusterQualifiedExecID("c", -1))
}

// Property: non-containerized executions always use the bare-metal path.
func TestProperty_BareMetalPathIgnoresConfig(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var execID *int
		if rapid.Bool().Draw(t, "hasID") {
			execID = ExecID(rapid.Int().Draw(t, "execID"))
		}
		method := rapid.SampledFrom([]types.DispatchMethod{types.DispatchMethodBareMetal, types.DispatchMethodUnset}).Draw(t, "method")
		routing := testRouting(rapid.Bool().Draw(t, "reverseProxy"))
		routing.ClusterName = rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "cluster")

		path, err := ResolvePath(execID, method, routing)
		if err != nil || path != BareMetalPath {
			t.Fatalf("expected %s, got %q (%v)", BareMetalPath, path, err)
		}
	})
}

// Property: direct container routing never needs the execution id.
func TestProperty_DirectContainerPath(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var execID *int
		if rapid.Bool().Draw(t, "hasID") {
			execID = ExecID(rapid.IntRange(0, 1<<30).Draw(t, "execID"))
		}

		path, err := ResolvePath(execID, types.DispatchMethodContainerized, testRouting(false))
		if err != nil || path != ContainerPath {
			t.Fatalf("expected %s, got %q (%v)", ContainerPath, path, err)
		}
	})
}

// Property: proxied container paths are prefixed by the cluster qualified id.
func TestProperty_ProxiedContainerPath(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		execID := rapid.IntRange(0, 1<<30).Draw(t, "execID")
		routing := testRouting(true)
		routing.ClusterName = rapid.StringMatching(`[a-z][a-z0-9-]{0,15}`).Draw(t, "cluster")

		path, err := ResolvePath(&execID, types.DispatchMethodContainerized, routing)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := "/" + ClusterQualifiedExecID(routing.ClusterName, execID) + "/container"
		if path != expected {
			t.Fatalf("expected %s, got %s", expected, path)
		}

		_, err = ResolvePath(nil, types.DispatchMethodContainerized, routing)
		if !errors.Is(err, ErrMissingExecutionID) {
			t.Fatalf("expected ErrMissingExecutionID, got %v", err)
		}
	})
}
