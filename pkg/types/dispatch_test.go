package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDispatchMethod(t *testing.T) {
	tests := []struct {
		input    string
		expected DispatchMethod
	}{
		{"", DispatchMethodUnset},
		{"BARE_METAL", DispatchMethodBareMetal},
		{"bare_metal", DispatchMethodBareMetal},
		{"PUSH", DispatchMethodBareMetal},
		{"poll", DispatchMethodBareMetal},
		{" CONTAINERIZED ", DispatchMethodContainerized},
		{"containerized", DispatchMethodContainerized},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseDispatchMethod(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m)
		})
	}

	_, err := ParseDispatchMethod("kubernetes")
	assert.Error(t, err)
}

func TestDispatchMethod_IsContainerized(t *testing.T) {
	assert.True(t, DispatchMethodContainerized.IsContainerized())
	assert.False(t, DispatchMethodBareMetal.IsContainerized())
	assert.False(t, DispatchMethodUnset.IsContainerized())
}

func TestExecutor(t *testing.T) {
	e := NewExecutor(3, "bm-host", 12321, true)
	assert.False(t, e.IsVirtual())
	assert.Equal(t, "bm-host:12321", e.Address())
	assert.Equal(t, "Executor(id=3, bm-host:12321, active=true)", e.String())

	v := NewExecutor(VirtualExecutorID, "fc-svc-azkaban-1.default", 54343, false)
	assert.True(t, v.IsVirtual())
}

func TestExecutionReference(t *testing.T) {
	ref := NewExecutionReference(10, DispatchMethodContainerized)
	assert.Equal(t, 10, ref.ExecID())
	assert.Equal(t, DispatchMethodContainerized, ref.DispatchMethod())
	_, ok := ref.Executor()
	assert.False(t, ok)

	e := NewExecutor(1, "h", 1, true)
	bound := NewBoundExecutionReference(11, e, DispatchMethodBareMetal)
	got, ok := bound.Executor()
	require.True(t, ok)
	assert.Same(t, e, got)
}
