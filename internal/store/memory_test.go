package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yqhp/flow-dispatch/internal/config"
	"yqhp/flow-dispatch/pkg/types"
)

// exerciseStore runs the behaviour every ExecutorStore must share.
func exerciseStore(t *testing.T, s ExecutorStore) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrExecutorNotFound)

	require.NoError(t, s.Put(ctx, types.NewExecutor(2, "exec-2", 12321, true)))
	require.NoError(t, s.Put(ctx, types.NewExecutor(1, "exec-1", 12321, true)))
	require.NoError(t, s.Put(ctx, types.NewExecutor(3, "exec-3", 12321, false)))

	e, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, types.NewExecutor(1, "exec-1", 12321, true), e)

	active, err := s.ActiveExecutors(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, 1, active[0].ID)
	assert.Equal(t, 2, active[1].ID)

	// replace
	require.NoError(t, s.Put(ctx, types.NewExecutor(2, "exec-2b", 12322, false)))
	e, err = s.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "exec-2b", e.Host)
	assert.False(t, e.Active)

	require.NoError(t, s.Remove(ctx, 1))
	require.NoError(t, s.Remove(ctx, 1))
	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrExecutorNotFound)

	active, err = s.ActiveExecutors(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.Error(t, s.Put(ctx, nil))
	assert.Error(t, s.Put(ctx, types.NewExecutor(types.VirtualExecutorID, "fc-svc-azkaban-1.default", 54343, false)))
	assert.Error(t, s.Put(ctx, types.NewExecutor(5, "", 1, true)))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	e := types.NewExecutor(1, "exec-1", 12321, true)
	require.NoError(t, s.Put(ctx, e))
	e.Host = "mutated"

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "exec-1", got.Host)

	got.Active = false
	active, err := s.ActiveExecutors(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestNew(t *testing.T) {
	s, err := New(context.Background(), &config.StoreConfig{Type: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New(context.Background(), &config.StoreConfig{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = New(context.Background(), &config.StoreConfig{Type: "etcd"})
	assert.Error(t, err)
}
