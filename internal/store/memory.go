package store

import (
	"context"
	"sync"

	"github.com/duke-git/lancet/v2/maputil"
	"github.com/duke-git/lancet/v2/slice"

	"yqhp/flow-dispatch/pkg/types"
)

// MemoryStore implements ExecutorStore using in-memory storage.
type MemoryStore struct {
	executors map[int]*types.Executor

	mu sync.RWMutex
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		executors: make(map[int]*types.Executor),
	}
}

// Get implements ExecutorStore.
func (s *MemoryStore) Get(ctx context.Context, id int) (*types.Executor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	executor, ok := s.executors[id]
	if !ok {
		return nil, ErrExecutorNotFound
	}
	copied := *executor
	return &copied, nil
}

// Put implements ExecutorStore.
func (s *MemoryStore) Put(ctx context.Context, executor *types.Executor) error {
	if err := validateExecutor(executor); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *executor
	s.executors[executor.ID] = &copied
	return nil
}

// Remove implements ExecutorStore.
func (s *MemoryStore) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.executors, id)
	return nil
}

// ActiveExecutors implements ExecutorStore.
func (s *MemoryStore) ActiveExecutors(ctx context.Context) ([]*types.Executor, error) {
	s.mu.RLock()
	active := maputil.Filter(s.executors, func(_ int, e *types.Executor) bool {
		return e.Active
	})
	s.mu.RUnlock()

	ids := maputil.Keys(active)
	slice.Sort(ids)

	result := make([]*types.Executor, 0, len(ids))
	for _, id := range ids {
		copied := *active[id]
		result = append(result, &copied)
	}
	return result, nil
}

// Close implements ExecutorStore.
func (s *MemoryStore) Close() error {
	return nil
}
