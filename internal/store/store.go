// Package store keeps the registry of bare-metal executors that bound
// execution references point at.
package store

import (
	"context"
	"errors"
	"fmt"

	"yqhp/flow-dispatch/internal/config"
	"yqhp/flow-dispatch/pkg/types"
)

// ErrExecutorNotFound is returned when no executor has the requested id.
var ErrExecutorNotFound = errors.New("executor not found")

// ExecutorStore persists bare-metal executors.
// Virtual container executors are computed on demand and never stored.
type ExecutorStore interface {
	// Get returns the executor with the given id.
	Get(ctx context.Context, id int) (*types.Executor, error)
	// Put creates or replaces an executor.
	Put(ctx context.Context, executor *types.Executor) error
	// Remove deletes an executor. Removing a missing executor is not an error.
	Remove(ctx context.Context, id int) error
	// ActiveExecutors returns the active executors ordered by id.
	ActiveExecutors(ctx context.Context) ([]*types.Executor, error)
	// Close releases the backend connection.
	Close() error
}

// New opens the store selected by cfg.Type.
func New(ctx context.Context, cfg *config.StoreConfig) (ExecutorStore, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		s, err := OpenRedisStore(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "mysql", "postgres":
		s, err := OpenGormStore(cfg.Type, &cfg.Database)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Type)
	}
}

func validateExecutor(executor *types.Executor) error {
	if executor == nil {
		return fmt.Errorf("executor cannot be nil")
	}
	if executor.IsVirtual() {
		return fmt.Errorf("virtual executor %s cannot be stored", executor.Address())
	}
	if executor.Host == "" {
		return fmt.Errorf("executor %d has no host", executor.ID)
	}
	return nil
}
