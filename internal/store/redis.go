package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/duke-git/lancet/v2/maputil"
	"github.com/duke-git/lancet/v2/slice"
	"github.com/redis/go-redis/v9"

	"yqhp/flow-dispatch/internal/config"
	"yqhp/flow-dispatch/pkg/types"
	"yqhp/flow-dispatch/pkg/utils"
)

// RedisStore implements ExecutorStore with one Redis hash of JSON encoded
// executors keyed by id.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore wraps an existing client. Keys are placed under prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	key := "executors"
	if prefix != "" {
		key = prefix + ":" + key
	}
	return &RedisStore{client: client, key: key}
}

// OpenRedisStore 初始化Redis连接并测试连通性
func OpenRedisStore(ctx context.Context, cfg *config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis %s: %w", cfg.Addr, err)
	}
	return NewRedisStore(client, cfg.Prefix), nil
}

// Get implements ExecutorStore.
func (s *RedisStore) Get(ctx context.Context, id int) (*types.Executor, error) {
	data, err := s.client.HGet(ctx, s.key, strconv.Itoa(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrExecutorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get executor %d: %w", id, err)
	}
	return decodeExecutor(data)
}

// Put implements ExecutorStore.
func (s *RedisStore) Put(ctx context.Context, executor *types.Executor) error {
	if err := validateExecutor(executor); err != nil {
		return err
	}
	data, err := utils.ToJSON(executor)
	if err != nil {
		return fmt.Errorf("failed to encode executor %d: %w", executor.ID, err)
	}
	if err := s.client.HSet(ctx, s.key, strconv.Itoa(executor.ID), data).Err(); err != nil {
		return fmt.Errorf("failed to put executor %d: %w", executor.ID, err)
	}
	return nil
}

// Remove implements ExecutorStore.
func (s *RedisStore) Remove(ctx context.Context, id int) error {
	if err := s.client.HDel(ctx, s.key, strconv.Itoa(id)).Err(); err != nil {
		return fmt.Errorf("failed to remove executor %d: %w", id, err)
	}
	return nil
}

// ActiveExecutors implements ExecutorStore.
func (s *RedisStore) ActiveExecutors(ctx context.Context) ([]*types.Executor, error) {
	all, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list executors: %w", err)
	}

	active := make(map[int]*types.Executor, len(all))
	for _, data := range all {
		executor, err := decodeExecutor(data)
		if err != nil {
			return nil, err
		}
		if executor.Active {
			active[executor.ID] = executor
		}
	}

	ids := maputil.Keys(active)
	slice.Sort(ids)
	return slice.Map(ids, func(_ int, id int) *types.Executor {
		return active[id]
	}), nil
}

// Close implements ExecutorStore.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func decodeExecutor(data string) (*types.Executor, error) {
	executor, err := utils.FromJSONBytes[types.Executor]([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode executor %q: %w", data, err)
	}
	return &executor, nil
}
