package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yqhp/flow-dispatch/internal/config"
	"yqhp/flow-dispatch/pkg/types"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s := NewRedisStore(client, "fd-test")
	defer s.Close()
	exerciseStore(t, s)
}

func TestRedisStore_Layout(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client, "fd")
	defer s.Close()

	require.NoError(t, s.Put(context.Background(), types.NewExecutor(7, "exec-7", 12321, true)))

	assert.True(t, mr.Exists("fd:executors"))
	assert.JSONEq(t, `{"id":7,"host":"exec-7","port":12321,"active":true}`, mr.HGet("fd:executors", "7"))
}

func TestRedisStore_CorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client, "")
	defer s.Close()

	mr.HSet("executors", "9", "not json")

	_, err := s.Get(context.Background(), 9)
	assert.Error(t, err)
	_, err = s.ActiveExecutors(context.Background())
	assert.Error(t, err)
}

func TestOpenRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := New(context.Background(), &config.StoreConfig{
		Type:  "redis",
		Redis: config.RedisConfig{Addr: mr.Addr(), Prefix: "fd"},
	})
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &RedisStore{}, s)

	mr.Close()
	_, err = OpenRedisStore(context.Background(), &config.RedisConfig{Addr: mr.Addr()})
	assert.Error(t, err)
}
