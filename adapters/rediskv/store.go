// Package rediskv implements persistent key-value storage over redis, for
// integration setups where several dev devices share one persisted discovery
// cache.
package rediskv

import (
	"context"
	"fmt"

	"backendlink/helpers"
	"backendlink/interfaces"
	"backendlink/service"

	"github.com/go-redis/redis/v8"
)

// store implements interfaces.KVStore over a redis universal client. Keys are
// namespaced with a prefix; values are stored without TTL (the discoverer
// applies its own cache window on read).
type store struct {
	client redis.UniversalClient
	prefix string
}

// NewStore creates a redis-backed KVStore with the given key prefix. Panics on nil client or empty prefix.
//
// Parameters: client — redis universal client (from NewRedisUniversalClient); prefix — key namespace, e.g. "backendlink".
//
// Returns: interfaces.KVStore (*store).
//
// Called from cmd when REDIS_ADDR is configured instead of a storage file.
func NewStore(client redis.UniversalClient, prefix string) interfaces.KVStore {
	return &store{
		client: helpers.NilPanic(client, "rediskv.store.go: client is required"),
		prefix: helpers.StrPanic(prefix, "rediskv.store.go: prefix is required"),
	}
}

// Get returns the value stored under key.
//
// Returns: (value, true, nil) when present; ("", false, nil) on redis.Nil; ("", false, storage_unavailable) on any other redis error.
func (s *store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.generateKey(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, service.NewStorageUnavailableError("Redis read key error", fmt.Errorf("can't read key '%s', err: %w", key, err))
	}
	return v, true, nil
}

// Set stores value under key without expiry (last-write-wins).
//
// Returns: nil on success; storage_unavailable on redis error.
func (s *store) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, s.generateKey(key), value, 0).Err(); err != nil {
		return service.NewStorageUnavailableError("Redis write key error", fmt.Errorf("can't write key '%s', err: %w", key, err))
	}
	return nil
}

// Remove deletes the value under key; deleting an absent key is not an error.
//
// Returns: nil on success; storage_unavailable on redis error.
func (s *store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.generateKey(key)).Err(); err != nil {
		return service.NewStorageUnavailableError("Redis delete key error", fmt.Errorf("can't delete key '%s', err: %w", key, err))
	}
	return nil
}

func (s *store) generateKey(key string) string {
	return s.prefix + ":" + key
}
