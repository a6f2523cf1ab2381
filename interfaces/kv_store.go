package interfaces

import "context"

// KVStore is durable string key-value storage surviving process restarts
// (the app's persisted storage: a file on device, redis in integration setups).
// Consumed, never implemented, by the discovery core: every method may fail and
// callers must treat failures as cache miss, not propagate them as fatal.
//
// Implemented by adapters/filekv.Store and adapters/rediskv.Store. Called from
// service.discoverer to load/save/clear the persisted DiscoveryResult.
//
//go:generate moq -stub -out mock/kv_store.go -pkg mock . KVStore
type KVStore interface {
	// Get returns the value stored under key.
	// Returns:
	// 1) (value, true, nil) when the key exists;
	// 2) ("", false, nil) when the key is absent;
	// 3) ("", false, storage_unavailable) when the storage read fails.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value (last-write-wins, no merge).
	// Returns nil on success or storage_unavailable when the write fails.
	Set(ctx context.Context, key string, value string) error

	// Remove deletes the value under key. Removing an absent key is not an error.
	// Returns nil on success or storage_unavailable when the delete fails.
	Remove(ctx context.Context, key string) error
}
