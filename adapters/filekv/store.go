// Package filekv implements persistent key-value storage as a single JSON file
// on disk — the shape of an app's device storage.
package filekv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"backendlink/helpers"
	"backendlink/interfaces"
	"backendlink/service"
)

// store implements interfaces.KVStore over one JSON file holding a flat
// string-to-string map. Writes go to a temp file in the same directory and are
// moved into place with os.Rename, so a write interrupted by a crash reads back
// as the old file — fully present or absent, never partially applied.
// Fields: path; mu serializes file access within the process.
type store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a KVStore persisting to the JSON file at path. The file is created on first Set; a missing file reads as an empty store. Panics on empty path.
//
// Parameter path — file path, e.g. "<app data dir>/backendlink.json". The parent directory must exist.
//
// Returns: interfaces.KVStore (*store).
//
// Called from cmd when wiring the discoverer's persisted cache.
func NewStore(path string) interfaces.KVStore {
	return &store{path: helpers.StrPanic(path, "filekv.store.go: path is required")}
}

// Get returns the value stored under key.
//
// Returns: (value, true, nil) when present; ("", false, nil) when the key or the whole file is absent; ("", false, storage_unavailable) on a read or parse error (callers treat it as cache miss).
func (s *store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

// Set stores value under key (last-write-wins) and rewrites the file atomically.
//
// Returns: nil on success; storage_unavailable on read, marshal, write or rename error.
func (s *store) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		// Unreadable file: start over rather than fail every write forever.
		data = map[string]string{}
	}
	data[key] = value
	return s.save(data)
}

// Remove deletes the value under key. Removing an absent key is not an error.
//
// Returns: nil on success or when the file is absent; storage_unavailable on write error.
func (s *store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.save(data)
}

// load reads and parses the file; a missing file is an empty map. Caller must hold s.mu.
func (s *store) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, service.NewStorageUnavailableError("file read error", fmt.Errorf("can't read %s: %w", s.path, err))
	}
	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, service.NewStorageUnavailableError("file parse error", fmt.Errorf("can't parse %s: %w", s.path, err))
	}
	if data == nil {
		data = map[string]string{}
	}
	return data, nil
}

// save marshals data and replaces the file atomically (temp file + rename). Caller must hold s.mu.
func (s *store) save(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return service.NewStorageUnavailableError("file marshal error", fmt.Errorf("can't marshal store: %w", err))
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-")
	if err != nil {
		return service.NewStorageUnavailableError("file write error", fmt.Errorf("can't create temp file: %w", err))
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return service.NewStorageUnavailableError("file write error", fmt.Errorf("can't write %s: %w", tmpName, err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return service.NewStorageUnavailableError("file write error", fmt.Errorf("can't close %s: %w", tmpName, err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return service.NewStorageUnavailableError("file write error", fmt.Errorf("can't replace %s: %w", s.path, err))
	}
	return nil
}
