package filekv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backendlink/interfaces"
	"backendlink/service"
)

func newTestStore(t *testing.T) (interfaces.KVStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backendlink.json")
	return NewStore(path), path
}

func TestNewStore_PanicsOnEmptyPath(t *testing.T) {
	assert.PanicsWithValue(t, "filekv.store.go: path is required", func() {
		NewStore("")
	})
}

func TestStore_GetSetRemove(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	// last write wins
	require.NoError(t, s.Set(ctx, "k", "v2"))
	v, _, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	require.NoError(t, s.Remove(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RemoveAbsentKey(t *testing.T) {
	s, path := newTestStore(t)

	require.NoError(t, s.Remove(context.Background(), "never-set"))

	// no file is created by a no-op remove
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, s.Set(context.Background(), "k", "v"))

	reopened := NewStore(path)
	v, ok, err := reopened.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestStore_CorruptFile(t *testing.T) {
	s, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	t.Run("get_reports_storage_unavailable", func(t *testing.T) {
		_, _, err := s.Get(context.Background(), "k")
		require.Error(t, err)
		assert.True(t, service.IsStorageUnavailableError(err))
	})

	t.Run("set_recovers_by_starting_over", func(t *testing.T) {
		require.NoError(t, s.Set(context.Background(), "k", "v"))
		v, ok, err := s.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", v)
	})
}
