package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_EmptyDir(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestStore_SetGet(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("imagehost.active", []byte("github")))

	val, ok := store.Get("imagehost.active")
	require.True(t, ok)
	assert.Equal(t, []byte("github"), val)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("article.last", []byte("# Title\n\nBody.")))

	reopened, err := NewStore(dir)
	require.NoError(t, err)

	val, ok := reopened.Get("article.last")
	require.True(t, ok)
	assert.Equal(t, []byte("# Title\n\nBody."), val)
}

func TestStore_Delete(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", []byte("v")))
	require.NoError(t, store.Delete("k"))

	_, ok := store.Get("k")
	assert.False(t, ok)

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	_, ok = reopened.Get("k")
	assert.False(t, ok)
}

func TestStore_LoadPicksUpExternalEdit(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", []byte("old")))

	raw, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "old")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("k = 'new'\n"), 0600))
	require.NoError(t, store.Load())

	val, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), val)
}

func TestStore_CorruptFileFailsLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = toml = at all"), 0600))

	_, err := NewStore(dir)
	require.Error(t, err)
}
