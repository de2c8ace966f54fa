package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadMissingFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.Nil(t, store.Load())
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	rec := Record{Token: "tok123", UserID: "u1", Username: "alice", IsAdmin: true}
	require.NoError(t, store.Save(rec))

	loaded := store.Load()
	require.NotNil(t, loaded)
	assert.Equal(t, "tok123", loaded.Token)
	assert.Equal(t, "u1", loaded.UserID)
	assert.Equal(t, "alice", loaded.Username)
	assert.True(t, loaded.IsAdmin)
	assert.NotZero(t, loaded.SavedAt)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0600))

	assert.Nil(t, store.Load(), "a corrupt record reads as absent")
}

func TestStoreClearIsIdempotent(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(Record{Token: "tok123"}))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	assert.Nil(t, store.Load())
}

func TestStoreFilePermissions(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(Record{Token: "tok123"}))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "the token file must be owner-only")
}

func TestStoreDefaultDirCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(Record{Token: "tok123"}))
	require.NotNil(t, store.Load())
}
