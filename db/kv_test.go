// ABOUTME: Tests for the SQLite key-value backend
// ABOUTME: Covers upsert semantics, missing keys, deletes and persist.Store integration
package db

import (
	"testing"

	"github.com/harperreed/echoes/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVSetOverwrites(t *testing.T) {
	kv := setupTestDB(t)

	require.NoError(t, kv.Set([]byte("k"), []byte("one")))
	first, err := kv.UpdatedAt([]byte("k"))
	require.NoError(t, err)

	require.NoError(t, kv.Set([]byte("k"), []byte("two")))

	got, err := kv.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	second, err := kv.UpdatedAt([]byte("k"))
	require.NoError(t, err)
	assert.False(t, second.Before(first))
}

func TestKVGetMissing(t *testing.T) {
	kv := setupTestDB(t)

	_, err := kv.Get([]byte("nope"))
	assert.ErrorIs(t, err, persist.ErrNotFound)
}

func TestKVDeleteAndKeys(t *testing.T) {
	kv := setupTestDB(t)
	require.NoError(t, kv.Set([]byte("b"), []byte("2")))
	require.NoError(t, kv.Set([]byte("a"), []byte("1")))

	keys, err := kv.Keys()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, keys)

	require.NoError(t, kv.Delete([]byte("a")))
	require.NoError(t, kv.Delete([]byte("never-existed")))

	keys, err = kv.Keys()
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("b")}, keys)
}

func TestKVBacksPersistStore(t *testing.T) {
	store := persist.New(setupTestDB(t))

	type row struct {
		ID string `json:"id"`
	}
	require.NoError(t, store.Save("tasks", []row{{ID: "t1"}, {ID: "t2"}}))

	got := persist.Load(store, "tasks", []row(nil))
	assert.Equal(t, []row{{ID: "t1"}, {ID: "t2"}}, got)
	assert.Equal(t, []row{{ID: "d"}}, persist.Load(store, "deals", []row{{ID: "d"}}))
}
