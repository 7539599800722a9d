// ABOUTME: Tests for the slice migration utility
// ABOUTME: Copies between in-memory and sqlite stores and checks skip/force/dry-run behavior
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/echoes/db"
	"github.com/harperreed/echoes/persist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *persist.Store {
	t.Helper()
	src := persist.New(persist.NewMemoryKV())
	require.NoError(t, src.Save("deals", []string{"d1"}))
	require.NoError(t, src.Save("theme", "dark"))
	return src
}

func TestCopySlicesToSQLite(t *testing.T) {
	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "dst.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	dst := persist.New(db.NewKV(database))
	res, err := copySlices(seeded(t), dst, false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"deals", "theme"}, res.Copied)
	assert.Empty(t, res.Skipped)

	assert.Equal(t, "dark", persist.Load(dst, "theme", "light"))
	assert.Equal(t, []string{"d1"}, persist.Load(dst, "deals", []string{}))
}

func TestCopySlicesSkipsExistingWithoutForce(t *testing.T) {
	dst := persist.New(persist.NewMemoryKV())
	require.NoError(t, dst.Save("theme", "light"))

	res, err := copySlices(seeded(t), dst, false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"deals"}, res.Copied)
	assert.Equal(t, []string{"theme"}, res.Skipped)
	assert.Equal(t, "light", persist.Load(dst, "theme", ""))

	res, err = copySlices(seeded(t), dst, false, true)
	require.NoError(t, err)
	assert.Len(t, res.Copied, 2)
	assert.Equal(t, "dark", persist.Load(dst, "theme", ""))
}

func TestCopySlicesDryRunWritesNothing(t *testing.T) {
	dst := persist.New(persist.NewMemoryKV())

	res, err := copySlices(seeded(t), dst, true, false)
	require.NoError(t, err)
	assert.Len(t, res.Copied, 2)

	names, err := dst.Slices()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestBackupSQLite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "echoes.db")

	require.NoError(t, backupSQLite("sqlite:"+path))
	require.NoError(t, backupSQLite("charm"))

	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))
	require.NoError(t, backupSQLite("sqlite:"+path))

	matches, err := filepath.Glob(path + ".backup.*")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestOpenBackendRejectsUnknown(t *testing.T) {
	_, _, err := openBackend("postgres:localhost", persist.DefaultPrefix)
	assert.Error(t, err)
}
