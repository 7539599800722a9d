// ABOUTME: Test utilities for isolated charm clients and the slice stores they back
// ABOUTME: Uses a badger database in a temp dir so no charm server is needed

package charm

import (
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/echoes/persist"
)

// TestPrefix is the key prefix test clients store slices under.
const TestPrefix = "echoes_"

// badgerKV stands in for charm's kv.KV with a local badger database.
type badgerKV struct {
	db *badger.DB
}

func (b *badgerKV) Get(key []byte) ([]byte, error) {
	var result []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})
	return result, err
}

func (b *badgerKV) Set(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (b *badgerKV) Delete(key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (b *badgerKV) Keys() ([][]byte, error) {
	var keys [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

func (b *badgerKV) Sync() error { return nil }

// NewTestClient opens a client on a fresh badger database under t.TempDir.
// Auto-sync is off and the device reports itself as connected.
func NewTestClient(t *testing.T) *Client {
	t.Helper()

	dir := filepath.Join(t.TempDir(), AppName)
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	cfg := Config{Host: "localhost", Prefix: TestPrefix}
	return newClient(&badgerKV{db: db}, cfg, func() (string, error) { return "test-device", nil })
}

// NewTestStore returns the slice store of a fresh test client, ready to
// hand to state.New.
func NewTestStore(t *testing.T) *persist.Store {
	t.Helper()
	return NewTestClient(t).Store()
}
