// ABOUTME: SQLite implementation of the persist.KV backend
// ABOUTME: Upserts whole slice documents into the kv table
package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/harperreed/echoes/persist"
)

// KV stores slice documents in SQLite.
type KV struct {
	db *sql.DB
}

// NewKV wraps an opened database. The schema must already exist.
func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

func (k *KV) Get(key []byte) ([]byte, error) {
	var value []byte
	err := k.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persist.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (k *KV) Set(key, value []byte) error {
	_, err := k.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(key), value, time.Now().UTC())
	return err
}

func (k *KV) Delete(key []byte) error {
	_, err := k.db.Exec(`DELETE FROM kv WHERE key = ?`, string(key))
	return err
}

func (k *KV) Keys() ([][]byte, error) {
	rows, err := k.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys [][]byte
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, []byte(key))
	}
	return keys, rows.Err()
}

// UpdatedAt reports when a key was last written.
func (k *KV) UpdatedAt(key []byte) (time.Time, error) {
	var ts time.Time
	err := k.db.QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, string(key)).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, persist.ErrNotFound
	}
	return ts, err
}
