// ABOUTME: Charm KV client used as the default workspace storage backend
// ABOUTME: Satisfies persist.KV and exposes the prefixed slice store and sync controls

package charm

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/echoes/persist"
)

var _ persist.KV = (*Client)(nil)

// backend is the subset of charm's kv.KV the client drives.
type backend interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
}

// Client wraps a charm KV database with the workspace's sync settings.
type Client struct {
	db    backend
	cfg   Config
	store *persist.Store
	id    func() (string, error)
	mu    sync.RWMutex
}

// Open connects to the charm database for AppName, pulling remote changes
// first when auto-sync is on.
func Open(cfg Config) (*Client, error) {
	_ = os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(AppName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := newClient(db, cfg, charmID)
	if c.AutoSync() {
		_ = db.Sync()
	}
	return c, nil
}

func newClient(db backend, cfg Config, id func() (string, error)) *Client {
	c := &Client{db: db, cfg: cfg, id: id}
	c.store = persist.New(c, persist.WithPrefix(cfg.Prefix))
	saved := persist.Load(c.store, settingsSlice, syncSettings{AutoSync: cfg.AutoSync})
	c.cfg.AutoSync = saved.AutoSync
	return c
}

func charmID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// Close is a no-op; charm/kv releases badger on process exit.
func (c *Client) Close() error {
	return nil
}

// Store returns the slice store under the configured prefix.
func (c *Client) Store() *persist.Store {
	return c.store
}

func (c *Client) Host() string {
	return c.cfg.Host
}

func (c *Client) AutoSync() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.AutoSync
}

// SetAutoSync changes and remembers the auto-sync choice.
func (c *Client) SetAutoSync(enabled bool) error {
	c.mu.Lock()
	c.cfg.AutoSync = enabled
	c.mu.Unlock()
	return c.store.Save(settingsSlice, syncSettings{AutoSync: enabled})
}

// ID returns the charm user ID for this device.
func (c *Client) ID() (string, error) {
	return c.id()
}

// IsConnected reports whether the charm server knows this device.
func (c *Client) IsConnected() bool {
	_, err := c.ID()
	return err == nil
}

// Sync performs a manual sync with the charm server.
func (c *Client) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Sync()
}

// Get retrieves a value by key. Missing keys report persist.ErrNotFound.
func (c *Client) Get(key []byte) ([]byte, error) {
	c.mu.RLock()
	value, err := c.db.Get(key)
	c.mu.RUnlock()
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, persist.ErrNotFound
	}
	return value, err
}

// Set stores a value. Every slice mutation lands here, so with auto-sync on
// each write is pushed to the server immediately.
func (c *Client) Set(key, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Set(key, value); err != nil {
		return err
	}
	if c.cfg.AutoSync {
		_ = c.db.Sync()
	}
	return nil
}

// Delete removes a key and syncs if enabled.
func (c *Client) Delete(key []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Delete(key); err != nil {
		return err
	}
	if c.cfg.AutoSync {
		_ = c.db.Sync()
	}
	return nil
}

func (c *Client) Keys() ([][]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db.Keys()
}

// Slices lists the persisted workspace slices, leaving out sync settings.
func (c *Client) Slices() ([]string, error) {
	names, err := c.store.Slices()
	if err != nil {
		return nil, err
	}
	out := names[:0]
	for _, n := range names {
		if n != settingsSlice {
			out = append(out, n)
		}
	}
	return out, nil
}

// Wipe deletes every workspace slice under the prefix. Each one falls back
// to its seeded default on the next load. Keys outside the prefix survive.
func (c *Client) Wipe() error {
	names, err := c.Slices()
	if err != nil {
		return err
	}
	for _, n := range names {
		if err := c.store.Clear(n); err != nil {
			return err
		}
	}
	return nil
}
