// ABOUTME: Persistent store adapter: one namespaced JSON value per state slice
// ABOUTME: Load never fails (falls back to the default), Save writes through immediately
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// DefaultPrefix namespaces every slice key. Changing it orphans all
// previously saved slices, which are then reseeded from defaults.
const DefaultPrefix = "echoes_"

// ErrNotFound is returned by backends when a key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the byte-level key-value backend. charm.Client, db.KV, RedisKV and
// MemoryKV all satisfy it.
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
}

// Store maps slice names to namespaced keys and JSON-encodes values.
// Persisted values are not versioned: when a record type changes shape,
// old values decode with zero fields or fail and fall back to defaults.
type Store struct {
	kv     KV
	prefix string
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithLogger attaches a logger for debug-level read diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New wraps kv in a Store.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		prefix: DefaultPrefix,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the backend key for a slice.
func (s *Store) Key(slice string) []byte {
	return []byte(s.prefix + slice)
}

// Load reads the slice and decodes it into a fresh T. A missing key, a
// backend error or undecodable bytes all yield def unchanged.
func Load[T any](s *Store, slice string, def T) T {
	data, err := s.kv.Get(s.Key(slice))
	if err != nil || len(data) == 0 {
		if err != nil && !errors.Is(err, ErrNotFound) {
			s.logger.Debug("slice read failed, using default", zap.String("slice", slice), zap.Error(err))
		}
		return def
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		s.logger.Debug("slice decode failed, using default", zap.String("slice", slice), zap.Error(err))
		return def
	}
	return value
}

// LoadEach reads a JSON array slice and decodes each element on its own.
// Elements that fail to decode are dropped. A missing key, a backend error
// or a value that is not an array yield def unchanged.
func LoadEach[T any](s *Store, slice string, def []T) []T {
	data, err := s.kv.Get(s.Key(slice))
	if err != nil || len(data) == 0 {
		if err != nil && !errors.Is(err, ErrNotFound) {
			s.logger.Debug("slice read failed, using default", zap.String("slice", slice), zap.Error(err))
		}
		return def
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Debug("slice decode failed, using default", zap.String("slice", slice), zap.Error(err))
		return def
	}

	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			s.logger.Warn("dropping undecodable record", zap.String("slice", slice), zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	return out
}

// Save encodes value and writes it under the slice key.
func (s *Store) Save(slice string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", slice, err)
	}
	if err := s.kv.Set(s.Key(slice), data); err != nil {
		return fmt.Errorf("write %s: %w", slice, err)
	}
	return nil
}

// Clear deletes a slice so the next Load returns its default.
func (s *Store) Clear(slice string) error {
	if err := s.kv.Delete(s.Key(slice)); err != nil {
		return fmt.Errorf("delete %s: %w", slice, err)
	}
	return nil
}

// Slices lists the slice names currently persisted under the prefix.
func (s *Store) Slices() ([]string, error) {
	keys, err := s.kv.Keys()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, k := range keys {
		if name, ok := strings.CutPrefix(string(k), s.prefix); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Raw returns the stored bytes for a slice without decoding.
func (s *Store) Raw(slice string) ([]byte, error) {
	return s.kv.Get(s.Key(slice))
}

// PutRaw stores already-encoded bytes for a slice.
func (s *Store) PutRaw(slice string, data []byte) error {
	return s.kv.Set(s.Key(slice), data)
}
