// ABOUTME: Typed collection and singleton slices owned by the workspace State
// ABOUTME: Every committed mutation writes the slice through and notifies subscribers
package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/harperreed/echoes/persist"
	"github.com/oklog/ulid/v2"
)

var (
	ErrDuplicateID    = errors.New("duplicate record id")
	ErrRecordNotFound = errors.New("record not found")
)

// Order is where Add places a new record.
type Order int

const (
	Prepend Order = iota // newest first
	Append               // oldest first
)

// Collection is one slice of records keyed by a string id.
type Collection[T any] struct {
	s       *State
	name    string
	order   Order
	idOf    func(*T) *string
	check   func(T) error
	perItem bool
	items   []T
}

type collectionOption[T any] func(*Collection[T])

// withCheck rejects records that fail check on Add and Update.
func withCheck[T any](check func(T) error) collectionOption[T] {
	return func(c *Collection[T]) { c.check = check }
}

// withPerRecordLoad decodes stored records one at a time, dropping the
// ones that fail instead of falling back to the seeds.
func withPerRecordLoad[T any]() collectionOption[T] {
	return func(c *Collection[T]) { c.perItem = true }
}

func newCollection[T any](s *State, name string, order Order, def []T, idOf func(*T) *string, opts ...collectionOption[T]) *Collection[T] {
	c := &Collection[T]{
		s:     s,
		name:  name,
		order: order,
		idOf:  idOf,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.perItem {
		c.items = persist.LoadEach(s.store, name, def)
	} else {
		c.items = persist.Load(s.store, name, def)
	}
	s.register(name, func() any { return c.items })
	return c
}

// Name is the persisted slice name.
func (c *Collection[T]) Name() string { return c.name }

// Add inserts rec at the collection's end or front and returns it. An
// empty id is replaced by a fresh ULID. An id already in the collection
// fails with ErrDuplicateID and changes nothing.
func (c *Collection[T]) Add(rec T) (T, error) {
	var zero T
	if id := c.idOf(&rec); *id == "" {
		*id = ulid.Make().String()
	}
	if err := c.validate(rec); err != nil {
		return zero, err
	}

	id := *c.idOf(&rec)
	var err error
	c.s.commit(func() []string {
		if c.index(id) >= 0 {
			err = fmt.Errorf("%s %q: %w", c.name, id, ErrDuplicateID)
			return nil
		}
		c.insert(rec)
		return []string{c.name}
	})
	if err != nil {
		return zero, err
	}
	return rec, nil
}

func (c *Collection[T]) insert(rec T) {
	if c.order == Prepend {
		c.items = append([]T{rec}, c.items...)
		return
	}
	c.items = append(c.items, rec)
}

// Update replaces the record with rec's id. Unknown ids fail with
// ErrRecordNotFound and change nothing.
func (c *Collection[T]) Update(rec T) error {
	if err := c.validate(rec); err != nil {
		return err
	}

	id := *c.idOf(&rec)
	var err error
	c.s.commit(func() []string {
		i := c.index(id)
		if i < 0 {
			err = fmt.Errorf("%s %q: %w", c.name, id, ErrRecordNotFound)
			return nil
		}
		c.items[i] = rec
		return []string{c.name}
	})
	return err
}

func (c *Collection[T]) validate(rec T) error {
	if c.check == nil {
		return nil
	}
	if err := c.check(rec); err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	return nil
}

// Delete removes the record with id. Unknown ids are a no-op.
func (c *Collection[T]) Delete(id string) bool {
	found := false
	c.s.commit(func() []string {
		i := c.index(id)
		if i < 0 {
			return nil
		}
		c.items = slices.Delete(c.items, i, i+1)
		found = true
		return []string{c.name}
	})
	return found
}

// List returns a copy of the records in stored order.
func (c *Collection[T]) List() []T {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Len() int {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return len(c.items)
}

// index must be called with s.mu held.
func (c *Collection[T]) index(id string) int {
	for i := range c.items {
		if *c.idOf(&c.items[i]) == id {
			return i
		}
	}
	return -1
}

// Value is a singleton slice such as the profile or the theme.
type Value[T any] struct {
	s    *State
	name string
	v    T
}

func newValue[T any](s *State, name string, def T) *Value[T] {
	v := &Value[T]{s: s, name: name, v: persist.Load(s.store, name, def)}
	s.register(name, func() any { return v.v })
	return v
}

func (v *Value[T]) Get() T {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	return v.v
}

// Set overwrites the value unconditionally.
func (v *Value[T]) Set(x T) {
	v.s.commit(func() []string {
		v.v = x
		return []string{v.name}
	})
}
