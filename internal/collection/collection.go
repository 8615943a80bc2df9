// Package collection holds an ordered set of remote records keyed by a stable
// identifier, with a per-record in-flight flag. Every list view (balances,
// moderation queues, employees) shares this one container instead of carrying
// its own loading bookkeeping.
package collection

import (
	"context"
	"sync"
)

// Record pairs the last successfully fetched payload for a key with its
// in-flight flag. While Loading is true the row must not accept further
// actions; other rows stay interactive.
type Record[T any] struct {
	Key     string
	Data    T
	Loading bool
}

// Collection preserves server response order and never holds two records with
// the same key. Records are replaced wholesale on refresh, never mutated
// field by field, so a snapshot comparison detects every change.
type Collection[T any] struct {
	mu      sync.Mutex
	keyOf   func(T) string
	records []Record[T]
}

func New[T any](keyOf func(T) string) *Collection[T] {
	return &Collection[T]{keyOf: keyOf}
}

// LoadAll replaces the entire contents with the fetch result. On fetch
// failure the collection is left empty rather than keeping stale rows next to
// an error state. Later duplicates of a key are dropped.
func (c *Collection[T]) LoadAll(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	items, err := fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = nil
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := c.keyOf(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		c.records = append(c.records, Record[T]{Key: key, Data: item})
	}
	return nil
}

// BeginAction marks the key in-flight, inserting a placeholder record when the
// key is not present yet (single-entity fetches for rows outside the list).
func (c *Collection[T]) BeginAction(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(key); i >= 0 {
		c.records[i].Loading = true
		return
	}
	c.records = append(c.records, Record[T]{Key: key, Loading: true})
}

// CompleteRefresh replaces the record's data and clears the in-flight flag.
// An absent key is a no-op: the row may have been removed while the refresh
// was in flight, and the stale result must not resurrect it.
func (c *Collection[T]) CompleteRefresh(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(key); i >= 0 {
		c.records[i] = Record[T]{Key: key, Data: data}
	}
}

// CompleteRemove deletes the record; idempotent on absent keys.
func (c *Collection[T]) CompleteRemove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(key); i >= 0 {
		c.records = append(c.records[:i], c.records[i+1:]...)
	}
}

// CompleteError clears the in-flight flag and keeps the last-known-good data.
func (c *Collection[T]) CompleteError(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(key); i >= 0 {
		c.records[i].Loading = false
	}
}

// Snapshot returns the records in order. The slice is a copy; payloads are
// shared.
func (c *Collection[T]) Snapshot() []Record[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Record[T], len(c.records))
	copy(out, c.records)
	return out
}

func (c *Collection[T]) Get(key string) (Record[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(key); i >= 0 {
		return c.records[i], true
	}
	return Record[T]{}, false
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// find assumes c.mu is held. Lists here are tens of rows; linear scan keeps
// removal from invalidating a parallel index.
func (c *Collection[T]) find(key string) int {
	for i := range c.records {
		if c.records[i].Key == key {
			return i
		}
	}
	return -1
}
