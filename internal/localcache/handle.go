package localcache

import (
	"encoding/json"
	"errors"
)

var errCorrupt = errors.New("stored value is not valid JSON")

// Handle is a typed view of one cache key. Handles on the same key share the
// cache mirror, so a Set through one is visible through the others.
type Handle[T any] struct {
	cache   *Cache
	key     string
	initial T
}

func NewHandle[T any](cache *Cache, key string, initial T) *Handle[T] {
	return &Handle[T]{cache: cache, key: key, initial: initial}
}

func (h *Handle[T]) Key() string {
	return h.key
}

// Get returns the current value, or the initial value when nothing usable is stored.
// Every call decodes a fresh copy.
func (h *Handle[T]) Get() T {
	h.cache.mu.Lock()
	defer h.cache.mu.Unlock()
	return h.getLocked()
}

func (h *Handle[T]) getLocked() T {
	m := h.cache.mirrorLocked(h.key)
	if m.raw == nil {
		return h.initialCopy()
	}
	var value T
	if err := json.Unmarshal(m.raw, &value); err != nil {
		h.cache.logger.Warn("local cache value has unexpected shape", "err", &StorageError{Op: "decode", Key: h.key, Err: err})
		return h.initialCopy()
	}
	return value
}

// Set replaces the value in memory and writes it through to the store.
func (h *Handle[T]) Set(value T) {
	h.cache.mu.Lock()
	defer h.cache.mu.Unlock()
	h.cache.writeLocked(h.key, value)
}

// Update applies fn to the current value and stores the result atomically
// with respect to other handles of the same cache. fn must not use the cache.
func (h *Handle[T]) Update(fn func(T) T) T {
	h.cache.mu.Lock()
	defer h.cache.mu.Unlock()
	next := fn(h.getLocked())
	h.cache.writeLocked(h.key, next)
	return next
}

// Reset removes the stored value; subsequent reads return the initial value.
func (h *Handle[T]) Reset() {
	h.cache.mu.Lock()
	defer h.cache.mu.Unlock()
	h.cache.deleteLocked(h.key)
}

func (h *Handle[T]) initialCopy() T {
	raw, err := json.Marshal(h.initial)
	if err != nil {
		return h.initial
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return h.initial
	}
	return value
}
