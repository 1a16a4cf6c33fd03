package localcache

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Well-known keys of the client state.
const (
	KeyCurrentUser      = "currentUser"
	KeyDevices          = "devices"
	KeyRooms            = "rooms"
	KeyCategories       = "categories"
	KeyFavouriteDevices = "favouriteDevices"
	KeyActivityHistory  = "activityHistory"
	KeyScenes           = "scenes"
	KeyAutomations      = "automations"
	KeyAuthToken        = "authToken"
)

type mirror struct {
	// raw is nil when the key is absent or unreadable; readers then use their initial value.
	raw []byte
}

// Cache keeps exactly one in-memory mirror per key on top of a durable Store.
type Cache struct {
	store  Store
	logger *slog.Logger

	mu      sync.Mutex
	mirrors map[string]*mirror
}

func New(store Store, logger *slog.Logger) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		store:   store,
		logger:  logger.With("component", "localcache"),
		mirrors: map[string]*mirror{},
	}
}

// Open returns a cache over a sqlite file at path. An empty path, or a file
// that cannot be opened, yields a memory-only cache.
func Open(ctx context.Context, path string, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return New(NewMemoryStore(), logger)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn("local cache directory unavailable, using memory only", "path", path, "err", err)
			return New(NewMemoryStore(), logger)
		}
	}
	store, err := NewSQLiteStore(ctx, path, logger)
	if err != nil {
		logger.Warn("local cache unavailable, using memory only", "path", path, "err", err)
		return New(NewMemoryStore(), logger)
	}
	return New(store, logger)
}

// Close releases the durable store when it holds resources.
func (c *Cache) Close() error {
	if closer, ok := c.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// mirrorLocked returns the mirror for key, reading the store on first access.
// c.mu must be held.
func (c *Cache) mirrorLocked(key string) *mirror {
	if m, ok := c.mirrors[key]; ok {
		return m
	}
	m := &mirror{}
	raw, ok, err := c.store.Load(key)
	switch {
	case err != nil:
		c.logger.Warn("local cache read failed", "err", &StorageError{Op: "read", Key: key, Err: err})
	case ok && !json.Valid(raw):
		c.logger.Warn("local cache value corrupt", "err", &StorageError{Op: "decode", Key: key, Err: errCorrupt})
	case ok:
		m.raw = raw
	}
	c.mirrors[key] = m
	return m
}

// writeLocked replaces the mirror then writes through. c.mu must be held.
func (c *Cache) writeLocked(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("local cache encode failed", "err", &StorageError{Op: "encode", Key: key, Err: err})
		return
	}
	c.mirrors[key] = &mirror{raw: raw}
	if err := c.store.Save(key, raw); err != nil {
		c.logger.Warn("local cache write failed", "err", &StorageError{Op: "write", Key: key, Err: err})
	}
}

func (c *Cache) deleteLocked(key string) {
	c.mirrors[key] = &mirror{}
	if err := c.store.Delete(key); err != nil {
		c.logger.Warn("local cache delete failed", "err", &StorageError{Op: "delete", Key: key, Err: err})
	}
}
