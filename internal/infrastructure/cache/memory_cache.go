package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jhoicas/inventario-dashboard/internal/application/ports"
)

var _ ports.QueryCache = (*MemoryCache)(nil)

type entry struct {
	raw     []byte
	expires time.Time
}

// MemoryCache caché en proceso con TTL. Guarda JSON para que los lectores no compartan punteros.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	gens    map[string]uint64
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache construye la caché. ttl <= 0 usa ports.DefaultCacheTTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = ports.DefaultCacheTTL
	}
	return &MemoryCache{entries: make(map[string]entry), gens: make(map[string]uint64), ttl: ttl, now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expires) {
		return false, nil
	}
	if err := json.Unmarshal(e.raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) Version(_ context.Context, key string) (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[key], nil
}

// Set descarta el valor si key fue invalidada después de leer version.
func (c *MemoryCache) Set(_ context.Context, key string, version uint64, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != version {
		return nil
	}
	c.entries[key] = entry{raw: raw, expires: c.now().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.entries, k)
		c.gens[k]++
	}
	c.mu.Unlock()
	return nil
}
