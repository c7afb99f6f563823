// Package assets handles resource fetching and caching.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrResourceUnavailable is returned when no source can serve a path.
var ErrResourceUnavailable = errors.New("resource unavailable")

// Source serves resources by slash-separated path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
	String() string
}

// Manager fetches resources from a list of sources.
// Sources are searched in reverse order (last added = highest priority).
type Manager struct {
	sources []Source
	cache   *Cache
	mu      sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache: NewCache(),
	}
}

// AddSource adds a source to the manager.
func (m *Manager) AddSource(src Source) {
	m.mu.Lock()
	m.sources = append(m.sources, src)
	m.mu.Unlock()
}

// Fetch loads a resource from the first source that has it.
// There are no retries: the last source error is wrapped with ErrResourceUnavailable.
func (m *Manager) Fetch(ctx context.Context, path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.sources) == 0 {
		return nil, fmt.Errorf("%w: %s: no sources configured", ErrResourceUnavailable, path)
	}

	var lastErr error
	for i := len(m.sources) - 1; i >= 0; i-- {
		data, err := m.sources[i].Fetch(ctx, path)
		if err == nil {
			m.cache.Set(path, data)
			return data, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %s: %w", ErrResourceUnavailable, path, lastErr)
}

// FetchText loads a resource and returns it as a string.
func (m *Manager) FetchText(ctx context.Context, path string) (string, error) {
	data, err := m.Fetch(ctx, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Close drops all sources and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sources = nil
	m.cache.Clear()
}

// Cache is a simple in-memory cache for fetched resources.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	// Write lock: the hit/miss counters are updated.
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear empties the cache and resets its statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
