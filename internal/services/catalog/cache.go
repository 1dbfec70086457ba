package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
)

// CacheKey builds the normalized cache key for a search.
func CacheKey(query string, limit int) string {
	return fmt.Sprintf("%s_%d", strings.ToLower(strings.TrimSpace(query)), limit)
}

// MemoryCache is a process-lifetime search cache. Entries are never
// evicted; a concurrent duplicate write stores identical content, so
// last-write-wins is harmless.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]models.Product
}

var _ interfaces.SearchCache = (*MemoryCache)(nil)

// NewMemoryCache creates an empty search cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]models.Product)}
}

func (c *MemoryCache) Get(key string) ([]models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	products, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return append([]models.Product(nil), products...), true
}

func (c *MemoryCache) Put(key string, products []models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = append([]models.Product(nil), products...)
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]models.Product)
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
