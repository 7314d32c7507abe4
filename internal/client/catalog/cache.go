package catalog

import (
	"sync"

	"github.com/vpetrenko/promptmart/internal/client/models"
)

// Cache is the process-wide in-memory copy of the prompt catalog. It is
// replaced wholesale by SetAll on a full reload and patched in place by
// Remove/Merge after a delete or edit, without a round trip; the view may
// therefore drift from server truth until the next reload.
type Cache struct {
	mu      sync.RWMutex
	prompts []models.Prompt
	loaded  bool
}

func NewCache() *Cache {
	return &Cache{}
}

// SetAll replaces the cached catalog with a copy of prompts.
func (c *Cache) SetAll(prompts []models.Prompt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append([]models.Prompt(nil), prompts...)
	c.loaded = true
}

// Loaded reports whether the catalog has been fetched at least once.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Snapshot returns a copy of the cached catalog.
func (c *Cache) Snapshot() []models.Prompt {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Prompt(nil), c.prompts...)
}

// Get returns a copy of the prompt with the given id.
func (c *Cache) Get(id int64) (models.Prompt, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.prompts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Prompt{}, false
}

// Add appends a prompt to the cache.
func (c *Cache) Add(p models.Prompt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, p)
}

// Remove deletes the prompt with the given id. Reports whether it existed.
func (c *Cache) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.prompts {
		if p.ID == id {
			c.prompts = append(c.prompts[:i], c.prompts[i+1:]...)
			return true
		}
	}
	return false
}

// Merge patches the submitted edit fields into the cached prompt with the
// given id. Reports whether it existed.
func (c *Cache) Merge(id int64, draft models.Draft) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.prompts {
		if c.prompts[i].ID == id {
			c.prompts[i].Title = draft.Title
			c.prompts[i].Content = draft.Content
			c.prompts[i].Category = draft.Category
			c.prompts[i].IsPremium = draft.IsPremium
			c.prompts[i].Price = draft.Price
			return true
		}
	}
	return false
}
