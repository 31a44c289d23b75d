package types

import (
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// validatorCache holds compiled validators keyed by the schema document.
// Once full, the oldest entry is evicted first.
type validatorCache struct {
	mu       sync.Mutex
	entries  map[string]*jsonschema.Schema
	order    []string
	capacity int
}

func newValidatorCache(capacity int) *validatorCache {
	if capacity < 1 {
		capacity = 1
	}
	return &validatorCache{
		entries:  make(map[string]*jsonschema.Schema, capacity),
		capacity: capacity,
	}
}

func (c *validatorCache) get(key string) (*jsonschema.Schema, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	compiled, ok := c.entries[key]
	return compiled, ok
}

func (c *validatorCache) put(key string, compiled *jsonschema.Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = compiled
		return
	}
	for len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = compiled
	c.order = append(c.order, key)
}

// len reports the number of cached validators
func (c *validatorCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey is the compact JSON form of a schema. encoding/json sorts map
// keys, so equal schemas produce equal keys.
func cacheKey(schema JSONSchema) (string, error) {
	b, err := schema.compactJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
