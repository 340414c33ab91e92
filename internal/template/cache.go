// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package template

import "sync"

// DefaultCacheSize bounds a [Cache] created with a non-positive size.
const DefaultCacheSize = 4096

// Cache memoizes parsed templates by source text. It is safe for concurrent
// use. Failed parses are not cached.
type Cache struct {
	mu      sync.RWMutex
	limit   int
	entries map[string]*Template
}

// NewCache returns a cache holding at most size templates. When full, the
// cache is emptied before the next insert.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{limit: size, entries: make(map[string]*Template)}
}

// Parse returns the cached template for source, parsing it on a miss. A nil
// cache parses every time.
func (c *Cache) Parse(source string) (*Template, error) {
	if c == nil {
		return Parse(source)
	}

	c.mu.RLock()
	t, ok := c.entries[source]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := Parse(source)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if len(c.entries) >= c.limit {
		c.entries = make(map[string]*Template)
	}
	c.entries[source] = t
	c.mu.Unlock()

	return t, nil
}

// Len returns the number of cached templates.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Reset drops every cached template.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]*Template)
	c.mu.Unlock()
}
