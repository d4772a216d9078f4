package translate

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the capacity of a cache created with a non-positive
// size.
const DefaultCacheSize = 20_000

// Cache is a bounded store of translations. Implementations must be safe
// for concurrent use.
type Cache interface {
	Get(key string) (string, bool)
	Put(key, value string)
	Len() int
}

type lruCache struct {
	lru *lru.Cache[string, string]
}

// NewCache creates a thread-safe cache that evicts the least recently used
// entry when it holds size entries.
func NewCache(size int) Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// error is returned only for a non-positive size
	c, _ := lru.New[string, string](size)
	return &lruCache{lru: c}
}

func (c *lruCache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

func (c *lruCache) Put(key, value string) {
	c.lru.Add(key, value)
}

func (c *lruCache) Len() int {
	return c.lru.Len()
}
