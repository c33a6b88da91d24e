/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package cache provides a generic in-memory cache with LRU eviction and per entry expiry.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/asgardeo/authflow/internal/system/config"
	"github.com/asgardeo/authflow/internal/system/log"
)

const (
	// defaultCacheTTL represents the default TTL for cache entries in seconds.
	defaultCacheTTL = 3600
	// defaultCacheSize represents the default size for the caches.
	defaultCacheSize = 1000
)

// CacheInterface defines the common operations of a cache.
type CacheInterface[T any] interface {
	Set(key CacheKey, value T) error
	SetWithTTL(key CacheKey, value T, ttl time.Duration) error
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey) error
	GetStats() CacheStat
	// CleanupExpired removes the expired entries and returns how many were removed.
	CleanupExpired() int
}

type inMemoryCacheEntry[T any] struct {
	*CacheEntry[T]
	listElement *list.Element
}

// inMemoryCache implements CacheInterface for a process local cache.
type inMemoryCache[T any] struct {
	enabled     bool
	cache       map[CacheKey]*inMemoryCacheEntry[T]
	accessOrder *list.List
	mu          sync.Mutex
	size        int
	ttl         time.Duration
	hitCount    int64
	missCount   int64
	evictCount  int64
	now         func() time.Time
}

// NewCache creates a named cache using the server cache configuration.
func NewCache[T any](name string, cacheConfig config.CacheConfig) CacheInterface[T] {
	return newInMemoryCache[T](name, !cacheConfig.Disabled, cacheConfig.Size,
		time.Duration(cacheConfig.TTL)*time.Second)
}

func newInMemoryCache[T any](name string, enabled bool, size int, ttl time.Duration) *inMemoryCache[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "InMemoryCache"),
		log.String("name", name))

	if !enabled {
		logger.Warn("In-memory cache is disabled, returning empty cache")
		return &inMemoryCache[T]{enabled: false, now: time.Now}
	}

	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL * time.Second
	}
	logger.Debug("Initializing in-memory cache", log.Int("size", size), log.Duration("ttl", ttl))

	return &inMemoryCache[T]{
		enabled:     true,
		cache:       make(map[CacheKey]*inMemoryCacheEntry[T]),
		accessOrder: list.New(),
		size:        size,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Set adds or updates an entry in the cache with the default TTL.
func (c *inMemoryCache[T]) Set(key CacheKey, value T) error {
	return c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL adds or updates an entry in the cache with the given TTL.
func (c *inMemoryCache[T]) SetWithTTL(key CacheKey, value T, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiryTime := c.now().Add(ttl)
	if existing, ok := c.cache[key]; ok {
		existing.Value = value
		existing.ExpiryTime = expiryTime
		c.accessOrder.MoveToFront(existing.listElement)
		return nil
	}

	c.cache[key] = &inMemoryCacheEntry[T]{
		CacheEntry:  &CacheEntry[T]{Value: value, ExpiryTime: expiryTime},
		listElement: c.accessOrder.PushFront(key),
	}
	if len(c.cache) > c.size {
		c.evict()
	}
	return nil
}

// Get retrieves a value from the cache.
func (c *inMemoryCache[T]) Get(key CacheKey) (T, bool) {
	var zero T
	if !c.enabled {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		c.missCount++
		return zero, false
	}
	if c.now().After(entry.ExpiryTime) {
		c.deleteEntry(key, entry)
		c.missCount++
		return zero, false
	}

	c.accessOrder.MoveToFront(entry.listElement)
	c.hitCount++
	return entry.Value, true
}

// Delete removes an entry from the cache.
func (c *inMemoryCache[T]) Delete(key CacheKey) error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.cache[key]; ok {
		c.deleteEntry(key, entry)
	}
	return nil
}

// GetStats returns the current statistics of the cache.
func (c *inMemoryCache[T]) GetStats() CacheStat {
	if !c.enabled {
		return CacheStat{Enabled: false}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stat := CacheStat{
		Enabled:    true,
		Size:       len(c.cache),
		MaxSize:    c.size,
		HitCount:   c.hitCount,
		MissCount:  c.missCount,
		EvictCount: c.evictCount,
	}
	if total := c.hitCount + c.missCount; total > 0 {
		stat.HitRate = float64(c.hitCount) / float64(total)
	}
	return stat
}

func (c *inMemoryCache[T]) CleanupExpired() int {
	if !c.enabled {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.cache {
		if now.After(entry.ExpiryTime) {
			c.deleteEntry(key, entry)
			removed++
		}
	}
	return removed
}

// evict removes the least recently used entry. Caller must hold the lock.
func (c *inMemoryCache[T]) evict() {
	oldest := c.accessOrder.Back()
	if oldest == nil {
		return
	}
	key := oldest.Value.(CacheKey)
	if entry, ok := c.cache[key]; ok {
		c.deleteEntry(key, entry)
		c.evictCount++
	}
}

func (c *inMemoryCache[T]) deleteEntry(key CacheKey, entry *inMemoryCacheEntry[T]) {
	c.accessOrder.Remove(entry.listElement)
	delete(c.cache, key)
}
