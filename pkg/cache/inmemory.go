package cache

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	once     sync.Once
	instance Cache
)

// Cache is the in-process cache behind hot lookups, currently the company
// existence gate the ingestion pipelines hit once per disclosure.
type Cache interface {
	Set(key string, value interface{}, duration time.Duration)
	Get(key string) (interface{}, bool)
	Delete(key string)
	Flush()
}

type memoryCache struct {
	internal *cache.Cache
}

// NewCache returns the process-wide cache. The expiration and cleanup
// settings of the first call win; later calls get the same instance.
func NewCache(defaultExpiration, cleanupInterval time.Duration) Cache {
	once.Do(func() {
		instance = &memoryCache{
			internal: cache.New(defaultExpiration, cleanupInterval),
		}
	})
	return instance
}

func (c *memoryCache) Set(key string, value interface{}, duration time.Duration) {
	c.internal.Set(key, value, duration)
}

func (c *memoryCache) Get(key string) (interface{}, bool) {
	return c.internal.Get(key)
}

func (c *memoryCache) Delete(key string) {
	c.internal.Delete(key)
}

func (c *memoryCache) Flush() {
	c.internal.Flush()
}
