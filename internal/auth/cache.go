package auth

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache holds resolved sensors for a fixed TTL. Expiry is absolute: a hit
// never extends an entry's lifetime. There is no background janitor; an
// expired entry is purged by the lookup that finds it stale.
type Cache struct {
	items *gocache.Cache
	ttl   time.Duration
}

// NewCache creates a credential cache. A non-positive ttl disables caching.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		items: gocache.New(ttl, 0),
		ttl:   ttl,
	}
}

// Get returns the cached sensor for apiKey.
func (c *Cache) Get(apiKey string) (*SensorIdentity, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	v, ok := c.items.Get(apiKey)
	if !ok {
		// Drops the entry if it exists but has expired.
		c.items.Delete(apiKey)
		return nil, false
	}
	return v.(*SensorIdentity), true
}

// Set caches sensor under apiKey until now+ttl.
func (c *Cache) Set(apiKey string, sensor *SensorIdentity) {
	if c.ttl <= 0 {
		return
	}
	c.items.Set(apiKey, sensor, c.ttl)
}

// Invalidate drops apiKey, e.g. after a key is revoked.
func (c *Cache) Invalidate(apiKey string) {
	c.items.Delete(apiKey)
}

// Len counts stored entries, including expired ones not yet purged.
func (c *Cache) Len() int {
	return c.items.ItemCount()
}
