package cache

import (
	"time"

	"github.com/cloudnotes/cloudnotes-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
)

const cacheName = "subscribers"

// SubscriberCache remembers normalized emails that are known to be subscribed
// so repeat signup attempts don't hit the record store again. Entries expire
// after the configured TTL; the store stays authoritative, this is purely a
// traffic shield.
type SubscriberCache struct {
	cache *gocache.Cache
}

// NewSubscriberCache creates a subscriber cache with the given entry TTL.
func NewSubscriberCache(ttl time.Duration) *SubscriberCache {
	return &SubscriberCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// MarkSubscribed records that the normalized email has a subscriber record.
func (c *SubscriberCache) MarkSubscribed(email string) {
	c.cache.SetDefault(email, struct{}{})
}

// IsSubscribed reports whether the normalized email was recently confirmed
// subscribed.
func (c *SubscriberCache) IsSubscribed(email string) bool {
	_, found := c.cache.Get(email)
	if found {
		metrics.CacheHits.WithLabelValues(cacheName).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(cacheName).Inc()
	}
	return found
}

// Len returns the number of cached emails (including not-yet-purged expired entries).
func (c *SubscriberCache) Len() int {
	return c.cache.ItemCount()
}
