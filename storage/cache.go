package storage

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"polo-scraper/models"
)

// ResultCache maps filter fingerprints to aggregated result sets for a fixed
// TTL. Expired entries are misses on lookup and are swept by a janitor every
// cleanup interval (never, if the interval is not positive).
type ResultCache struct {
	items  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewResultCache creates an empty cache whose entries live for ttl.
func NewResultCache(ttl, cleanup time.Duration) *ResultCache {
	return &ResultCache{items: gocache.New(ttl, cleanup)}
}

// Fingerprint builds the cache key for filter. The filter is normalized
// first, and text fields are quoted so separators inside a search term
// cannot make two filters collide.
func Fingerprint(f models.Filter) string {
	f = f.Normalize()
	return fmt.Sprintf("polos|%q|%q|%s|%s", f.Search, f.Brand,
		strconv.FormatFloat(f.MinPrice, 'f', -1, 64),
		strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
}

func (c *ResultCache) Get(fingerprint string) ([]*models.Listing, bool) {
	v, ok := c.items.Get(fingerprint)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return v.([]*models.Listing), true
}

func (c *ResultCache) Put(fingerprint string, listings []*models.Listing) {
	c.items.Set(fingerprint, listings, gocache.DefaultExpiration)
}

// Find scans every unexpired entry for a listing satisfying match.
func (c *ResultCache) Find(match func(*models.Listing) bool) (*models.Listing, bool) {
	for _, item := range c.items.Items() {
		for _, l := range item.Object.([]*models.Listing) {
			if match(l) {
				return l, true
			}
		}
	}
	return nil, false
}

func (c *ResultCache) Stats() models.CacheStats {
	return models.CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Keys:   len(c.items.Items()),
	}
}
