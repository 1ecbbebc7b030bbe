package upstream

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// catalogCache is a short-TTL cache over catalog reads (list, trending,
// detail). Catalog pages change rarely but are fetched on every page load;
// a short TTL absorbs rapid re-reads without letting stale data linger.
// Admin catalog mutations flush it wholesale — the upstream stays the
// source of truth.
type catalogCache struct {
	cache *ttlcache.Cache[string, any]
}

// newCatalogCache returns a cache with the given TTL, or a disabled cache
// when ttl <= 0.
func newCatalogCache(ttl time.Duration) *catalogCache {
	if ttl <= 0 {
		return &catalogCache{}
	}
	cache := ttlcache.New[string, any](
		ttlcache.WithTTL[string, any](ttl),
		ttlcache.WithDisableTouchOnHit[string, any](),
	)
	go cache.Start() // starts the automatic expired-item eviction loop
	return &catalogCache{cache: cache}
}

func (cc *catalogCache) get(key string) (any, bool) {
	if cc.cache == nil {
		return nil, false
	}
	item := cc.cache.Get(key)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

func (cc *catalogCache) set(key string, value any) {
	if cc.cache == nil {
		return
	}
	cc.cache.Set(key, value, ttlcache.DefaultTTL)
}

func (cc *catalogCache) flush() {
	if cc.cache == nil {
		return
	}
	cc.cache.DeleteAll()
}
