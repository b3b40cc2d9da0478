package matching

import (
	"fmt"
	"sync"
	"time"
)

// DefaultSuggestionTTL is how long memoized suggestion groups stay
// valid before a fresh computation is forced.
const DefaultSuggestionTTL = 5 * time.Minute

type cacheEntry struct {
	expires time.Time
	data    GroupedSuggestions
}

// SuggestionCache memoizes grouped suggestion results per resident and
// trait signature.  It serves only the read-oriented suggestions
// query; the commit path always scores fresh so a stale cache can
// never influence an actual pairing decision.  Entries expire after
// the configured TTL and are evicted lazily on lookup.
type SuggestionCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewSuggestionCache returns a cache with the given TTL.  A
// non-positive TTL falls back to DefaultSuggestionTTL.
func NewSuggestionCache(ttl time.Duration) *SuggestionCache {
	if ttl <= 0 {
		ttl = DefaultSuggestionTTL
	}
	return &SuggestionCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached suggestions for the resident and trait
// signature, or ok=false on a miss or after expiry.  Expired entries
// are evicted as a side effect.
func (c *SuggestionCache) Get(residentID uint64, signature string) (GroupedSuggestions, bool) {
	key := cacheKey(residentID, signature)
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return GroupedSuggestions{}, false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, key)
		return GroupedSuggestions{}, false
	}
	return entry.data, true
}

// Put stores suggestions for the resident and trait signature.
func (c *SuggestionCache) Put(residentID uint64, signature string, data GroupedSuggestions) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(residentID, signature)] = cacheEntry{
		expires: c.now().Add(c.ttl),
		data:    data,
	}
}

func cacheKey(residentID uint64, signature string) string {
	return fmt.Sprintf("%d|%s", residentID, signature)
}
