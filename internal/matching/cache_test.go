package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSuggestionCacheHitAndMiss(t *testing.T) {
	c := NewSuggestionCache(time.Minute)
	data := GroupedSuggestions{All: []Suggestion{{MatchID: 7, Score: 90}}}
	c.Put(1, "sig-a", data)

	got, ok := c.Get(1, "sig-a")
	assert.True(t, ok)
	assert.Equal(t, data, got)

	_, ok = c.Get(1, "sig-b")
	assert.False(t, ok, "a changed trait signature must miss")
	_, ok = c.Get(2, "sig-a")
	assert.False(t, ok, "another resident must miss")
}

func TestSuggestionCacheExpiry(t *testing.T) {
	c := NewSuggestionCache(time.Minute)
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Put(1, "sig", GroupedSuggestions{})
	_, ok := c.Get(1, "sig")
	assert.True(t, ok)

	current = current.Add(time.Minute + time.Second)
	_, ok = c.Get(1, "sig")
	assert.False(t, ok, "entry past its TTL must miss")

	// The expired entry is evicted, not just skipped.
	c.mu.Lock()
	_, present := c.entries[cacheKey(1, "sig")]
	c.mu.Unlock()
	assert.False(t, present)
}

func TestSuggestionCacheDefaultTTL(t *testing.T) {
	c := NewSuggestionCache(0)
	assert.Equal(t, DefaultSuggestionTTL, c.ttl)
	c = NewSuggestionCache(-time.Second)
	assert.Equal(t, DefaultSuggestionTTL, c.ttl)
}
